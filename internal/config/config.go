// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	APIID            int           `env:"API_ID,required"`
	APIHash          string        `env:"API_HASH,required"`
	SessionFile      string        `env:"SESSION_FILE" envDefault:"telegram.session"`
	DownloadsPath    string        `env:"DOWNLOADS_PATH" envDefault:"downloads"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	Concurrency      int           `env:"CONCURRENCY" envDefault:"3"`
	ConvertVideos    bool          `env:"CONVERT_VIDEOS" envDefault:"true"`
	FFmpegPath       string        `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	TranscodeTimeout time.Duration `env:"TRANSCODE_TIMEOUT" envDefault:"5m"`
	SizeTolerance    float64       `env:"SIZE_TOLERANCE" envDefault:"0.95"`
	PollInterval     time.Duration `env:"POLL_INTERVAL" envDefault:"300ms"`
	FetchLimit       int           `env:"FETCH_LIMIT" envDefault:"5000"`
	HistoryDatabase  string        `env:"HISTORY_DATABASE_PATH" envDefault:""`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIID <= 0 {
		return fmt.Errorf("API_ID must be a positive integer")
	}
	if c.APIHash == "" {
		return fmt.Errorf("API_HASH is required")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, level := range validLogLevels {
		if logLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level %q, must be one of: %v", c.LogLevel, validLogLevels)
	}

	if c.Concurrency < 1 || c.Concurrency > 10 {
		return fmt.Errorf("CONCURRENCY must be between 1 and 10, got %d", c.Concurrency)
	}

	if c.SizeTolerance <= 0 || c.SizeTolerance > 1 {
		return fmt.Errorf("SIZE_TOLERANCE must be in (0, 1], got %v", c.SizeTolerance)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %v", c.PollInterval)
	}

	if c.TranscodeTimeout <= 0 {
		return fmt.Errorf("TRANSCODE_TIMEOUT must be positive, got %v", c.TranscodeTimeout)
	}

	if c.FetchLimit <= 0 {
		return fmt.Errorf("FETCH_LIMIT must be positive, got %d", c.FetchLimit)
	}

	if c.DownloadsPath == "" {
		return fmt.Errorf("DOWNLOADS_PATH cannot be empty")
	}

	return nil
}
