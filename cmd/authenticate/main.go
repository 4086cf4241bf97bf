// Command authenticate runs the interactive Telegram login flow once and
// persists the resulting session file for the downloader to reuse.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"telegram-media-downloader/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Authentication failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.SessionFile},
	})

	ctx := context.Background()
	return client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(terminalAuth{reader: bufio.NewReader(os.Stdin)}, auth.SendCodeOptions{})
		if err := client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("login flow: %w", err)
		}

		status, err := client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status: %w", err)
		}
		if !status.Authorized {
			return errors.New("session is still not authorized")
		}

		fmt.Printf("Authorized as %s. Session saved to %s\n",
			displayName(status.User), cfg.SessionFile)
		return nil
	})
}

func displayName(user *tg.User) string {
	if user == nil {
		return "unknown"
	}
	if username, ok := user.GetUsername(); ok && username != "" {
		return "@" + username
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

// terminalAuth prompts for the phone number, login code and 2FA password on
// stdin.
type terminalAuth struct {
	reader *bufio.Reader
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	return a.prompt("Phone number (international format): ")
}

func (a terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return a.prompt("Login code: ")
}

func (a terminalAuth) Password(_ context.Context) (string, error) {
	return a.prompt("2FA password: ")
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("signing up new accounts is not supported")
}

func (a terminalAuth) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
