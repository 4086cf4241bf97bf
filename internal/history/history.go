// Package history persists a write-only audit log of finished batches in
// SQLite. Nothing in the download path ever reads it back; it exists so
// operators can see what was fetched and when.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"telegram-media-downloader/pkg/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	connString := dbPath
	if dbPath != ":memory:" {
		connString = dbPath + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL"
	}

	conn, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		channel TEXT NOT NULL,
		topic TEXT,
		total INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		folder TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at);
	CREATE INDEX IF NOT EXISTS idx_batches_channel ON batches(channel);

	CREATE TABLE IF NOT EXISTS batch_failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		name TEXT NOT NULL,
		reason TEXT NOT NULL,
		FOREIGN KEY (batch_id) REFERENCES batches(id)
	);

	CREATE INDEX IF NOT EXISTS idx_batch_failures_batch_id ON batch_failures(batch_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// RecordBatch stores the final accounting for one batch, failures included
func (db *DB) RecordBatch(ctx context.Context, channel, topic string, summary *models.BatchSummary) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO batches (id, channel, topic, total, succeeded, failed, elapsed_ms, folder, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.BatchID, channel, topic, summary.Total, summary.Succeeded,
		summary.Failed, summary.TotalElapsed.Milliseconds(), summary.Folder,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}

	for _, failure := range summary.Failures {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO batch_failures (batch_id, name, reason) VALUES (?, ?, ?)`,
			summary.BatchID, failure.Name, failure.Reason,
		)
		if err != nil {
			return fmt.Errorf("failed to record batch failure: %w", err)
		}
	}

	return tx.Commit()
}

// RecentBatches returns the most recent batch records, newest first
func (db *DB) RecentBatches(ctx context.Context, limit int) ([]*models.BatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.QueryContext(ctx, `
	SELECT id, channel, topic, total, succeeded, failed, elapsed_ms, folder, created_at
	FROM batches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var records []*models.BatchRecord
	for rows.Next() {
		var r models.BatchRecord
		err := rows.Scan(&r.BatchID, &r.Channel, &r.Topic, &r.Total,
			&r.Succeeded, &r.Failed, &r.ElapsedMs, &r.Folder, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// BatchFailures returns the per-item failures recorded for a batch
func (db *DB) BatchFailures(ctx context.Context, batchID string) ([]models.FailureReason, error) {
	rows, err := db.conn.QueryContext(ctx, `
	SELECT name, reason FROM batch_failures WHERE batch_id = ? ORDER BY id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch failures: %w", err)
	}
	defer rows.Close()

	var failures []models.FailureReason
	for rows.Next() {
		var f models.FailureReason
		if err := rows.Scan(&f.Name, &f.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan batch failure: %w", err)
		}
		failures = append(failures, f)
	}

	return failures, rows.Err()
}
