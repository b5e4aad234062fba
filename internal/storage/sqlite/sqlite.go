// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-list/internal/config"
	"github.com/aanand-mishra/student-list/internal/storage"
	"github.com/aanand-mishra/student-list/internal/types"

	// Side-effect only: registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the outcomes
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite serialises writers anyway, and ":memory:" databases are
	// per-connection, so one connection keeps every caller on the same file.
	db.SetMaxOpenConns(1)

	// Schema:
	//   id          — insertion order, tie-breaker for equal timestamps
	//   mount_id    — ULID of the mount, unique
	//   status      — "ok" or "error"
	//   count       — number of students on success
	//   error       — failure message shown to the user
	//   status_code — upstream HTTP status when one was received
	//   settled_at  — unix nanoseconds
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS outcomes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			mount_id    TEXT    NOT NULL UNIQUE,
			status      TEXT    NOT NULL,
			count       INTEGER NOT NULL,
			error       TEXT    NOT NULL,
			status_code INTEGER NOT NULL,
			settled_at  INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// RecordOutcome inserts one row. Values go through ? placeholders, never
// string concatenation.
func (s *SQLite) RecordOutcome(outcome types.Outcome) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO outcomes (mount_id, status, count, error, status_code, settled_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("RecordOutcome: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		outcome.MountID,
		outcome.Status,
		outcome.Count,
		outcome.Error,
		outcome.StatusCode,
		outcome.SettledAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("RecordOutcome: exec: %w", err)
	}

	return nil
}

// GetOutcomeByID fetches the outcome of one mount.
func (s *SQLite) GetOutcomeByID(mountID string) (types.Outcome, error) {
	stmt, err := s.Db.Prepare(`
		SELECT mount_id, status, count, error, status_code, settled_at
		FROM outcomes WHERE mount_id = ? LIMIT 1
	`)
	if err != nil {
		return types.Outcome{}, fmt.Errorf("GetOutcomeByID: prepare: %w", err)
	}
	defer stmt.Close()

	outcome, err := scanOutcome(stmt.QueryRow(mountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Outcome{}, fmt.Errorf("no outcome found with mount id %s: %w",
				mountID, storage.ErrNotFound)
		}
		return types.Outcome{}, fmt.Errorf("GetOutcomeByID: scan: %w", err)
	}

	return outcome, nil
}

// GetOutcomes returns all outcomes, newest first.
func (s *SQLite) GetOutcomes() ([]types.Outcome, error) {
	stmt, err := s.Db.Prepare(`
		SELECT mount_id, status, count, error, status_code, settled_at
		FROM outcomes ORDER BY settled_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("GetOutcomes: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetOutcomes: query: %w", err)
	}
	defer rows.Close()

	outcomes := make([]types.Outcome, 0)
	for rows.Next() {
		outcome, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("GetOutcomes: scan row: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetOutcomes: rows iteration: %w", err)
	}

	return outcomes, nil
}

// scanner is the part of *sql.Row and *sql.Rows that scanOutcome needs.
type scanner interface {
	Scan(dest ...any) error
}

// scanOutcome reads the columns in SELECT order.
func scanOutcome(row scanner) (types.Outcome, error) {
	var (
		outcome   types.Outcome
		settledAt int64
	)
	if err := row.Scan(
		&outcome.MountID,
		&outcome.Status,
		&outcome.Count,
		&outcome.Error,
		&outcome.StatusCode,
		&settledAt,
	); err != nil {
		return types.Outcome{}, err
	}
	outcome.SettledAt = time.Unix(0, settledAt).UTC()
	return outcome, nil
}
