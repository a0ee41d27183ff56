// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/store_sqlite.go
// Summary: SQLite-backed Store so new scores are detected across restarts.

package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const storeSchemaVersion = 1

const storeSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

-- One row per machine whose list has been saved at least once.
CREATE TABLE IF NOT EXISTS machines_seen (
    machine_id INTEGER PRIMARY KEY,
    updated_at INTEGER NOT NULL       -- UnixNano
);

CREATE TABLE IF NOT EXISTS previous_scores (
    machine_id INTEGER NOT NULL,
    position INTEGER NOT NULL,        -- 0 is first place
    entry_id TEXT,
    score TEXT,
    username TEXT,
    name TEXT,
    initials TEXT,
    PRIMARY KEY (machine_id, position)
);
`

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens or creates the score database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if current == storeSchemaVersion {
		return nil
	}
	if current > storeSchemaVersion {
		return fmt.Errorf("database schema %d is newer than supported %d", current, storeSchemaVersion)
	}
	log.Printf("Store: Initialising score database at schema %d", storeSchemaVersion)
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", storeSchemaVersion)
	return err
}

func (s *SQLiteStore) Previous(ctx context.Context, machineID int64) ([]HighScoreEntry, error) {
	var seen int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM machines_seen WHERE machine_id = ?", machineID).Scan(&seen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load machine %d: %w", machineID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, score, username, name, initials
		FROM previous_scores
		WHERE machine_id = ?
		ORDER BY position`, machineID)
	if err != nil {
		return nil, fmt.Errorf("load scores for machine %d: %w", machineID, err)
	}
	defer rows.Close()

	entries := []HighScoreEntry{}
	for rows.Next() {
		var id, score, username, name, initials sql.NullString
		if err := rows.Scan(&id, &score, &username, &name, &initials); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		entry := HighScoreEntry{ID: id.String, Score: score.String}
		if username.Valid || name.Valid || initials.Valid {
			entry.User = &ScoreUser{Username: username.String, Name: name.String, Initials: initials.String}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SavePrevious(ctx context.Context, machineID int64, entries []HighScoreEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM previous_scores WHERE machine_id = ?", machineID); err != nil {
		return fmt.Errorf("clear scores for machine %d: %w", machineID, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO previous_scores (machine_id, position, entry_id, score, username, name, initials)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		var username, name, initials sql.NullString
		if e.User != nil {
			username = sql.NullString{String: e.User.Username, Valid: true}
			name = sql.NullString{String: e.User.Name, Valid: true}
			initials = sql.NullString{String: e.User.Initials, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, machineID, i, e.ID, e.Score, username, name, initials); err != nil {
			return fmt.Errorf("insert score %d for machine %d: %w", i, machineID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO machines_seen (machine_id, updated_at) VALUES (?, ?)
		ON CONFLICT(machine_id) DO UPDATE SET updated_at = excluded.updated_at`,
		machineID, s.now().UnixNano()); err != nil {
		return fmt.Errorf("mark machine %d: %w", machineID, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
