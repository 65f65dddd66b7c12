// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tonedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MaxSessions is the number of answered items kept in the history.
const MaxSessions = 1000

// Store wraps SQLite access for ledger records and session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps the whole-collection replace atomic for sqlite.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stat_records (
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			class TEXT NOT NULL,
			value TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			successes INTEGER NOT NULL,
			success_rate REAL NOT NULL,
			last_trained_at TEXT NOT NULL,
			PRIMARY KEY (name, class, value)
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			units TEXT NOT NULL,
			correct INTEGER NOT NULL,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_stat_records_name ON stat_records(name, position);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_run_id ON sessions(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecords loads the named record collection in write order.
// A collection that was never written reads as empty.
func (s *Store) ReadRecords(ctx context.Context, name string) ([]model.StatRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT class, value, attempts, successes, success_rate, last_trained_at
		 FROM stat_records
		 WHERE name = ?
		 ORDER BY position ASC`, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.StatRecord
	for rows.Next() {
		var rec model.StatRecord
		var class, trainedAt string
		if err := rows.Scan(&class, &rec.Key.Value, &rec.Attempts, &rec.Successes, &rec.SuccessRate, &trainedAt); err != nil {
			return nil, err
		}
		rec.Key.Class, err = model.ParseComponentClass(class)
		if err != nil {
			return nil, err
		}
		rec.LastTrainedAt, err = time.Parse(time.RFC3339Nano, trainedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last trained time for %s: %w", rec.Key, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteRecords replaces the named collection with records in one transaction.
func (s *Store) WriteRecords(ctx context.Context, name string, records []model.StatRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM stat_records WHERE name = ?`, name); err != nil {
		return err
	}
	if len(records) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO stat_records (name, position, class, value, attempts, successes, success_rate, last_trained_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, rec := range records {
			if _, err = stmt.ExecContext(ctx, name, i,
				rec.Key.Class.String(),
				rec.Key.Value,
				rec.Attempts,
				rec.Successes,
				rec.SuccessRate,
				rec.LastTrainedAt.Format(time.RFC3339Nano),
			); err != nil {
				return err
			}
		}
	}
	err = tx.Commit()
	return err
}

// Clear removes the named collection.
func (s *Store) Clear(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM stat_records WHERE name = ?`, name)
	return err
}

// InsertSession appends one answered item and trims the history to MaxSessions.
func (s *Store) InsertSession(ctx context.Context, sess model.Session) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (run_id, units, correct, at) VALUES (?, ?, ?, ?)`,
		sess.RunID,
		EncodeUnits(sess.Units),
		boolToInt(sess.Correct),
		sess.At.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE id NOT IN (SELECT id FROM sessions ORDER BY id DESC LIMIT ?)`,
		MaxSessions); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns the most recent limit sessions, oldest first.
// A non-positive limit returns the whole history.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]model.Session, error) {
	if limit <= 0 {
		limit = MaxSessions
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, units, correct, at FROM (
			SELECT id, run_id, units, correct, at FROM sessions ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.Session
	for rows.Next() {
		var sess model.Session
		var units, at string
		var correct int
		if err := rows.Scan(&sess.ID, &sess.RunID, &units, &correct, &at); err != nil {
			return nil, err
		}
		sess.Units, err = DecodeUnits(units)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", sess.ID, err)
		}
		sess.Correct = correct != 0
		sess.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("session %d: failed to parse time: %w", sess.ID, err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ClearSessions removes the whole session history.
func (s *Store) ClearSessions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

// EncodeUnits renders units as space separated prefix-ending-tone triples.
func EncodeUnits(units model.DrillItem) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.Prefix + "-" + u.Ending + "-" + strconv.Itoa(u.Tone)
	}
	return strings.Join(parts, " ")
}

// DecodeUnits parses the EncodeUnits format.
func DecodeUnits(s string) (model.DrillItem, error) {
	fields := strings.Fields(s)
	units := make(model.DrillItem, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, "-")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid unit %q", f)
		}
		tone, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid tone in unit %q: %w", f, err)
		}
		units = append(units, model.PhoneticUnit{Prefix: parts[0], Ending: parts[1], Tone: tone})
	}
	return units, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
