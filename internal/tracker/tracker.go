package tracker

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when no load has been recorded for a title.
	ErrNotFound = errors.New("not found")
)

// Record describes one ingested title file.
type Record struct {
	TitleNumber int
	Release     string // USC release point, e.g. "113-21"; may be empty
	ContentHash [32]byte
	LoadedAt    time.Time
}

// Stats summarizes the tracker for status reporting.
type Stats struct {
	TitlesTracked int
	LoadsRecorded int
	LastLoadAt    time.Time // Zero when nothing has been recorded
}

// Tracker persists title ingest history in SQLite.
type Tracker struct {
	db *sql.DB
}

// Open creates or opens the tracker database at dbPath and applies any
// pending migrations. Use ":memory:" for an ephemeral tracker.
func Open(dbPath string) (*Tracker, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for concurrency, single writer per the SQLite norm
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// loadedAtLayout is fixed-width so that lexicographic ORDER BY and MAX
// over the stored text agree with chronological order.
const loadedAtLayout = "2006-01-02 15:04:05.000000000"

// RecordLoad stores one ingest. Recording an identical (title, release,
// hash) again is a no-op, keeping the original timestamp.
func (t *Tracker) RecordLoad(ctx context.Context, titleNumber int, release string, hash [32]byte, at time.Time) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO title_loads (title_number, release, content_hash, loaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(title_number, release, content_hash) DO NOTHING`,
		titleNumber, release, hex.EncodeToString(hash[:]), at.UTC().Format(loadedAtLayout))
	if err != nil {
		return fmt.Errorf("failed to record load for title %d: %w", titleNumber, err)
	}
	return nil
}

// Latest returns the most recent load of a title, or ErrNotFound.
func (t *Tracker) Latest(ctx context.Context, titleNumber int) (*Record, error) {
	row := t.db.QueryRowContext(ctx, `
		SELECT title_number, release, content_hash, loaded_at
		FROM title_loads
		WHERE title_number = ?
		ORDER BY loaded_at DESC, id DESC
		LIMIT 1`, titleNumber)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest load for title %d: %w", titleNumber, err)
	}
	return rec, nil
}

// History returns every recorded load of a title, newest first.
func (t *Tracker) History(ctx context.Context, titleNumber int) ([]Record, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT title_number, release, content_hash, loaded_at
		FROM title_loads
		WHERE title_number = ?
		ORDER BY loaded_at DESC, id DESC`, titleNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read history for title %d: %w", titleNumber, err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Seen reports whether this exact content hash of a title has been
// recorded before, regardless of release.
func (t *Tracker) Seen(ctx context.Context, titleNumber int, hash [32]byte) (bool, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM title_loads
		WHERE title_number = ? AND content_hash = ?`,
		titleNumber, hex.EncodeToString(hash[:])).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check title %d: %w", titleNumber, err)
	}
	return n > 0, nil
}

// GetStats summarizes the recorded history.
func (t *Tracker) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var last sql.NullString
	err := t.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT title_number), COUNT(*), MAX(loaded_at)
		FROM title_loads`).Scan(&stats.TitlesTracked, &stats.LoadsRecorded, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker stats: %w", err)
	}
	if last.Valid {
		if at, err := parseTime(last.String); err == nil {
			stats.LastLoadAt = at
		}
	}
	return stats, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		rec     Record
		hashHex string
		loaded  string
	)
	if err := s.Scan(&rec.TitleNumber, &rec.Release, &hashHex, &loaded); err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(hashHex)
	if err != nil || len(raw) != len(rec.ContentHash) {
		return nil, fmt.Errorf("malformed content hash %q", hashHex)
	}
	copy(rec.ContentHash[:], raw)

	at, err := parseTime(loaded)
	if err != nil {
		return nil, err
	}
	rec.LoadedAt = at
	return &rec, nil
}

// parseTime accepts the stored layout plus the formats the two SQLite
// drivers emit.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{loadedAtLayout, time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if at, err := time.Parse(layout, s); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
