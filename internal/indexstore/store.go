package indexstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"wordsplice/internal/transcript"
)

// Store is one source recording's persisted record list.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	insertBatchSize         = 100
)

// Exists reports whether a cache file is present at path. A present file
// may still be incomplete; see Complete.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Open creates or connects to the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("open index store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the stored records with records, preserving their order.
func (s *Store) Save(ctx context.Context, audioPath string, records []transcript.Record) error {
	return retryOnBusy(ctx, func() error {
		return s.save(ctx, audioPath, records)
	})
}

func (s *Store) save(ctx context.Context, audioPath string, records []transcript.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM words", "DELETE FROM source_info"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear index: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO source_info (audio_path, created_at) VALUES (?, ?)",
		audioPath, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("record source info: %w", err)
	}

	for startIdx := 0; startIdx < len(records); startIdx += insertBatchSize {
		end := min(startIdx+insertBatchSize, len(records))
		if err := insertBatch(ctx, tx, startIdx, records[startIdx:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, offset int, batch []transcript.Record) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO words (seq, text, start_sec, end_sec, confidence) VALUES ")
	args := make([]any, 0, len(batch)*5)
	for i, rec := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, offset+i, rec.Text, rec.Start, rec.End, rec.Confidence)
	}
	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert words: %w", err)
	}
	return nil
}

// Load returns the stored records in their original order, tagged with source.
func (s *Store) Load(ctx context.Context, source string) ([]transcript.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, start_sec, end_sec, confidence FROM words ORDER BY seq ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var records []transcript.Record
	for rows.Next() {
		var rec transcript.Record
		if err := rows.Scan(&rec.Text, &rec.Start, &rec.End, &rec.Confidence); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		rec.Source = source
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return records, nil
}

// Complete reports whether a Save has committed. Files left behind by an
// interrupted first build have a schema but no source row.
func (s *Store) Complete(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM source_info").Scan(&n); err != nil {
		return false, fmt.Errorf("read source info: %w", err)
	}
	return n > 0, nil
}

// AudioPath returns the recording the cache was built for, or "" when no
// Save has committed.
func (s *Store) AudioPath(ctx context.Context) (string, error) {
	var audioPath string
	err := s.db.QueryRowContext(ctx, "SELECT audio_path FROM source_info LIMIT 1").Scan(&audioPath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read source info: %w", err)
	}
	return audioPath, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM words").Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
