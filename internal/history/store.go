package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status describes the outcome of a single mux run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Record is one processed video: the subtitle it was paired with and how
// the mux went.
type Record struct {
	ID           int64
	VideoPath    string
	SubtitlePath string
	OutputPath   string
	Confidence   float64
	MatchKind    string
	Reason       string
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Add inserts a new run record and returns it with its assigned ID.
func (s *Store) Add(ctx context.Context, rec Record) (*Record, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO mux_runs (
            video_path, subtitle_path, output_path, confidence,
            match_kind, reason, status, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.VideoPath,
		nullableString(rec.SubtitlePath),
		nullableString(rec.OutputPath),
		rec.Confidence,
		rec.MatchKind,
		nullableString(rec.Reason),
		string(rec.Status),
		nullableString(rec.ErrorMessage),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT id, video_path, subtitle_path, output_path, confidence,
        match_kind, reason, status, error_message, created_at
        FROM mux_runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// ForVideo returns every recorded run for a given video path, newest first.
func (s *Store) ForVideo(ctx context.Context, videoPath string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_path, subtitle_path, output_path, confidence,
            match_kind, reason, status, error_message, created_at
            FROM mux_runs WHERE video_path = ? ORDER BY id DESC`,
		videoPath,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs for video: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// StatusCounts returns how many runs ended in each status.
func (s *Store) StatusCounts(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM mux_runs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// Clear deletes all recorded runs and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM mux_runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanRecord(row interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		rec          Record
		subtitlePath sql.NullString
		outputPath   sql.NullString
		reason       sql.NullString
		errorMessage sql.NullString
		status       string
		createdAt    string
	)

	if err := row.Scan(
		&rec.ID,
		&rec.VideoPath,
		&subtitlePath,
		&outputPath,
		&rec.Confidence,
		&rec.MatchKind,
		&reason,
		&status,
		&errorMessage,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	rec.SubtitlePath = subtitlePath.String
	rec.OutputPath = outputPath.String
	rec.Reason = reason.String
	rec.Status = Status(status)
	rec.ErrorMessage = errorMessage.String
	rec.CreatedAt = parseTimeString(createdAt)
	return &rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
