// Package store persists scanned videos and their confirmed match starts in
// SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"matchscan/internal/config"
)

// Store manages scan persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the scan database under the state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.StateDir, "matchscan.db"))
}

// OpenPath connects to the database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
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

// Enqueue records a video as pending. Re-enqueueing a known video returns the
// existing row untouched, so repeated channel syncs are idempotent.
func (s *Store) Enqueue(ctx context.Context, videoID, title, uploadDate, sourceURL string) (*Video, error) {
	if existing, err := s.GetByVideoID(ctx, videoID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO videos (video_id, title, upload_date, source_url, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		videoID,
		nullableString(title),
		nullableString(uploadDate),
		nullableString(sourceURL),
		StatusPending,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return s.GetByVideoID(ctx, videoID)
}

// GetByVideoID fetches a video by its external identifier. A missing video is
// (nil, nil).
func (s *Store) GetByVideoID(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE video_id = ?`, videoID)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// NextPending returns the oldest pending video, or nil when the queue is
// empty.
func (s *Store) NextPending(ctx context.Context) (*Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE status = ? ORDER BY created_at LIMIT 1`,
		StatusPending,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next pending video: %w", err)
	}
	return video, nil
}

// MarkScanning transitions a video into the scanning state.
func (s *Store) MarkScanning(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, StatusScanning, "")
}

// MarkScanned records a completed scan with its telemetry.
func (s *Store) MarkScanned(ctx context.Context, id int64, durationSeconds float64, oracleCalls int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE videos
         SET status = ?, duration_seconds = ?, oracle_calls = ?, error_message = NULL,
             scanned_at = ?, updated_at = ?
         WHERE id = ?`,
		StatusScanned, durationSeconds, oracleCalls, now, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark scanned: %w", err)
	}
	return nil
}

// MarkFailed records a scan failure and its message.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	return s.setStatus(ctx, id, StatusFailed, message)
}

func (s *Store) setStatus(ctx context.Context, id int64, status Status, errorMessage string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE videos SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status, nullableString(errorMessage), now, id,
	)
	if err != nil {
		return fmt.Errorf("set status %s: %w", status, err)
	}
	return nil
}

// ResetStuckScanning returns interrupted scans to pending so the next run
// picks them up again.
func (s *Store) ResetStuckScanning(ctx context.Context) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET status = ?, updated_at = ? WHERE status = ?`,
		StatusPending, now, StatusScanning,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck scans: %w", err)
	}
	return res.RowsAffected()
}

// ListVideos returns videos filtered by status, or all videos when no status
// is given, oldest first.
func (s *Store) ListVideos(ctx context.Context, statuses ...Status) ([]*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// Stats counts videos grouped by status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM videos GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("video stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, err
		}
		stats.Total += count
		switch status {
		case StatusPending:
			stats.Pending += count
		case StatusScanning:
			stats.Scanning += count
		case StatusScanned:
			stats.Scanned += count
		case StatusFailed:
			stats.Failed += count
		}
	}
	return stats, rows.Err()
}

// Remove deletes a video and its matches.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const videoColumns = "id, video_id, title, upload_date, source_url, status, duration_seconds, oracle_calls, error_message, created_at, updated_at, scanned_at"

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		id           int64
		videoID      string
		title        sql.NullString
		uploadDate   sql.NullString
		sourceURL    sql.NullString
		statusStr    string
		duration     sql.NullFloat64
		oracleCalls  sql.NullInt64
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
		scannedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&videoID,
		&title,
		&uploadDate,
		&sourceURL,
		&statusStr,
		&duration,
		&oracleCalls,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&scannedRaw,
	); err != nil {
		return nil, err
	}

	video := &Video{
		ID:              id,
		VideoID:         videoID,
		Title:           title.String,
		UploadDate:      uploadDate.String,
		SourceURL:       sourceURL.String,
		Status:          Status(statusStr),
		DurationSeconds: duration.Float64,
		OracleCalls:     int(oracleCalls.Int64),
		ErrorMessage:    errorMessage.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		video.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		video.UpdatedAt = updated
	}
	if scannedRaw.Valid {
		if scanned, err := parseTimeString(scannedRaw.String); err == nil {
			video.ScannedAt = &scanned
		}
	}
	return video, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
