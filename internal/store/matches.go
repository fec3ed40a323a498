package store

import (
	"context"
	"fmt"
	"time"
)

// ReplaceMatches atomically swaps a video's recorded matches for the given
// set. Re-scanning a video must not accumulate stale rows.
func (s *Store) ReplaceMatches(ctx context.Context, videoRowID int64, matches []Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin matches tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE video_rowid = ?`, videoRowID); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, m := range matches {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO matches (video_rowid, timestamp_seconds, timestamp_text, player1, player2, image_path, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			videoRowID,
			m.TimestampSeconds,
			m.TimestampText,
			nullableString(m.Player1),
			nullableString(m.Player2),
			nullableString(m.ImagePath),
			now,
		)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit matches: %w", err)
	}
	return nil
}

// MatchesForVideo returns a video's matches ordered by timestamp.
func (s *Store) MatchesForVideo(ctx context.Context, videoRowID int64) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_rowid, timestamp_seconds, timestamp_text, player1, player2, image_path, created_at
         FROM matches WHERE video_rowid = ? ORDER BY timestamp_seconds`,
		videoRowID,
	)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m          Match
			player1    *string
			player2    *string
			imagePath  *string
			createdRaw string
		)
		if err := rows.Scan(&m.ID, &m.VideoRowID, &m.TimestampSeconds, &m.TimestampText, &player1, &player2, &imagePath, &createdRaw); err != nil {
			return nil, err
		}
		if player1 != nil {
			m.Player1 = *player1
		}
		if player2 != nil {
			m.Player2 = *player2
		}
		if imagePath != nil {
			m.ImagePath = *imagePath
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			m.CreatedAt = created
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// MatchCount returns the number of recorded matches for a video.
func (s *Store) MatchCount(ctx context.Context, videoRowID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM matches WHERE video_rowid = ?`, videoRowID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}
