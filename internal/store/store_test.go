package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "matchscan.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEnqueueIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Enqueue(ctx, "abc123", "WTT Finals Day 3", "20260815", "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if first.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", first.Status)
	}

	second, err := s.Enqueue(ctx, "abc123", "different title", "", "")
	if err != nil {
		t.Fatalf("second Enqueue failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if second.Title != "WTT Finals Day 3" {
		t.Fatalf("re-enqueue must not overwrite, got title %q", second.Title)
	}
}

func TestNextPendingOrdersByCreation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Enqueue(ctx, "first", "", "", ""); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if _, err := s.Enqueue(ctx, "second", "", "", ""); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	next, err := s.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if next == nil || next.VideoID != "first" {
		t.Fatalf("expected first pending video, got %+v", next)
	}
}

func TestScanLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	video, err := s.Enqueue(ctx, "abc123", "title", "", "")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if err := s.MarkScanning(ctx, video.ID); err != nil {
		t.Fatalf("MarkScanning failed: %v", err)
	}
	if err := s.MarkScanned(ctx, video.ID, 14523.5, 87); err != nil {
		t.Fatalf("MarkScanned failed: %v", err)
	}

	got, err := s.GetByVideoID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.Status != StatusScanned {
		t.Fatalf("expected scanned status, got %s", got.Status)
	}
	if got.OracleCalls != 87 {
		t.Fatalf("expected 87 oracle calls, got %d", got.OracleCalls)
	}
	if got.ScannedAt == nil {
		t.Fatal("expected scanned_at to be set")
	}
	if got.DurationSeconds != 14523.5 {
		t.Fatalf("unexpected duration %v", got.DurationSeconds)
	}
}

func TestMarkFailedRecordsMessage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	video, err := s.Enqueue(ctx, "abc123", "", "", "")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := s.MarkFailed(ctx, video.ID, "oracle unreachable"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	got, err := s.GetByVideoID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.Status != StatusFailed || got.ErrorMessage != "oracle unreachable" {
		t.Fatalf("unexpected failure state %+v", got)
	}
}

func TestResetStuckScanning(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	video, err := s.Enqueue(ctx, "abc123", "", "", "")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := s.MarkScanning(ctx, video.ID); err != nil {
		t.Fatalf("MarkScanning failed: %v", err)
	}

	reset, err := s.ResetStuckScanning(ctx)
	if err != nil {
		t.Fatalf("ResetStuckScanning failed: %v", err)
	}
	if reset != 1 {
		t.Fatalf("expected 1 reset video, got %d", reset)
	}

	got, err := s.GetByVideoID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("expected pending after reset, got %s", got.Status)
	}
}

func TestReplaceMatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	video, err := s.Enqueue(ctx, "abc123", "", "", "")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	initial := []Match{
		{TimestampSeconds: 600, TimestampText: "00:10:00", Player1: "MA LONG", Player2: "FAN ZHENDONG"},
		{TimestampSeconds: 4200, TimestampText: "01:10:00", Player1: "LIN YUN-JU", Player2: "HUGO CALDERANO"},
	}
	if err := s.ReplaceMatches(ctx, video.ID, initial); err != nil {
		t.Fatalf("ReplaceMatches failed: %v", err)
	}

	replacement := []Match{
		{TimestampSeconds: 620, TimestampText: "00:10:20", Player1: "MA LONG", Player2: "FAN ZHENDONG"},
	}
	if err := s.ReplaceMatches(ctx, video.ID, replacement); err != nil {
		t.Fatalf("second ReplaceMatches failed: %v", err)
	}

	matches, err := s.MatchesForVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("MatchesForVideo failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected replacement to clear old rows, got %+v", matches)
	}
	if matches[0].TimestampSeconds != 620 {
		t.Fatalf("unexpected match %+v", matches[0])
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, _ := s.Enqueue(ctx, "a", "", "", "")
	if _, err := s.Enqueue(ctx, "b", "", "", ""); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := s.MarkScanned(ctx, a.ID, 100, 5); err != nil {
		t.Fatalf("MarkScanned failed: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Scanned != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestSchemaVersionGuard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matchscan.db")

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE schema_version SET version = 99`); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = s.Close()

	if _, err := OpenPath(path); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
