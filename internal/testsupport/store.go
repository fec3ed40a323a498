package testsupport

import (
	"context"
	"testing"

	"matchscan/internal/config"
	"matchscan/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// EnqueueVideo records a pending video for tests using the provided store.
func EnqueueVideo(t testing.TB, s *store.Store, videoID, title string) *store.Video {
	t.Helper()

	video, err := s.Enqueue(context.Background(), videoID, title, "", "")
	if err != nil {
		t.Fatalf("store.Enqueue: %v", err)
	}
	return video
}
