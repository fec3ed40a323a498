package youtube

import (
	"errors"
	"testing"

	"matchscan/internal/services"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/jfKfPfyJRdk", "jfKfPfyJRdk"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		got, err := ExtractVideoID(tc.url)
		if err != nil {
			t.Errorf("ExtractVideoID(%q) failed: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestExtractVideoIDRejectsNonVideoURLs(t *testing.T) {
	for _, raw := range []string{
		"https://www.youtube.com/",
		"https://example.com/watch?v=abc",
		"not a url at all %%",
	} {
		if _, err := ExtractVideoID(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		} else if !errors.Is(err, services.ErrValidation) {
			t.Errorf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://www.youtube.com/watch?v=abc") {
		t.Error("watch URL not recognised")
	}
	if !IsURL("https://youtu.be/abc") {
		t.Error("short URL not recognised")
	}
	if IsURL("/data/videos/match.mp4") {
		t.Error("local path misclassified as URL")
	}
}

func TestParseMetadata(t *testing.T) {
	raw := []byte(`{"id":"abc123","title":"WTT Finals Day 3","upload_date":"20260815","channel":"WTT","duration":14523.5,"webpage_url":"https://www.youtube.com/watch?v=abc123"}`)
	meta, err := parseMetadata(raw)
	if err != nil {
		t.Fatalf("parseMetadata failed: %v", err)
	}
	if meta.ID != "abc123" || meta.Title != "WTT Finals Day 3" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.UploadDate != "20260815" {
		t.Fatalf("unexpected upload date %q", meta.UploadDate)
	}
}

func TestParseMetadataRequiresID(t *testing.T) {
	if _, err := parseMetadata([]byte(`{"title":"no id"}`)); err == nil {
		t.Fatal("expected error for missing video ID")
	}
}

func TestParseMetadataFallsBackToIDForTitle(t *testing.T) {
	meta, err := parseMetadata([]byte(`{"id":"abc123"}`))
	if err != nil {
		t.Fatalf("parseMetadata failed: %v", err)
	}
	if meta.Title != "abc123" {
		t.Fatalf("expected ID fallback title, got %q", meta.Title)
	}
}

func TestParseChannelListing(t *testing.T) {
	raw := []byte(`{"entries":[{"id":"v1","title":"Day 1"},{"id":"v2","title":"Day 2"},{"id":"","title":"placeholder"}]}`)
	entries, err := parseChannelListing(raw)
	if err != nil {
		t.Fatalf("parseChannelListing failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].ID != "v1" || entries[1].ID != "v2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("abc123"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected watch URL %q", got)
	}
}
