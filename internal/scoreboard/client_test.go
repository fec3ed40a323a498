package scoreboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFrame(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	return path
}

func TestReadScoreSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/read" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("crop_bottom") != "0.14" {
			t.Fatalf("unexpected crop_bottom %q", r.FormValue("crop_bottom"))
		}
		if _, _, err := r.FormFile("frame"); err != nil {
			t.Fatalf("missing frame part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"row 1: MA LONG, 0, 0 row 2: FAN ZHENDONG, 0, 0"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, CropBottom: 0.14, CropLeft: 0.40})
	reading, err := client.ReadScore(context.Background(), writeFrame(t))
	if err != nil {
		t.Fatalf("ReadScore failed: %v", err)
	}
	if !reading.IsMatchStart() {
		t.Fatalf("expected match start, got %+v", reading)
	}
}

func TestReadScoreRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "model busy", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"text":"row 1: A, 1, 2 row 2: B, 0, 5"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL},
		WithSleeper(func(time.Duration) {}),
		WithRetryBackoff(time.Millisecond, time.Millisecond))
	reading, err := client.ReadScore(context.Background(), writeFrame(t))
	if err != nil {
		t.Fatalf("ReadScore failed: %v", err)
	}
	if !reading.Succeeded {
		t.Fatalf("expected success after retry, got %+v", reading)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestReadScoreServiceFailureIsValueNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad frame", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	reading, err := client.ReadScore(context.Background(), writeFrame(t))
	if err != nil {
		t.Fatalf("expected failure as value, got error %v", err)
	}
	if reading.Succeeded {
		t.Fatalf("expected failed reading, got %+v", reading)
	}
}

func TestReadScoreCancellationIsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	if _, err := client.ReadScore(ctx, writeFrame(t)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}

func TestHealthCheckReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading model", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check failure")
	}
}
