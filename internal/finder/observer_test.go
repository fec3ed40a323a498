package finder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"matchscan/internal/logging"
	"matchscan/internal/media/ffmpeg"
	"matchscan/internal/scoreboard"
)

type fakeExtractor struct {
	fail  func(ts float64) bool
	calls int
}

func (f *fakeExtractor) ExtractFrame(ctx context.Context, ts float64, outputPath string) error {
	f.calls++
	if f.fail != nil && f.fail(ts) {
		return fmt.Errorf("%w: no frame at %v", ffmpeg.ErrExtractionFailed, ts)
	}
	return os.WriteFile(outputPath, []byte("frame"), 0o644)
}

// fakeReader recovers the probe timestamp from the frame file name and
// answers from a script.
type fakeReader struct {
	script func(ts float64) scoreboard.Reading
	calls  int
}

func (f *fakeReader) ReadScore(ctx context.Context, framePath string) (scoreboard.Reading, error) {
	f.calls++
	base := filepath.Base(framePath)
	raw := strings.TrimSuffix(strings.TrimPrefix(base, "frame_"), ".jpg")
	ts, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return scoreboard.Failed("unexpected frame name"), nil
	}
	return f.script(ts), nil
}

func scoreAt(p1, p2 string, s1, s2, g1, g2 int) scoreboard.Reading {
	return scoreboard.Reading{
		Succeeded: true,
		Player1:   p1, Player2: p2,
		Set1: s1, Set2: s2,
		Game1: g1, Game2: g2,
	}
}

func newTestObserver(t *testing.T, extractor FrameExtractor, reader ScoreReader) *Observer {
	t.Helper()
	return NewObserver(extractor, reader, t.TempDir(), "", 3, 5, logging.NewNop())
}

func TestRetryOffsets(t *testing.T) {
	got := retryOffsets(3, 5)
	want := []float64{0, 5, -5, 10}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestObserveExtractionFailureSkipsOracle(t *testing.T) {
	extractor := &fakeExtractor{fail: func(float64) bool { return true }}
	reader := &fakeReader{script: func(float64) scoreboard.Reading {
		return scoreAt("A", "B", 0, 0, 0, 0)
	}}
	observer := newTestObserver(t, extractor, reader)

	reading, _, err := observer.Observe(context.Background(), 180)
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	if reading.Succeeded {
		t.Fatalf("expected failed reading, got %+v", reading)
	}
	if observer.OracleCalls() != 0 {
		t.Fatalf("extraction failure must not count an oracle call, got %d", observer.OracleCalls())
	}
	if reader.calls != 0 {
		t.Fatalf("reader must not be invoked after extraction failure")
	}
}

func TestObserveCountsUnparsableReadings(t *testing.T) {
	extractor := &fakeExtractor{}
	reader := &fakeReader{script: func(float64) scoreboard.Reading {
		return scoreboard.Failed("no scoreboard visible")
	}}
	observer := newTestObserver(t, extractor, reader)

	if _, _, err := observer.Observe(context.Background(), 180); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	if observer.OracleCalls() != 1 {
		t.Fatalf("unparsable reading must count an oracle call, got %d", observer.OracleCalls())
	}
}

func TestObserveWithRetryReturnsOriginalTimestampOnFailure(t *testing.T) {
	extractor := &fakeExtractor{}
	reader := &fakeReader{script: func(float64) scoreboard.Reading {
		return scoreboard.Failed("no scoreboard visible")
	}}
	observer := newTestObserver(t, extractor, reader)

	reading, _, actual, err := observer.ObserveWithRetry(context.Background(), 540)
	if err != nil {
		t.Fatalf("ObserveWithRetry failed: %v", err)
	}
	if reading.Succeeded {
		t.Fatalf("expected failure, got %+v", reading)
	}
	if reading.Err != "all retries failed" {
		t.Fatalf("unexpected failure reason %q", reading.Err)
	}
	if actual != 540 {
		t.Fatalf("failed retry must report the requested timestamp, got %v", actual)
	}
	if reader.calls != 4 {
		t.Fatalf("expected 4 probe attempts, got %d", reader.calls)
	}
}

func TestObserveWithRetrySucceedsAtOffset(t *testing.T) {
	extractor := &fakeExtractor{}
	reader := &fakeReader{script: func(ts float64) scoreboard.Reading {
		if ts == 535 {
			return scoreAt("MA LONG", "FAN ZHENDONG", 0, 0, 0, 0)
		}
		return scoreboard.Failed("no scoreboard visible")
	}}
	observer := newTestObserver(t, extractor, reader)

	reading, _, actual, err := observer.ObserveWithRetry(context.Background(), 540)
	if err != nil {
		t.Fatalf("ObserveWithRetry failed: %v", err)
	}
	if !reading.Succeeded || actual != 535 {
		t.Fatalf("expected success at 535, got %v %+v", actual, reading)
	}
}

func TestObserveWithRetrySkipsNegativeTimestamps(t *testing.T) {
	extractor := &fakeExtractor{}
	var probed []float64
	reader := &fakeReader{script: func(ts float64) scoreboard.Reading {
		probed = append(probed, ts)
		return scoreboard.Failed("no scoreboard visible")
	}}
	observer := newTestObserver(t, extractor, reader)

	if _, _, _, err := observer.ObserveWithRetry(context.Background(), 0); err != nil {
		t.Fatalf("ObserveWithRetry failed: %v", err)
	}
	for _, ts := range probed {
		if ts < 0 {
			t.Fatalf("probed negative timestamp %v", ts)
		}
	}
	if len(probed) != 3 {
		t.Fatalf("expected 3 non-negative attempts, got %v", probed)
	}
}

func TestObserveHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	observer := newTestObserver(t, &fakeExtractor{}, &fakeReader{script: func(float64) scoreboard.Reading {
		return scoreboard.Failed("unreachable")
	}})
	if _, _, err := observer.Observe(ctx, 180); err == nil {
		t.Fatal("expected cancellation error")
	}
	if observer.OracleCalls() != 0 {
		t.Fatalf("cancelled probe must not count an oracle call")
	}
}
