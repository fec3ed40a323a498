package ffprobe

import (
	"math"
	"testing"
)

func TestDurationSeconds(t *testing.T) {
	result := Result{Format: Format{Duration: "7523.04"}}
	if result.DurationSeconds() != 7523.04 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationSecondsHandlesInvalidNumbers(t *testing.T) {
	for _, value := range []string{"", "bad", "N/A"} {
		result := Result{Format: Format{Duration: value}}
		if !math.IsNaN(result.DurationSeconds()) {
			t.Fatalf("expected NaN for %q, got %v", value, result.DurationSeconds())
		}
	}
}
