package services_test

import (
	"errors"
	"strings"
	"testing"

	"matchscan/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ffmpeg", "extract", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ffmpeg", "extract", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "oracle", "read", "parse failed", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatalClassification(t *testing.T) {
	fatal := services.Wrap(services.ErrUnavailable, "ffprobe", "duration", "no duration", nil)
	if !services.IsFatal(fatal) {
		t.Fatalf("expected fatal for unavailable error: %v", fatal)
	}

	transient := services.Wrap(services.ErrTransient, "oracle", "read", "occluded", nil)
	if services.IsFatal(transient) {
		t.Fatalf("expected non-fatal for transient error: %v", transient)
	}

	if services.IsFatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
}
