package services_test

import (
	"context"
	"testing"

	"matchscan/internal/services"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithVideoID(ctx, "i8OS-w44mrQ")
	ctx = services.WithPhase(ctx, "coarse-scan")
	ctx = services.WithRunID(ctx, "run-123")

	if id, ok := services.VideoIDFromContext(ctx); !ok || id != "i8OS-w44mrQ" {
		t.Fatalf("unexpected video id: %q %v", id, ok)
	}
	if phase, ok := services.PhaseFromContext(ctx); !ok || phase != "coarse-scan" {
		t.Fatalf("unexpected phase: %q %v", phase, ok)
	}
	if run, ok := services.RunIDFromContext(ctx); !ok || run != "run-123" {
		t.Fatalf("unexpected run id: %q %v", run, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := services.WithPhase(context.Background(), "")
	if _, ok := services.PhaseFromContext(ctx); ok {
		t.Fatal("empty phase should not be stored")
	}
}
