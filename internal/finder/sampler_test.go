package finder

import "testing"

func TestCoarseGrid(t *testing.T) {
	grid := CoarseGrid(3600, 180)
	if len(grid) != 20 {
		t.Fatalf("expected 20 grid points, got %d", len(grid))
	}
	if grid[0] != 0 {
		t.Fatalf("grid must start at zero, got %v", grid[0])
	}
	if grid[19] != 3420 {
		t.Fatalf("unexpected last grid point %v", grid[19])
	}
}

func TestCoarseGridShortVideo(t *testing.T) {
	grid := CoarseGrid(100, 180)
	if len(grid) != 1 || grid[0] != 0 {
		t.Fatalf("expected single probe at zero, got %v", grid)
	}
}

func TestCoarseGridExcludesDuration(t *testing.T) {
	grid := CoarseGrid(360, 180)
	for _, ts := range grid {
		if ts >= 360 {
			t.Fatalf("grid point %v not strictly below duration", ts)
		}
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 grid points, got %d", len(grid))
	}
}

func TestCoarseGridInvalidInputs(t *testing.T) {
	if grid := CoarseGrid(0, 180); grid != nil {
		t.Fatalf("expected nil grid for zero duration, got %v", grid)
	}
	if grid := CoarseGrid(3600, 0); grid != nil {
		t.Fatalf("expected nil grid for zero interval, got %v", grid)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{360, "00:06:00"},
		{3723, "01:02:03"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
