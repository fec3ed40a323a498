package scoreboard

import "testing"

const earlyPointThreshold = 15

func TestPredicateImplications(t *testing.T) {
	// IsMatchStart implies IsGameStart implies Succeeded.
	readings := []Reading{
		{Succeeded: true, Set1: 0, Set2: 0, Game1: 0, Game2: 0},
		{Succeeded: true, Set1: 2, Set2: 1, Game1: 0, Game2: 0},
		{Succeeded: true, Set1: 0, Set2: 0, Game1: 5, Game2: 3},
		Failed("occluded"),
	}
	for _, r := range readings {
		if r.IsMatchStart() && !r.IsGameStart() {
			t.Fatalf("match start must be game start: %+v", r)
		}
		if r.IsGameStart() && !r.Succeeded {
			t.Fatalf("game start must be a successful reading: %+v", r)
		}
	}
}

func TestIsMatchStart(t *testing.T) {
	r := Reading{Succeeded: true, Set1: 0, Set2: 0, Game1: 0, Game2: 0}
	if !r.IsMatchStart() {
		t.Fatal("0:0 sets 0:0 game must be a match start")
	}
	r.Game1 = 1
	if r.IsMatchStart() {
		t.Fatal("1:0 game must not be a match start")
	}
}

func TestIsEarlyMatchRequiresZeroSets(t *testing.T) {
	cases := []struct {
		r    Reading
		want bool
	}{
		{Reading{Succeeded: true, Set1: 0, Set2: 0, Game1: 1, Game2: 0}, true},
		{Reading{Succeeded: true, Set1: 0, Set2: 0, Game1: 8, Game2: 7}, true},
		{Reading{Succeeded: true, Set1: 0, Set2: 0, Game1: 9, Game2: 7}, false},
		{Reading{Succeeded: true, Set1: 1, Set2: 0, Game1: 0, Game2: 0}, false},
		{Reading{Succeeded: true, Set1: 0, Set2: 2, Game1: 1, Game2: 0}, false},
		{Failed("no overlay"), false},
	}
	for _, tc := range cases {
		if got := tc.r.IsEarlyMatch(earlyPointThreshold); got != tc.want {
			t.Fatalf("IsEarlyMatch(%+v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestTotalPoints(t *testing.T) {
	r := Reading{Succeeded: true, Game1: 4, Game2: 7}
	if r.TotalPoints() != 11 {
		t.Fatalf("unexpected total points: %d", r.TotalPoints())
	}
	if Failed("x").TotalPoints() != Unknown {
		t.Fatal("failed reading must report Unknown points")
	}
}

func TestFailedCarriesSentinels(t *testing.T) {
	r := Failed("frame extraction failed")
	if r.Succeeded {
		t.Fatal("failed reading must not succeed")
	}
	if r.Set1 != Unknown || r.Game2 != Unknown {
		t.Fatalf("expected sentinel scores, got %+v", r)
	}
	if r.Err != "frame extraction failed" {
		t.Fatalf("unexpected error text: %q", r.Err)
	}
}
