package scoreboard

// Unknown is the sentinel for score fields that could not be read.
const Unknown = -1

// Reading is the outcome of one scoreboard observation. Failure is a value,
// not an error: an occluded or unparsable scoreboard is a routine result that
// the search reasons over.
type Reading struct {
	Succeeded bool
	Player1   string
	Player2   string
	Set1      int
	Set2      int
	Game1     int
	Game2     int
	Err       string
}

// Failed builds an unsuccessful reading carrying the failure reason.
func Failed(reason string) Reading {
	return Reading{
		Set1: Unknown, Set2: Unknown,
		Game1: Unknown, Game2: Unknown,
		Err: reason,
	}
}

// IsMatchStart reports a fresh match: 0:0 sets and 0:0 game.
func (r Reading) IsMatchStart() bool {
	return r.Succeeded && r.Set1 == 0 && r.Set2 == 0 && r.Game1 == 0 && r.Game2 == 0
}

// IsGameStart reports a fresh game at any set score.
func (r Reading) IsGameStart() bool {
	return r.Succeeded && r.Game1 == 0 && r.Game2 == 0
}

// IsEarlyMatch reports the first game of a match with at most maxPoints points
// played. Used as a fallback signal when the exact 0:0 frame was never sampled.
func (r Reading) IsEarlyMatch(maxPoints int) bool {
	if !r.Succeeded {
		return false
	}
	if r.Set1 != 0 || r.Set2 != 0 {
		return false
	}
	return r.TotalPoints() <= maxPoints
}

// TotalPoints returns the points played in the current game, or Unknown for a
// failed reading.
func (r Reading) TotalPoints() int {
	if !r.Succeeded {
		return Unknown
	}
	return r.Game1 + r.Game2
}
