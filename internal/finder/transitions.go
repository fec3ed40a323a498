package finder

import "matchscan/internal/textutil"

// Transition reasons, carried into logs and scan telemetry.
const (
	ReasonScoreAppeared  = "score appeared"
	ReasonPlayersChanged = "players changed"
	ReasonSetReset       = "set reset"
)

// Interval is a candidate window that contains at most one match start:
// something about the scoreboard changed between Start and End.
type Interval struct {
	Start  float64
	End    float64
	Reason string
}

// DetectTransitions classifies adjacent coarse observations into candidate
// intervals. Three signals, checked in priority order per pair:
//
//   - the scoreboard appears after an unreadable stretch, provided the gap
//     since the last readable sample is at least minBreakSeconds (a shorter
//     gap is a momentary occlusion, not a break between matches);
//   - the player pairing changes between two readable samples, regardless of
//     gap, since back-to-back matches share no readable break;
//   - the set count drops between two readable samples, which only happens
//     when a new match resets the scoreboard.
func DetectTransitions(observations []Observation, minBreakSeconds float64) []Interval {
	var intervals []Interval
	for i := 1; i < len(observations); i++ {
		prev, curr := observations[i-1], observations[i]

		switch {
		case !prev.Reading.Succeeded && curr.Reading.Succeeded:
			// Walk back through the unreadable run to the last sample that
			// still showed a score; a run reaching the front of the grid
			// starts at the first sample. The gap gate applies either way: a
			// short unreadable stretch is an occlusion, not a break.
			j := i - 1
			for j >= 0 && !observations[j].Reading.Succeeded {
				j--
			}
			noScoreStart := observations[0].Timestamp
			if j >= 0 {
				noScoreStart = observations[j].Timestamp
			}
			if curr.Timestamp-noScoreStart >= minBreakSeconds {
				intervals = append(intervals, Interval{
					Start:  noScoreStart,
					End:    curr.Timestamp,
					Reason: ReasonScoreAppeared,
				})
			}

		case prev.Reading.Succeeded && curr.Reading.Succeeded &&
			playersChanged(prev.Reading.Player1, prev.Reading.Player2, curr.Reading.Player1, curr.Reading.Player2):
			intervals = append(intervals, Interval{
				Start:  prev.Timestamp,
				End:    curr.Timestamp,
				Reason: ReasonPlayersChanged,
			})

		case prev.Reading.Succeeded && curr.Reading.Succeeded &&
			curr.Reading.Set1+curr.Reading.Set2 < prev.Reading.Set1+prev.Reading.Set2:
			intervals = append(intervals, Interval{
				Start:  prev.Timestamp,
				End:    curr.Timestamp,
				Reason: ReasonSetReset,
			})
		}
	}
	return intervals
}

// playersChanged compares pairings order-insensitively on normalized keys so
// OCR casing and diacritic noise cannot fake a transition. Pairs where
// normalization strips both names to nothing are treated as unchanged.
func playersChanged(p1, p2, q1, q2 string) bool {
	prevKey := textutil.PlayerSetKey(p1, p2)
	currKey := textutil.PlayerSetKey(q1, q2)
	if prevKey == "|" || currKey == "|" {
		return false
	}
	return prevKey != currKey
}
