package finder

import (
	"context"
	"log/slog"
)

// candidate is one qualifying observation captured while narrowing an
// interval.
type candidate struct {
	obs   Observation
	found bool
}

// refiner binary-searches a candidate interval down to the configured
// precision and turns the surviving evidence into a start timestamp.
type refiner struct {
	observer *Observer
	logger   *slog.Logger

	precisionSeconds    float64
	earlyPointThreshold int
	secondsPerPoint     float64
}

// Refine narrows the interval until it is shorter than the precision. Any
// successful reading at the midpoint means the match is already underway
// there, so the upper bound moves in; only an unreadable frame pushes the
// lower bound up.
//
// Two candidates are tracked separately: the exact 0:0 observation, and the
// earliest early game observation as a fallback. An exact frame wins outright
// and reports its own timestamp. Failing that, the early observation is
// walked back by the points already played, floored at zero. When neither was
// ever seen the interval is inconclusive and no start is reported.
func (r *refiner) Refine(ctx context.Context, interval Interval) (Observation, float64, bool, error) {
	var exact, earliestEarly candidate
	start, end := interval.Start, interval.End

	for end-start > r.precisionSeconds {
		mid := (start + end) / 2
		reading, framePath, actual, err := r.observer.ObserveWithRetry(ctx, mid)
		if err != nil {
			return Observation{}, 0, false, err
		}
		obs := Observation{Timestamp: actual, Reading: reading, FramePath: framePath}

		switch {
		case reading.IsMatchStart():
			exact = candidate{obs: obs, found: true}
			end = mid
		case reading.IsEarlyMatch(r.earlyPointThreshold):
			// Retry offsets can land a later probe on an earlier frame, so
			// the earliest actual timestamp wins, not the latest probe.
			if !earliestEarly.found || obs.Timestamp < earliestEarly.obs.Timestamp {
				earliestEarly = candidate{obs: obs, found: true}
			}
			end = mid
		case reading.Succeeded && (reading.TotalPoints() > 0 || reading.Set1 > 0 || reading.Set2 > 0):
			// Score already progressed; the start lies earlier.
			end = mid
		default:
			// No scoreboard visible yet; the start lies later.
			start = mid
		}
		r.logger.Debug("refine step",
			"mid", mid,
			"window", end-start,
			"succeeded", reading.Succeeded)
	}

	switch {
	case exact.found:
		return exact.obs, exact.obs.Timestamp, true, nil
	case earliestEarly.found:
		return earliestEarly.obs, r.extrapolateStart(earliestEarly.obs), true, nil
	default:
		return Observation{}, 0, false, nil
	}
}

// extrapolateStart walks an early game observation back by the points already
// played, floored at zero.
func (r *refiner) extrapolateStart(obs Observation) float64 {
	points := obs.Reading.TotalPoints()
	if points <= 0 {
		return obs.Timestamp
	}
	ts := obs.Timestamp - float64(points)*r.secondsPerPoint
	if ts < 0 {
		ts = 0
	}
	return ts
}
