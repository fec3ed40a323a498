package finder

import "sort"

// MatchStart is one confirmed match start.
type MatchStart struct {
	TimestampSeconds   float64
	TimestampFormatted string
	Player1            string
	Player2            string
	ImagePath          string
	Reason             string
}

// Registry accumulates confirmed starts and enforces the minimum separation
// invariant: two real matches cannot begin within one break duration of each
// other, so a candidate that close to an existing entry is the same match seen
// twice.
type Registry struct {
	minSeparationSeconds float64
	matches              []MatchStart
}

func NewRegistry(minSeparationSeconds float64) *Registry {
	return &Registry{minSeparationSeconds: minSeparationSeconds}
}

// Add records the candidate unless it falls within the minimum separation of
// an already recorded start. Returns whether the candidate was kept.
func (r *Registry) Add(m MatchStart) bool {
	for _, existing := range r.matches {
		delta := m.TimestampSeconds - existing.TimestampSeconds
		if delta < 0 {
			delta = -delta
		}
		if delta < r.minSeparationSeconds {
			return false
		}
	}
	r.matches = append(r.matches, m)
	return true
}

// Len reports the number of recorded starts.
func (r *Registry) Len() int {
	return len(r.matches)
}

// Finalize returns the recorded starts ordered by timestamp.
func (r *Registry) Finalize() []MatchStart {
	out := make([]MatchStart, len(r.matches))
	copy(out, r.matches)
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimestampSeconds < out[j].TimestampSeconds
	})
	return out
}
