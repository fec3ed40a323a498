// Package finder implements the multi-phase search that locates match starts
// inside long recordings.
//
// The search runs in two phases over a video of known duration:
//
//  1. Coarse scan: probe a fixed-interval timestamp grid, reading the
//     scoreboard at each point. Grid points that already show 0:0/0:0 are
//     recorded directly.
//  2. Refinement: classify adjacent coarse samples into transition candidates
//     (scoreboard appearing after a long break, player pairing change, set
//     count reset) and binary-search each candidate interval down to a few
//     seconds. When the exact 0:0 frame is never sampled, a low early score
//     is extrapolated backwards at a configurable pace per point.
//
// Confirmed starts pass through a registry that drops candidates within the
// minimum break duration of an existing entry, then come back sorted.
//
// Everything is sequential by design: the oracle is expensive and stateful, so
// probes never overlap, and the oracle-call counter stays exact. Cancellation
// is honoured before every probe.
package finder
