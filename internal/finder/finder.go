package finder

import (
	"context"
	"log/slog"
	"os"
	"time"

	"matchscan/internal/services"
)

// Config carries the tunables for one scan. Zero values are not usable; build
// it from the application config.
type Config struct {
	CoarseIntervalSeconds float64
	PrecisionSeconds      float64
	MinBreakSeconds       float64
	MaxRetries            int
	RetryOffsetSeconds    float64
	EarlyPointThreshold   int
	SecondsPerPoint       float64

	// EvidenceDir receives one confirming frame per recorded match. Empty
	// disables evidence capture.
	EvidenceDir string
	// KeepDir retains every extracted frame for debugging. Empty disables.
	KeepDir string
}

// Result is the outcome of one full scan.
type Result struct {
	Matches     []MatchStart
	OracleCalls int
	GridPoints  int
	Transitions int

	CoarseDuration time.Duration
	RefineDuration time.Duration
	TotalDuration  time.Duration
}

// Finder runs the full search over one video source. It owns a temp directory
// for extracted frames; Close must be called on every exit path.
type Finder struct {
	observer *Observer
	refiner  *refiner
	cfg      Config
	logger   *slog.Logger
	tempDir  string
}

// New builds a finder over the extraction and reading collaborators. The
// caller keeps ownership of the collaborators; the finder owns only its temp
// directory.
func New(extractor FrameExtractor, reader ScoreReader, cfg Config, logger *slog.Logger) (*Finder, error) {
	if cfg.CoarseIntervalSeconds <= 0 || cfg.PrecisionSeconds <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "finder", "new", "coarse interval and precision must be positive", nil)
	}
	if err := EnsureKeepDir(cfg.KeepDir); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "finder", "new", "create keep directory", err)
	}
	tempDir, err := os.MkdirTemp("", "matchscan-")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "finder", "new", "create temp directory", err)
	}

	observer := NewObserver(extractor, reader, tempDir, cfg.KeepDir, cfg.MaxRetries, cfg.RetryOffsetSeconds, logger)
	return &Finder{
		observer: observer,
		refiner: &refiner{
			observer:            observer,
			logger:              logger,
			precisionSeconds:    cfg.PrecisionSeconds,
			earlyPointThreshold: cfg.EarlyPointThreshold,
			secondsPerPoint:     cfg.SecondsPerPoint,
		},
		cfg:     cfg,
		logger:  logger,
		tempDir: tempDir,
	}, nil
}

// Close removes the finder's temp directory.
func (f *Finder) Close() error {
	if f.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(f.tempDir)
	f.tempDir = ""
	return err
}

// FindMatchStarts runs the coarse scan and refinement over a video of the
// given duration and returns all confirmed starts in timestamp order.
func (f *Finder) FindMatchStarts(ctx context.Context, durationSeconds float64) (Result, error) {
	if durationSeconds <= 0 {
		return Result{}, services.Wrap(services.ErrValidation, "finder", "scan", "video duration must be positive", nil)
	}

	started := time.Now()
	registry := NewRegistry(f.cfg.MinBreakSeconds)

	observations, err := f.coarseScan(ctx, durationSeconds, registry)
	coarseDone := time.Now()
	if err != nil {
		return Result{}, err
	}

	intervals := DetectTransitions(observations, f.cfg.MinBreakSeconds)
	f.logger.Info("coarse scan complete",
		"grid_points", len(observations),
		"transitions", len(intervals),
		"direct_hits", registry.Len(),
		"oracle_calls", f.observer.OracleCalls())

	if err := f.refineAll(ctx, intervals, registry); err != nil {
		return Result{}, err
	}
	finished := time.Now()

	result := Result{
		Matches:        registry.Finalize(),
		OracleCalls:    f.observer.OracleCalls(),
		GridPoints:     len(observations),
		Transitions:    len(intervals),
		CoarseDuration: coarseDone.Sub(started),
		RefineDuration: finished.Sub(coarseDone),
		TotalDuration:  finished.Sub(started),
	}
	f.logger.Info("scan complete",
		"matches", len(result.Matches),
		"oracle_calls", result.OracleCalls,
		"elapsed", result.TotalDuration)
	return result, nil
}

// coarseScan probes the fixed grid sequentially. Grid points already showing
// 0:0/0:0 are recorded immediately; refinement cannot improve on a frame that
// is the start itself at grid resolution.
func (f *Finder) coarseScan(ctx context.Context, durationSeconds float64, registry *Registry) ([]Observation, error) {
	grid := CoarseGrid(durationSeconds, f.cfg.CoarseIntervalSeconds)
	observations := make([]Observation, 0, len(grid))

	for _, ts := range grid {
		reading, framePath, actual, err := f.observer.ObserveWithRetry(ctx, ts)
		if err != nil {
			return nil, err
		}
		obs := Observation{Timestamp: actual, Reading: reading, FramePath: framePath}
		observations = append(observations, obs)

		if reading.IsMatchStart() {
			f.record(obs, actual, ReasonScoreAppeared, registry)
		}
	}
	return observations, nil
}

// refineAll narrows every candidate interval and records the survivors. An
// interval whose narrowing never reaches a fresh match is inconclusive and
// produces nothing.
func (f *Finder) refineAll(ctx context.Context, intervals []Interval, registry *Registry) error {
	for _, interval := range intervals {
		f.logger.Info("refining transition",
			"start", FormatTimestamp(interval.Start),
			"end", FormatTimestamp(interval.End),
			"reason", interval.Reason)

		obs, startTS, found, err := f.refiner.Refine(ctx, interval)
		if err != nil {
			return err
		}
		if !found {
			f.logger.Info("transition inconclusive",
				"start", FormatTimestamp(interval.Start),
				"end", FormatTimestamp(interval.End))
			continue
		}
		f.record(obs, startTS, interval.Reason, registry)
	}
	return nil
}

// record registers a confirmed start and captures its evidence frame. A
// candidate rejected by the registry is the same match seen twice and is only
// logged.
func (f *Finder) record(obs Observation, startTS float64, reason string, registry *Registry) {
	match := MatchStart{
		TimestampSeconds:   startTS,
		TimestampFormatted: FormatTimestamp(startTS),
		Player1:            obs.Reading.Player1,
		Player2:            obs.Reading.Player2,
		Reason:             reason,
	}
	if !registry.Add(match) {
		f.logger.Debug("duplicate start dropped",
			"timestamp", match.TimestampFormatted,
			"player1", match.Player1,
			"player2", match.Player2)
		return
	}

	if f.cfg.EvidenceDir != "" && obs.FramePath != "" {
		dest, err := SaveEvidence(f.cfg.EvidenceDir, obs.FramePath, match)
		if err != nil {
			f.logger.Warn("evidence frame not saved",
				"timestamp", match.TimestampFormatted,
				"error", err)
		} else {
			f.attachEvidence(registry, match.TimestampSeconds, dest)
		}
	}
	f.logger.Info("match start recorded",
		"timestamp", match.TimestampFormatted,
		"player1", match.Player1,
		"player2", match.Player2,
		"reason", reason)
}

func (f *Finder) attachEvidence(registry *Registry, timestampSeconds float64, imagePath string) {
	for i := range registry.matches {
		if registry.matches[i].TimestampSeconds == timestampSeconds {
			registry.matches[i].ImagePath = imagePath
			return
		}
	}
}
