package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"matchscan/internal/fileutil"
	"matchscan/internal/media/ffmpeg"
	"matchscan/internal/scoreboard"
)

const (
	reasonExtractionFailed = "frame extraction failed"
	reasonAllRetriesFailed = "all retries failed"
)

// FrameExtractor extracts a frame from the video source at a timestamp.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, timestampSeconds float64, outputPath string) error
}

// ScoreReader interprets the scoreboard in a frame image.
type ScoreReader interface {
	ReadScore(ctx context.Context, framePath string) (scoreboard.Reading, error)
}

// FFmpegExtractor adapts the ffmpeg wrapper to the FrameExtractor contract for
// a fixed video source.
type FFmpegExtractor struct {
	Binary string
	Source string
}

func (e FFmpegExtractor) ExtractFrame(ctx context.Context, timestampSeconds float64, outputPath string) error {
	return ffmpeg.ExtractFrame(ctx, e.Binary, e.Source, timestampSeconds, outputPath)
}

// Observation is one probed grid point: the timestamp actually observed, what
// the scoreboard said there, and the extracted frame (empty when extraction
// failed). Observations are immutable once produced.
type Observation struct {
	Timestamp float64
	Reading   scoreboard.Reading
	FramePath string
}

// Observer turns a timestamp into a scoreboard reading by extracting a frame
// and asking the reader service, retrying around the requested timestamp when
// the overlay is missing. It owns the scan's oracle-call accounting.
type Observer struct {
	extractor FrameExtractor
	reader    ScoreReader
	logger    *slog.Logger

	tempDir     string
	keepDir     string
	maxRetries  int
	retryOffset float64

	oracleCalls int
}

// NewObserver wires an observer over the collaborators. keepDir may be empty
// to disable frame retention.
func NewObserver(extractor FrameExtractor, reader ScoreReader, tempDir, keepDir string, maxRetries int, retryOffsetSeconds float64, logger *slog.Logger) *Observer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Observer{
		extractor:   extractor,
		reader:      reader,
		logger:      logger,
		tempDir:     tempDir,
		keepDir:     keepDir,
		maxRetries:  maxRetries,
		retryOffset: retryOffsetSeconds,
	}
}

// OracleCalls reports how many times the reader service was invoked, including
// calls whose OCR text failed to parse. Attempts that never reached the oracle
// (frame extraction failure) are not counted.
func (o *Observer) OracleCalls() int {
	return o.oracleCalls
}

// Observe extracts and reads a single frame at the given timestamp. Extraction
// or read failure comes back as a failed reading, never an error; the error
// return is reserved for cancellation.
func (o *Observer) Observe(ctx context.Context, timestampSeconds float64) (scoreboard.Reading, string, error) {
	if err := ctx.Err(); err != nil {
		return scoreboard.Failed(err.Error()), "", err
	}

	framePath := filepath.Join(o.tempDir, fmt.Sprintf("frame_%.1f.jpg", timestampSeconds))
	if err := o.extractor.ExtractFrame(ctx, timestampSeconds, framePath); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return scoreboard.Failed(ctxErr.Error()), "", ctxErr
		}
		if !errors.Is(err, ffmpeg.ErrExtractionFailed) {
			o.logger.Debug("unexpected extractor failure", "timestamp", timestampSeconds, "error", err)
		}
		return scoreboard.Failed(reasonExtractionFailed), "", nil
	}
	o.retainFrame(framePath, timestampSeconds)

	o.oracleCalls++
	reading, err := o.reader.ReadScore(ctx, framePath)
	if err != nil {
		return reading, framePath, err
	}
	return reading, framePath, nil
}

// retryOffsets returns the probe offsets for one retried observation, in
// order. The backward probe slots in after the second forward attempt: the
// overlay may have just faded at the requested timestamp.
func retryOffsets(maxRetries int, offset float64) []float64 {
	offsets := make([]float64, 0, maxRetries+1)
	for attempt := 0; attempt < maxRetries; attempt++ {
		offsets = append(offsets, float64(attempt)*offset)
		if attempt == 1 {
			offsets = append(offsets, -offset)
		}
	}
	return offsets
}

// ObserveWithRetry probes around timestampSeconds until a reading succeeds or
// the attempt table is exhausted. On total failure the returned timestamp is
// the originally requested one so downstream bookkeeping lines up with the
// coarse grid.
func (o *Observer) ObserveWithRetry(ctx context.Context, timestampSeconds float64) (scoreboard.Reading, string, float64, error) {
	for _, offset := range retryOffsets(o.maxRetries, o.retryOffset) {
		actual := timestampSeconds + offset
		if actual < 0 {
			continue
		}
		reading, framePath, err := o.Observe(ctx, actual)
		if err != nil {
			return reading, framePath, timestampSeconds, err
		}
		if reading.Succeeded {
			return reading, framePath, actual, nil
		}
	}
	return scoreboard.Failed(reasonAllRetriesFailed), "", timestampSeconds, nil
}

func (o *Observer) retainFrame(framePath string, timestampSeconds float64) {
	if o.keepDir == "" {
		return
	}
	name := fmt.Sprintf("frame_%.1f-%s.jpg", timestampSeconds, uuid.NewString())
	if err := fileutil.CopyFile(framePath, filepath.Join(o.keepDir, name)); err != nil {
		o.logger.Warn("keep frame failed", "timestamp", timestampSeconds, "error", err)
	}
}

// EnsureKeepDir creates the retention directory when frame keeping is enabled.
func EnsureKeepDir(keepDir string) error {
	if keepDir == "" {
		return nil
	}
	return os.MkdirAll(keepDir, 0o755)
}
