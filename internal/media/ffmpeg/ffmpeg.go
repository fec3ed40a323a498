package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrExtractionFailed indicates ffmpeg ran but produced no frame, typically
// because the timestamp lies outside the video or the stream is damaged.
var ErrExtractionFailed = errors.New("frame extraction failed")

// ExtractFrame writes a single frame from source at timestampSeconds to
// outputPath as a JPEG. The seek happens before the input so ffmpeg jumps by
// keyframe instead of decoding the whole stream.
func ExtractFrame(ctx context.Context, binary string, source string, timestampSeconds float64, outputPath string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return errors.New("ffmpeg extract: empty source")
	}
	if outputPath == "" {
		return errors.New("ffmpeg extract: empty output path")
	}
	if timestampSeconds < 0 {
		timestampSeconds = 0
	}

	seek := strconv.FormatFloat(timestampSeconds, 'f', 3, 64)
	cmd := exec.CommandContext(ctx, binary,
		"-y",
		"-v", "error",
		"-ss", seek,
		"-i", source,
		"-frames:v", "1",
		"-q:v", "2",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrExtractionFailed, err, strings.TrimSpace(string(output)))
	}
	// ffmpeg exits zero on a seek past end of stream while writing nothing.
	if info, statErr := os.Stat(outputPath); statErr != nil || info.Size() == 0 {
		return fmt.Errorf("%w: no output at %s", ErrExtractionFailed, seek)
	}
	return nil
}
