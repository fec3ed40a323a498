package finder

import (
	"fmt"
	"path/filepath"
	"strings"

	"matchscan/internal/fileutil"
	"matchscan/internal/textutil"
)

const evidenceNameMaxLen = 20

// EvidenceFileName builds the stable on-disk name for a confirmed start:
// match_<HH-MM-SS>_<player1>_vs_<player2>.jpg, with player names sanitized
// and truncated so the name stays portable.
func EvidenceFileName(m MatchStart) string {
	stamp := strings.ReplaceAll(m.TimestampFormatted, ":", "-")
	return fmt.Sprintf("match_%s_%s_vs_%s.jpg",
		stamp,
		textutil.SanitizeName(m.Player1, evidenceNameMaxLen),
		textutil.SanitizeName(m.Player2, evidenceNameMaxLen))
}

// SaveEvidence copies the confirming frame into dir under the match's
// evidence name and returns the destination path. The source frame lives in
// the scan's temp directory and is reused across probes, so the copy must
// happen before the next observation.
func SaveEvidence(dir, framePath string, m MatchStart) (string, error) {
	dest := filepath.Join(dir, EvidenceFileName(m))
	if err := fileutil.CopyFile(framePath, dest); err != nil {
		return "", fmt.Errorf("save evidence frame: %w", err)
	}
	return dest, nil
}
