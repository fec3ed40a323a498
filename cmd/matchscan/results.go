package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"matchscan/internal/finder"
	"matchscan/internal/store"
)

type matchDoc struct {
	Timestamp int    `json:"timestamp"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
}

type resultsDoc struct {
	VideoID    string     `json:"video_id"`
	VideoTitle string     `json:"video_title"`
	UploadDate string     `json:"upload_date"`
	Matches    []matchDoc `json:"matches"`
}

func buildResultsDoc(videoID, title, uploadDate string, matches []finder.MatchStart) resultsDoc {
	doc := resultsDoc{
		VideoID:    videoID,
		VideoTitle: title,
		UploadDate: uploadDate,
		Matches:    make([]matchDoc, 0, len(matches)),
	}
	for _, m := range matches {
		doc.Matches = append(doc.Matches, matchDoc{
			Timestamp: int(m.TimestampSeconds),
			Player1:   m.Player1,
			Player2:   m.Player2,
		})
	}
	return doc
}

// saveResultsDoc writes the results document next to the evidence frames.
func saveResultsDoc(dir string, doc resultsDoc) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	path := filepath.Join(dir, "matches.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return path, nil
}

func storeMatches(matches []finder.MatchStart) []store.Match {
	out := make([]store.Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, store.Match{
			TimestampSeconds: int(m.TimestampSeconds),
			TimestampText:    m.TimestampFormatted,
			Player1:          m.Player1,
			Player2:          m.Player2,
			ImagePath:        m.ImagePath,
		})
	}
	return out
}
