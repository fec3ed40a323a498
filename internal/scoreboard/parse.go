package scoreboard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scorePattern matches the OCR layout produced by the reader model:
//
//	row 1: PLAYER, SET GAME row 2: PLAYER, SET GAME
//
// The separator between set and game varies per broadcast overlay (comma,
// period, slash, dash, ampersand, or the word "and"), so all are tolerated.
var scorePattern = regexp.MustCompile(`row 1:\s*(.*?),\s*(\d+)(?:[,.\s/&-]+| and )(\d+)\s*row 2:\s*(.*?),\s*(\d+)(?:[,.\s/&-]+| and )(\d+)`)

// ParseOCR interprets raw OCR text as a scoreboard reading. Text that does not
// match the expected layout yields a failed reading, never an error.
func ParseOCR(text string) Reading {
	match := scorePattern.FindStringSubmatch(text)
	if match == nil {
		return Failed(fmt.Sprintf("could not parse: %q", text))
	}
	set1, _ := strconv.Atoi(match[2])
	game1, _ := strconv.Atoi(match[3])
	set2, _ := strconv.Atoi(match[5])
	game2, _ := strconv.Atoi(match[6])
	return Reading{
		Succeeded: true,
		Player1:   strings.TrimSpace(match[1]),
		Player2:   strings.TrimSpace(match[4]),
		Set1:      set1,
		Set2:      set2,
		Game1:     game1,
		Game2:     game2,
	}
}
