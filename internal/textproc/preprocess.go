// Package textproc normalizes and splits raw study material before it is
// handed to the generation pipeline.
package textproc

import (
	"regexp"
	"strings"
)

var (
	controlChars    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	horizontalRuns  = regexp.MustCompile(`[ \t]+`)
	blankLineRuns   = regexp.MustCompile(`\n{3,}`)
	spaceAroundLine = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// Preprocess normalizes raw input text: CRLF to LF, control characters
// stripped, runs of horizontal whitespace collapsed to a single space, and
// runs of two or more blank lines collapsed to exactly one blank line so
// paragraph breaks survive. Total over all strings, including the empty one.
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = controlChars.ReplaceAllString(text, "")
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = spaceAroundLine.ReplaceAllString(text, "\n")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
