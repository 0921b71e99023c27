// Package diagnose locates the most likely cause of a JSON syntax error.
//
// The decoder in encoding/json is the authority on whether a document is
// valid; its error messages, however, rarely point at the edit the user
// actually needs to make. This package runs a fixed sequence of independent
// heuristic scanners over the raw text and returns the first hit. The checks
// are deliberately approximate (see FindDuplicateKeys) and their order is a
// contract: cheaper, higher-confidence, more localized checks run first.
package diagnose

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsonstudio/jsonstudio/internal/models"
)

var (
	lineColRe = regexp.MustCompile(`(?i)line (\d+) column (\d+)`)
	offsetRe  = regexp.MustCompile(`(?i)(?:position|offset) (\d+)`)
)

// Diagnose inspects an invalid document together with the decoder's own
// error message and returns a best-effort line/column/suggestion. It is a
// pure function of its inputs and never returns a zero Diagnosis: if every
// scanner misses, the fallback extracts a position from nativeMsg or emits a
// generic hint.
func Diagnose(input, nativeMsg string) models.Diagnosis {
	lines := strings.Split(input, "\n")

	checks := []func() models.Diagnosis{
		func() models.Diagnosis { return checkUnterminatedString(lines, nativeMsg) },
		func() models.Diagnosis { return checkMissingComma(lines) },
		func() models.Diagnosis { return checkMissingColon(lines) },
		func() models.Diagnosis { return TrackBrackets(input) },
		func() models.Diagnosis { return checkTrailingComma(lines) },
		func() models.Diagnosis { return FindDuplicateKeys(lines) },
	}
	for _, check := range checks {
		if d := check(); !d.IsZero() {
			return d
		}
	}
	return fallback(input, nativeMsg)
}

// fallback mines the decoder's message for a position. Some decoders report
// "line N column M" directly; encoding/json reports a byte offset, which is
// converted to a 1-based line/column by counting line feeds up to it.
func fallback(input, nativeMsg string) models.Diagnosis {
	if m := lineColRe.FindStringSubmatch(nativeMsg); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return models.Diagnosis{
			Line:       line,
			Column:     col,
			Suggestion: "Check your JSON syntax.",
		}
	}
	if m := offsetRe.FindStringSubmatch(nativeMsg); m != nil {
		// encoding/json offsets count bytes read, so the offending byte sits
		// at offset-1.
		off, _ := strconv.Atoi(m[1])
		if off > len(input) {
			off = len(input)
		}
		if off > 0 {
			off--
		}
		prefix := input[:off]
		line := strings.Count(prefix, "\n") + 1
		col := off - strings.LastIndex(prefix, "\n")
		if col < 1 {
			col = 1
		}
		return models.Diagnosis{
			Line:       line,
			Column:     col,
			Suggestion: "Check your JSON syntax.",
		}
	}
	return models.Diagnosis{Suggestion: "Check your JSON syntax."}
}
