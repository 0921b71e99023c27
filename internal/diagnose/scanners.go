package diagnose

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsonstudio/jsonstudio/internal/models"
)

var (
	bareKeyRe = regexp.MustCompile(`^"[^"]*"$`)
	objKeyRe  = regexp.MustCompile(`"([^"]+)"\s*:`)
)

// checkUnterminatedString looks for a line with an odd number of unescaped
// quotes. It only runs when the decoder itself complained about a string or
// about hitting end of input, so a lone quote inside an otherwise broken
// document cannot hijack the diagnosis.
func checkUnterminatedString(lines []string, nativeMsg string) models.Diagnosis {
	msg := strings.ToLower(nativeMsg)
	if !strings.Contains(msg, "unterminated") &&
		!strings.Contains(msg, "unexpected end of json") &&
		!strings.Contains(msg, "in string literal") {
		return models.Diagnosis{}
	}

	for i, line := range lines {
		if countUnescapedQuotes(line)%2 != 0 {
			return models.Diagnosis{
				Line:       i + 1,
				Column:     len(line),
				Suggestion: `Add a closing quote (") to terminate the string`,
			}
		}
	}
	return models.Diagnosis{}
}

// countUnescapedQuotes counts quote characters not preceded by an unescaped
// backslash. The escaped flag is consumed by exactly one character, so \\"
// still counts while \" does not.
func countUnescapedQuotes(line string) int {
	count := 0
	escaped := false
	for i := 0; i < len(line); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch line[i] {
		case '\\':
			escaped = true
		case '"':
			count++
		}
	}
	return count
}

// checkMissingComma scans adjacent line pairs for a value line followed by a
// line that opens a new property. The classic shape is:
//
//	"eventId": "e_0001"
//	"type": "deployment"
func checkMissingComma(lines []string) models.Diagnosis {
	for i := 0; i < len(lines)-1; i++ {
		current := strings.TrimSpace(lines[i])
		next := strings.TrimSpace(lines[i+1])

		if current == "" || isCommentLine(current) {
			continue
		}
		if strings.HasSuffix(current, ",") ||
			strings.HasSuffix(current, "{") ||
			strings.HasSuffix(current, "[") {
			continue
		}
		if endsWithValue(current) && strings.HasPrefix(next, `"`) {
			return models.Diagnosis{
				Line:       i + 1,
				Column:     len(lines[i]),
				Suggestion: fmt.Sprintf("Add a comma at the end of line %d", i+1),
			}
		}
	}
	return models.Diagnosis{}
}

// endsWithValue reports whether a trimmed line ends in something that
// terminates a JSON value: a closing quote, a closing delimiter, a digit or
// decimal point, or one of the bare literals.
func endsWithValue(s string) bool {
	if s == "" {
		return false
	}
	switch c := s[len(s)-1]; {
	case c == '"' || c == '}' || c == ']' || c == '.':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return strings.HasSuffix(s, "true") ||
		strings.HasSuffix(s, "false") ||
		strings.HasSuffix(s, "null")
}

func isCommentLine(s string) bool {
	return strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*") || strings.HasPrefix(s, "*")
}

// checkMissingColon flags a line holding nothing but a quoted property name
// when the following line does not supply the colon. Column is intentionally
// omitted; the exact position is low-confidence here.
func checkMissingColon(lines []string) models.Diagnosis {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !bareKeyRe.MatchString(line) {
			continue
		}
		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}
		if !strings.HasPrefix(next, ":") {
			return models.Diagnosis{
				Line:       i + 1,
				Suggestion: fmt.Sprintf("Add a colon after the property name %s", line),
			}
		}
	}
	return models.Diagnosis{}
}

// checkTrailingComma catches a comma immediately before a closing delimiter
// on the next line.
func checkTrailingComma(lines []string) models.Diagnosis {
	for i := 0; i < len(lines)-1; i++ {
		current := strings.TrimSpace(lines[i])
		next := strings.TrimSpace(lines[i+1])

		if strings.HasSuffix(current, ",") && (next == "}" || next == "]") {
			name := "brace"
			if next == "]" {
				name = "bracket"
			}
			return models.Diagnosis{
				Line:       i + 1,
				Suggestion: fmt.Sprintf("Remove the trailing comma before the closing %s", name),
			}
		}
	}
	return models.Diagnosis{}
}

// FindDuplicateKeys reports the first property name that appears twice,
// along with the line where it was first seen. The key is extracted with a
// plain regex rather than a string-aware scan, so a multi-line string value
// containing a colon-like pattern can misfire; that imprecision is accepted,
// since duplicate keys are legal JSON (last value wins) and this check is
// informational. It runs last for the same reason.
func FindDuplicateKeys(lines []string) models.Diagnosis {
	seen := make(map[string]int)
	for i, line := range lines {
		m := objKeyRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := m[1]
		if first, ok := seen[key]; ok {
			return models.Diagnosis{
				Line:       i + 1,
				Suggestion: fmt.Sprintf("Duplicate key %q: first defined at line %d", key, first),
			}
		}
		seen[key] = i + 1
	}
	return models.Diagnosis{}
}
