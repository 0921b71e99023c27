// Package stats derives summary numbers from a document: total key count,
// maximum nesting depth and human-readable input size.
package stats

import (
	"fmt"

	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/validator"
)

// Compute re-validates the input and walks the value tree. The root sits at
// depth 0 and every object or array descent increments. Size is always
// derived from the raw byte length, even for invalid or empty input, in
// which case keys and depth stay zero.
func Compute(input string) models.Stats {
	st := models.Stats{Size: humanSize(len(input))}

	result := validator.Validate(input)
	if !result.Valid || result.Parsed == nil {
		return st
	}
	walk(result.Parsed, 0, &st)
	return st
}

func walk(v models.Value, depth int, st *models.Stats) {
	switch t := v.(type) {
	case *models.Object:
		if depth+1 > st.Depth {
			st.Depth = depth + 1
		}
		st.Keys += len(t.Members)
		for _, m := range t.Members {
			walk(m.Value, depth+1, st)
		}
	case models.Array:
		if depth+1 > st.Depth {
			st.Depth = depth + 1
		}
		for _, e := range t {
			walk(e, depth+1, st)
		}
	}
}

// humanSize renders a byte count with binary (1024) unit steps and one
// decimal place above the byte range.
func humanSize(n int) string {
	const unit = 1024.0
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	kb := float64(n) / unit
	if kb < unit {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/unit)
}
