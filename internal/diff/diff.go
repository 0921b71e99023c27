// Package diff compares two parsed JSON documents structurally. Only
// divergences are reported; identical subtrees produce no entries at all.
package diff

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/validator"
)

// Compare validates both sides independently and walks them recursively. If
// either side is invalid, the result is an empty list; a diff never runs
// partially on broken input. Entries appear in traversal order: left-object
// key order first, right-only keys appended afterward, depth-first.
func Compare(left, right string) []models.DiffEntry {
	l := validator.Validate(left)
	r := validator.Validate(right)
	if !l.Valid || !r.Valid {
		return nil
	}
	var entries []models.DiffEntry
	walk("", l.Parsed, r.Parsed, &entries)
	return entries
}

func walk(path string, left, right models.Value, entries *[]models.DiffEntry) {
	if valueEqual(left, right) {
		return
	}

	if lo, ok := left.(*models.Object); ok {
		if ro, ok := right.(*models.Object); ok {
			walkObjects(path, lo, ro, entries)
			return
		}
	}
	if la, ok := left.(models.Array); ok {
		if ra, ok := right.(models.Array); ok {
			walkArrays(path, la, ra, entries)
			return
		}
	}

	// differing types or a scalar mismatch
	*entries = append(*entries, models.DiffEntry{
		Type:  models.DiffChanged,
		Path:  path,
		Left:  left,
		Right: right,
	})
}

func walkObjects(path string, left, right *models.Object, entries *[]models.DiffEntry) {
	visited := make(map[string]bool, len(left.Members))

	for _, m := range left.Members {
		if visited[m.Key] {
			continue
		}
		visited[m.Key] = true

		lv, _ := left.Find(m.Key)
		if rv, ok := right.Find(m.Key); ok {
			walk(childKey(path, m.Key), lv, rv, entries)
			continue
		}
		*entries = append(*entries, models.DiffEntry{
			Type: models.DiffRemoved,
			Path: childKey(path, m.Key),
			Left: lv,
		})
	}

	for _, m := range right.Members {
		if visited[m.Key] {
			continue
		}
		visited[m.Key] = true
		rv, _ := right.Find(m.Key)
		*entries = append(*entries, models.DiffEntry{
			Type:  models.DiffAdded,
			Path:  childKey(path, m.Key),
			Right: rv,
		})
	}
}

func walkArrays(path string, left, right models.Array, entries *[]models.DiffEntry) {
	longest := len(left)
	if len(right) > longest {
		longest = len(right)
	}
	for i := 0; i < longest; i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case i >= len(left):
			*entries = append(*entries, models.DiffEntry{
				Type:  models.DiffAdded,
				Path:  childPath,
				Right: right[i],
			})
		case i >= len(right):
			*entries = append(*entries, models.DiffEntry{
				Type: models.DiffRemoved,
				Path: childPath,
				Left: left[i],
			})
		default:
			walk(childPath, left[i], right[i], entries)
		}
	}
}

// valueEqual is deep value equality over the plain decoded form, so object
// key order never influences the verdict.
func valueEqual(left, right models.Value) bool {
	return cmp.Equal(models.ToInterface(left), models.ToInterface(right))
}

func childKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
