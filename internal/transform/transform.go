// Package transform holds the pure structural operations: pretty-printing,
// minification, key sorting and key renaming. Every operation re-validates
// its input first; on invalid or empty input it is a defined no-op that
// returns the original text unchanged rather than an error.
package transform

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/validator"
)

// DefaultIndent is the indentation width used when a caller passes a
// non-positive width.
const DefaultIndent = 2

// Encode serializes a value tree with the given indentation width,
// preserving document key order.
func Encode(v models.Value, indent int) (string, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}
	b, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	if err != nil {
		return "", apperrors.NewTransformError("failed to serialize value", err)
	}
	return string(b), nil
}

// EncodeCompact serializes a value tree with no whitespace.
func EncodeCompact(v models.Value) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.NewTransformError("failed to serialize value", err)
	}
	return string(b), nil
}

// Format re-serializes a valid document with the given indentation. Invalid
// or empty input comes back unchanged.
func Format(input string, indent int) string {
	result := validator.Validate(input)
	if !result.Valid || result.Parsed == nil {
		return input
	}
	out, err := Encode(result.Parsed, indent)
	if err != nil {
		return input
	}
	return out
}

// Minify re-serializes a valid document with all insignificant whitespace
// removed. Invalid or empty input comes back unchanged.
func Minify(input string) string {
	result := validator.Validate(input)
	if !result.Valid || result.Parsed == nil {
		return input
	}
	out, err := EncodeCompact(result.Parsed)
	if err != nil {
		return input
	}
	return out
}

// SortKeys rebuilds every object with its keys in ascending lexical order
// and re-serializes with the given indentation. Array element order and
// primitives are untouched. Invalid or empty input comes back unchanged.
func SortKeys(input string, indent int) string {
	result := validator.Validate(input)
	if !result.Valid || result.Parsed == nil {
		return input
	}
	out, err := Encode(sortValue(result.Parsed), indent)
	if err != nil {
		return input
	}
	return out
}

func sortValue(v models.Value) models.Value {
	switch t := v.(type) {
	case *models.Object:
		members := make([]models.Member, len(t.Members))
		for i, m := range t.Members {
			members[i] = models.Member{Key: m.Key, Value: sortValue(m.Value)}
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Key < members[j].Key
		})
		return &models.Object{Members: members}
	case models.Array:
		elems := make(models.Array, len(t))
		for i, e := range t {
			elems[i] = sortValue(e)
		}
		return elems
	default:
		return v
	}
}

// RenameKeys recursively rewrites every object key into the given case style
// (camel, pascal, snake or kebab). An unknown style is an error; invalid or
// empty input comes back unchanged.
func RenameKeys(input, style string, indent int) (string, error) {
	convert, err := caseFunc(style)
	if err != nil {
		return "", err
	}
	result := validator.Validate(input)
	if !result.Valid || result.Parsed == nil {
		return input, nil
	}
	out, err := Encode(renameValue(result.Parsed, convert), indent)
	if err != nil {
		return input, nil
	}
	return out, nil
}

func caseFunc(style string) (func(string) string, error) {
	switch style {
	case "camel":
		return strcase.ToLowerCamel, nil
	case "pascal":
		return strcase.ToCamel, nil
	case "snake":
		return strcase.ToSnake, nil
	case "kebab":
		return strcase.ToKebab, nil
	default:
		return nil, apperrors.NewTransformError(
			fmt.Sprintf("unknown case style %q: expected camel, pascal, snake or kebab", style), nil)
	}
}

func renameValue(v models.Value, convert func(string) string) models.Value {
	switch t := v.(type) {
	case *models.Object:
		members := make([]models.Member, len(t.Members))
		for i, m := range t.Members {
			members[i] = models.Member{Key: convert(m.Key), Value: renameValue(m.Value, convert)}
		}
		return &models.Object{Members: members}
	case models.Array:
		elems := make(models.Array, len(t))
		for i, e := range t {
			elems[i] = renameValue(e, convert)
		}
		return elems
	default:
		return v
	}
}
