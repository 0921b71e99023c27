// Package validator is the authoritative valid/invalid gate for JSON
// documents. The verdict always comes from encoding/json; when it rejects a
// document, the diagnose package is consulted for a best-effort location and
// fix suggestion.
package validator

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/jsonstudio/jsonstudio/internal/diagnose"
	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
)

// messagePrefixes are vendor decorations stripped from surfaced messages so
// the report reads the same regardless of which parser produced it.
var messagePrefixes = []string{
	"JSON.parse: ",
	"JSON Parse error: ",
}

// Validate checks a document and, on failure, attaches a diagnosis. Empty or
// whitespace-only input is explicitly valid with a nil parsed value and is
// never routed through the decoder. The call is synchronous, re-parses on
// every invocation and never panics.
func Validate(input string) models.ValidationResult {
	if strings.TrimSpace(input) == "" {
		return models.ValidationResult{Valid: true, Parsed: nil}
	}

	var probe interface{}
	if err := json.Unmarshal([]byte(input), &probe); err != nil {
		nativeMsg := nativeMessage(err)
		diag := diagnose.Diagnose(input, nativeMsg)
		return models.ValidationResult{
			Valid: false,
			Error: &models.ErrorDetail{
				Message:    CleanMessage(nativeMsg),
				Line:       diag.Line,
				Column:     diag.Column,
				Suggestion: diag.Suggestion,
			},
		}
	}

	value, err := Parse(input)
	if err != nil {
		// Unmarshal accepted the document, so the ordered decode cannot
		// reasonably fail; keep the gate's verdict and fall back to the
		// probe value.
		return models.ValidationResult{Valid: true, Parsed: probe}
	}
	return models.ValidationResult{Valid: true, Parsed: value}
}

// ValidateLenient standardizes editor-style JSON (comments and trailing
// commas, per the JWCC superset) and then runs the strict gate. If the input
// is not even well-formed JWCC, the strict gate runs on the original text so
// the diagnosis refers to what the user actually typed.
func ValidateLenient(input string) models.ValidationResult {
	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		return Validate(input)
	}
	return Validate(string(std))
}

// Standardize rewrites JWCC input as standard JSON, preserving the offsets
// of the values it keeps.
func Standardize(input string) (string, error) {
	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		return "", apperrors.NewValidateError("input is not valid JSON with comments", err)
	}
	return string(std), nil
}

// Parse decodes a document into the order-preserving value tree. Numbers are
// kept as json.Number so re-serialization does not mangle them.
func Parse(input string) (models.Value, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.NewValidateError("multiple JSON values found at the root", apperrors.ErrInvalidJSON)
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &models.Object{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key token %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, models.Member{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		arr := models.Array{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// nativeMessage renders a decoder error with its byte offset attached, so
// the diagnosis fallback can recover a line/column from it.
func nativeMessage(err error) string {
	var syn *json.SyntaxError
	if stderrors.As(err, &syn) {
		return fmt.Sprintf("%s at offset %d", syn.Error(), syn.Offset)
	}
	return err.Error()
}

// CleanMessage strips known parser-message prefixes from an error string.
func CleanMessage(msg string) string {
	for _, prefix := range messagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
