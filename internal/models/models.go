package models

import (
	"bytes"
	"encoding/json"
)

// Value is any decoded JSON value: string, json.Number, bool, nil,
// *Object or Array.
type Value interface{}

// Member is a single key/value pair inside an Object. Keeping members in a
// slice preserves the document's key order, which encoding/json maps throw
// away.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with its members in document order. Duplicate keys
// can appear here; callers that need last-value-wins semantics should use
// Find, which scans from the end.
type Object struct {
	Members []Member
}

// Array is a JSON array.
type Array []Value

// Find returns the value for key, scanning members from last to first so a
// duplicated key resolves the same way encoding/json does.
func (o *Object) Find(key string) (Value, bool) {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Len returns the number of members, counting duplicates.
func (o *Object) Len() int {
	return len(o.Members)
}

// MarshalJSON serializes the object with its members in document order,
// which encoding/json cannot do for maps. Duplicate keys are written as-is.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, member := range o.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(member.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(member.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToInterface converts a Value tree into the plain map/slice form produced by
// json.Unmarshal. Key order is lost and duplicate keys collapse last-wins.
func ToInterface(v Value) interface{} {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]interface{}, len(t.Members))
		for _, member := range t.Members {
			m[member.Key] = ToInterface(member.Value)
		}
		return m
	case Array:
		s := make([]interface{}, len(t))
		for i, elem := range t {
			s[i] = ToInterface(elem)
		}
		return s
	default:
		return t
	}
}

// ErrorDetail describes why a document failed validation. Line and Column are
// 1-based; zero means the position could not be determined.
type ErrorDetail struct {
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of running a document through the
// validation gate.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Error  *ErrorDetail `json:"error,omitempty"`
	Parsed Value        `json:"-"`
}

// Diagnosis is a best-effort location and fix hint for invalid JSON. All
// fields are optional; the zero Diagnosis means "nothing found".
type Diagnosis struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// IsZero reports whether the diagnosis carries no information.
func (d Diagnosis) IsZero() bool {
	return d == Diagnosis{}
}

// DiffType classifies a single structural divergence.
type DiffType string

const (
	DiffAdded     DiffType = "added"
	DiffRemoved   DiffType = "removed"
	DiffChanged   DiffType = "changed"
	DiffUnchanged DiffType = "unchanged"
)

// DiffEntry records one divergence between two documents. Path is a dotted
// and bracketed address like "a.b[2].c"; the root is the empty string.
type DiffEntry struct {
	Type  DiffType `json:"type"`
	Path  string   `json:"path"`
	Left  Value    `json:"left,omitempty"`
	Right Value    `json:"right,omitempty"`
}

// Stats summarizes a document: total key occurrences across all nesting
// levels, maximum nesting depth (root is depth 0), and the raw input size
// rendered with binary unit steps.
type Stats struct {
	Keys  int    `json:"keys"`
	Depth int    `json:"depth"`
	Size  string `json:"size"`
}

// RequestType names an operation in the worker message protocol.
type RequestType string

const (
	RequestValidate RequestType = "VALIDATE"
	RequestStats    RequestType = "STATS"
	RequestCompare  RequestType = "COMPARE"
	RequestFormat   RequestType = "FORMAT"
)

// Request is one message to the background worker. ID is caller-generated
// and must be unique among outstanding requests; responses are routed purely
// by it.
type Request struct {
	Type    RequestType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
	ID      string          `json:"id"`
}

// Response is the worker's reply to a single Request. Type is either
// "<OP>_RESULT" or "ERROR", in which case Payload is a JSON string holding
// the error message.
type Response struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	ID      string          `json:"id"`
}
