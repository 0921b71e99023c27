// Package worker offloads the engine's operations to background goroutines
// behind a request/response message protocol. Requests carry a
// caller-generated id, unique among outstanding requests, and responses are
// routed purely by that id; no ordering is guaranteed between concurrent
// requests. Execute is the synchronous in-process fallback and is
// behaviorally identical to going through a Pool, so callers degrade
// gracefully when no pool is available.
package worker

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jsonstudio/jsonstudio/internal/diff"
	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/stats"
	"github.com/jsonstudio/jsonstudio/internal/transform"
	"github.com/jsonstudio/jsonstudio/internal/validator"
)

// TextPayload carries the document for VALIDATE and STATS requests.
type TextPayload struct {
	Text string `json:"text"`
}

// FormatPayload carries the document and indentation for FORMAT requests.
type FormatPayload struct {
	Text   string `json:"text"`
	Indent int    `json:"indent,omitempty"`
}

// ComparePayload carries both documents for COMPARE requests.
type ComparePayload struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// NewID returns a fresh request id.
func NewID() string {
	return uuid.NewString()
}

// Execute dispatches a single request synchronously. It never panics; any
// problem comes back as an ERROR response carrying the message as a JSON
// string.
func Execute(req models.Request) models.Response {
	switch req.Type {
	case models.RequestValidate:
		var p TextPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return errorResponse(req.ID, err)
		}
		return resultResponse(req, validator.Validate(p.Text))

	case models.RequestStats:
		var p TextPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return errorResponse(req.ID, err)
		}
		return resultResponse(req, stats.Compute(p.Text))

	case models.RequestCompare:
		var p ComparePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return errorResponse(req.ID, err)
		}
		entries := diff.Compare(p.Left, p.Right)
		if entries == nil {
			entries = []models.DiffEntry{}
		}
		return resultResponse(req, entries)

	case models.RequestFormat:
		var p FormatPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return errorResponse(req.ID, err)
		}
		return resultResponse(req, transform.Format(p.Text, p.Indent))

	default:
		return errorResponse(req.ID, apperrors.ErrUnknownRequest)
	}
}

func resultResponse(req models.Request, payload interface{}) models.Response {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	return models.Response{
		Type:    string(req.Type) + "_RESULT",
		Payload: raw,
		ID:      req.ID,
	}
}

func errorResponse(id string, err error) models.Response {
	raw, _ := json.Marshal(err.Error())
	return models.Response{Type: "ERROR", Payload: raw, ID: id}
}
