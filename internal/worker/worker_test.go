package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
)

func mustPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestExecute_Validate(t *testing.T) {
	req := models.Request{
		Type:    models.RequestValidate,
		Payload: mustPayload(t, TextPayload{Text: `{"a": 1}`}),
		ID:      "r1",
	}
	resp := Execute(req)
	assert.Equal(t, "VALIDATE_RESULT", resp.Type)
	assert.Equal(t, "r1", resp.ID)

	var result models.ValidationResult
	require.NoError(t, json.Unmarshal(resp.Payload, &result))
	assert.True(t, result.Valid)
}

func TestExecute_ValidateInvalid(t *testing.T) {
	req := models.Request{
		Type:    models.RequestValidate,
		Payload: mustPayload(t, TextPayload{Text: "{\n  \"a\": 1\n"}),
		ID:      "r2",
	}
	resp := Execute(req)
	assert.Equal(t, "VALIDATE_RESULT", resp.Type)

	var result models.ValidationResult
	require.NoError(t, json.Unmarshal(resp.Payload, &result))
	assert.False(t, result.Valid)
	require.NotNil(t, result.Error)
	assert.NotEmpty(t, result.Error.Suggestion)
}

func TestExecute_Format(t *testing.T) {
	req := models.Request{
		Type:    models.RequestFormat,
		Payload: mustPayload(t, FormatPayload{Text: `{"a":1}`, Indent: 2}),
		ID:      "r3",
	}
	resp := Execute(req)
	assert.Equal(t, "FORMAT_RESULT", resp.Type)

	var formatted string
	require.NoError(t, json.Unmarshal(resp.Payload, &formatted))
	assert.Equal(t, "{\n  \"a\": 1\n}", formatted)
}

func TestExecute_Compare(t *testing.T) {
	req := models.Request{
		Type:    models.RequestCompare,
		Payload: mustPayload(t, ComparePayload{Left: `{"a": 1}`, Right: `{"a": 2}`}),
		ID:      "r4",
	}
	resp := Execute(req)
	assert.Equal(t, "COMPARE_RESULT", resp.Type)

	var entries []models.DiffEntry
	require.NoError(t, json.Unmarshal(resp.Payload, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.DiffChanged, entries[0].Type)
	assert.Equal(t, "a", entries[0].Path)
}

func TestExecute_Stats(t *testing.T) {
	req := models.Request{
		Type:    models.RequestStats,
		Payload: mustPayload(t, TextPayload{Text: `{"a":{"b":1,"c":2}}`}),
		ID:      "r5",
	}
	resp := Execute(req)
	assert.Equal(t, "STATS_RESULT", resp.Type)

	var st models.Stats
	require.NoError(t, json.Unmarshal(resp.Payload, &st))
	assert.Equal(t, 3, st.Keys)
	assert.Equal(t, 2, st.Depth)
}

func TestExecute_UnknownType(t *testing.T) {
	resp := Execute(models.Request{Type: "EXPLODE", ID: "r6"})
	assert.Equal(t, "ERROR", resp.Type)
	assert.Equal(t, "r6", resp.ID)

	var msg string
	require.NoError(t, json.Unmarshal(resp.Payload, &msg))
	assert.Contains(t, msg, "unknown request type")
}

func TestExecute_MalformedPayload(t *testing.T) {
	resp := Execute(models.Request{
		Type:    models.RequestValidate,
		Payload: json.RawMessage(`"not an object"`),
		ID:      "r7",
	})
	assert.Equal(t, "ERROR", resp.Type)
}

func TestPool_SubmitConcurrent(t *testing.T) {
	pool := NewPool(4)
	defer func() { _ = pool.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := models.Request{
				Type:    models.RequestValidate,
				Payload: mustPayload(t, TextPayload{Text: fmt.Sprintf(`{"n": %d}`, i)}),
				ID:      fmt.Sprintf("req-%d", i),
			}
			resp, err := pool.Submit(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, req.ID, resp.ID, "responses must be routed by id")
			assert.Equal(t, "VALIDATE_RESULT", resp.Type)
		}(i)
	}
	wg.Wait()
}

func TestPool_GeneratesMissingID(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	resp, err := pool.Submit(context.Background(), models.Request{
		Type:    models.RequestStats,
		Payload: mustPayload(t, TextPayload{Text: `{}`}),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestPool_DuplicateOutstandingID(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	var wg sync.WaitGroup
	wg.Add(1)
	started := make(chan struct{})
	go func() {
		defer wg.Done()
		close(started)
		_, err := pool.Submit(context.Background(), models.Request{
			Type:    models.RequestValidate,
			Payload: mustPayload(t, TextPayload{Text: `{"a": 1}`}),
			ID:      "same",
		})
		assert.NoError(t, err)
	}()
	<-started

	// Re-registering the same id while (very likely) still outstanding must
	// either fail with the duplicate error or, if the first already
	// finished, succeed; it must never misroute.
	_, err := pool.Submit(context.Background(), models.Request{
		Type:    models.RequestValidate,
		Payload: mustPayload(t, TextPayload{Text: `{"a": 1}`}),
		ID:      "same",
	})
	if err != nil {
		assert.ErrorIs(t, err, apperrors.ErrDuplicateRequestID)
	}
	wg.Wait()
}

func TestPool_ClosedRejectsSubmit(t *testing.T) {
	pool := NewPool(1)
	require.NoError(t, pool.Close())

	_, err := pool.Submit(context.Background(), models.Request{
		Type: models.RequestValidate,
		ID:   "late",
	})
	assert.ErrorIs(t, err, apperrors.ErrPoolClosed)
}

func TestPool_ContextCancellation(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pool.Submit(ctx, models.Request{
		Type:    models.RequestValidate,
		Payload: mustPayload(t, TextPayload{Text: `{}`}),
		ID:      "cancelled",
	})
	// the request may have been picked up before cancellation was observed
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestDebouncer_OnlyLatestRuns(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var got []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, n)
		}
	}

	d.Trigger(record(1))
	d.Trigger(record(2))
	d.Trigger(record(3))

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{3}, got, "superseded triggers are discarded")
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(80 * time.Millisecond):
	}
}
