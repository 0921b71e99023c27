package worker

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
)

// Pool runs requests on a fixed set of background goroutines. Each Submit
// registers its request id, waits for the matching response and deregisters;
// responses for ids nobody is waiting on are dropped.
type Pool struct {
	requests chan models.Request
	group    *errgroup.Group

	mu      sync.Mutex
	pending map[string]chan models.Response
	closed  bool
}

// NewPool starts size workers. A non-positive size is treated as 1.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		requests: make(chan models.Request),
		group:    new(errgroup.Group),
		pending:  make(map[string]chan models.Response),
	}
	for i := 0; i < size; i++ {
		p.group.Go(func() error {
			for req := range p.requests {
				p.deliver(Execute(req))
			}
			return nil
		})
	}
	return p
}

// Submit hands one request to the pool and blocks until its response arrives
// or ctx is done. A request with an empty id gets a generated one; an id
// already outstanding is rejected so response routing stays unambiguous.
func (p *Pool) Submit(ctx context.Context, req models.Request) (models.Response, error) {
	if req.ID == "" {
		req.ID = NewID()
	}

	ch := make(chan models.Response, 1)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return models.Response{}, apperrors.ErrPoolClosed
	}
	if _, exists := p.pending[req.ID]; exists {
		p.mu.Unlock()
		return models.Response{}, apperrors.ErrDuplicateRequestID
	}
	p.pending[req.ID] = ch
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.pending, req.ID)
		p.mu.Unlock()
	}()

	select {
	case p.requests <- req:
	case <-ctx.Done():
		return models.Response{}, ctx.Err()
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		return models.Response{}, ctx.Err()
	}
}

func (p *Pool) deliver(resp models.Response) {
	p.mu.Lock()
	ch, ok := p.pending[resp.ID]
	p.mu.Unlock()
	if ok {
		ch <- resp
	}
}

// Close stops accepting new requests and waits for in-flight ones to finish.
// Submit must not be called concurrently with Close.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.requests)
	return p.group.Wait()
}
