package bridge

import (
	"context"
	"sync"
)

// LocalChannel delivers requests to an in-process receiver.
type LocalChannel struct {
	mu       sync.RWMutex
	receiver Receiver
}

// NewLocalChannel creates a channel with no receiver attached.
func NewLocalChannel() *LocalChannel {
	return &LocalChannel{}
}

// Attach sets the receiver, replacing any previous one.
func (c *LocalChannel) Attach(r Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receiver = r
}

// Detach removes the receiver. Later sends fail with ErrNoReceiver.
func (c *LocalChannel) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receiver = nil
}

// Send runs the receiver and waits for it or for ctx, whichever is first.
func (c *LocalChannel) Send(ctx context.Context, req Request) (Response, error) {
	c.mu.RLock()
	r := c.receiver
	c.mu.RUnlock()

	if r == nil {
		return Response{}, ErrNoReceiver
	}

	type reply struct {
		resp Response
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		resp, err := r.Receive(ctx, req)
		done <- reply{resp: resp, err: err}
	}()

	select {
	case out := <-done:
		return out.resp, out.err
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
