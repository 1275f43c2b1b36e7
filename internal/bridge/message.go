package bridge

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

// TypeScrapePage asks the page host to extract the loaded document.
const TypeScrapePage = "SCRAPE_PAGE"

// ErrNoReceiver means nothing is listening on the other side of the channel,
// typically because the page content was not initialised yet.
var ErrNoReceiver = errors.New("could not establish connection: receiving end does not exist")

// Request is a tagged message without payload.
type Request struct {
	Type string `json:"type"`
}

// Response answers a Request. A usable response has Success set and Data
// populated; anything else is a failure described by Error.
type Response struct {
	Success bool                  `json:"success"`
	Data    *domain.ScrapedRecord `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// OK reports whether the response carries a record.
func (r Response) OK() bool {
	return r.Success && r.Data != nil
}

// Receiver handles requests inside the context that holds the document.
type Receiver interface {
	Receive(ctx context.Context, req Request) (Response, error)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(ctx context.Context, req Request) (Response, error)

func (f ReceiverFunc) Receive(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Channel delivers a request to a receiver and returns its response.
type Channel interface {
	Send(ctx context.Context, req Request) (Response, error)
}
