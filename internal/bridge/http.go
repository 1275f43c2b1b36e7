package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"
)

// MessagesPath is where a page host accepts bridge requests.
const MessagesPath = "/api/messages"

// HTTPChannel delivers requests to a page host over HTTP.
type HTTPChannel struct {
	client *resty.Client
}

// NewHTTPChannel creates a channel targeting the page host at baseURL.
func NewHTTPChannel(baseURL string) *HTTPChannel {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &HTTPChannel{client: client}
}

// NewHTTPChannelWithClient is NewHTTPChannel over a caller-provided client.
func NewHTTPChannelWithClient(client *resty.Client) *HTTPChannel {
	return &HTTPChannel{client: client}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPChannel) Send(ctx context.Context, req Request) (Response, error) {
	var out Response
	var errOut errorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&errOut).
		Post(MessagesPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		if isUnreachable(err) {
			return Response{}, fmt.Errorf("%w: %v", ErrNoReceiver, err)
		}
		return Response{}, fmt.Errorf("send %s: %w", req.Type, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return out, nil
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return Response{}, fmt.Errorf("%w: %s", ErrNoReceiver, describe(resp, errOut))
	default:
		return Response{}, fmt.Errorf("page host answered %s", describe(resp, errOut))
	}
}

func describe(resp *resty.Response, body errorBody) string {
	if body.Error != "" {
		return fmt.Sprintf("%d: %s", resp.StatusCode(), body.Error)
	}
	return resp.Status()
}

func isUnreachable(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
