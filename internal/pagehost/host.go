package pagehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/extract"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

var (
	ErrInvalidPageURL = errors.New("page url must be an absolute http(s) url")
	ErrNoPageLoaded   = errors.New("no page loaded")
)

// Page is the document currently shown in the host.
type Page struct {
	URL      string
	Doc      *extract.Document
	LoadedAt time.Time
}

// Host holds at most one loaded product page and answers bridge requests
// about it. It plays the role of the browsing context the panel talks to.
type Host struct {
	mu         sync.RWMutex
	page       *Page
	dispatcher *extract.Dispatcher
	logger     logger.Logger
	now        func() time.Time
}

// New creates an empty host.
func New(dispatcher *extract.Dispatcher, log logger.Logger) *Host {
	if log == nil {
		log = logger.Nop()
	}
	if dispatcher == nil {
		dispatcher = extract.NewDispatcher(nil, log)
	}
	return &Host{
		dispatcher: dispatcher,
		logger:     log,
		now:        time.Now,
	}
}

// Load parses body and makes it the current page, replacing any previous one.
func (h *Host) Load(ctx context.Context, pageURL string, body io.Reader) (*Page, error) {
	if err := checkPageURL(pageURL); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := extract.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	page := &Page{URL: pageURL, Doc: doc, LoadedAt: h.now()}

	h.mu.Lock()
	h.page = page
	h.mu.Unlock()

	h.logger.Info("page loaded",
		logger.String("url", pageURL),
		logger.String("title", doc.Title()))
	return page, nil
}

// Unload drops the current page.
func (h *Host) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.page != nil {
		h.logger.Info("page unloaded", logger.String("url", h.page.URL))
	}
	h.page = nil
}

// Expire unloads the current page when it was loaded before cutoff and
// returns the page that was dropped.
func (h *Host) Expire(cutoff time.Time) (*Page, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.page == nil || !h.page.LoadedAt.Before(cutoff) {
		return nil, false
	}
	page := h.page
	h.page = nil
	return page, true
}

// Current returns the loaded page.
func (h *Host) Current() (*Page, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.page, h.page != nil
}

// Receive implements bridge.Receiver. Without a loaded page there is nobody
// to answer, which the caller sees as ErrNoReceiver.
func (h *Host) Receive(ctx context.Context, req bridge.Request) (bridge.Response, error) {
	if err := ctx.Err(); err != nil {
		return bridge.Response{}, err
	}
	if req.Type != bridge.TypeScrapePage {
		return bridge.Response{Success: false, Error: fmt.Sprintf("unsupported message type %q", req.Type)}, nil
	}

	page, ok := h.Current()
	if !ok {
		return bridge.Response{}, fmt.Errorf("%w: %v", bridge.ErrNoReceiver, ErrNoPageLoaded)
	}

	res := h.dispatcher.Dispatch(page.Doc, page.URL)
	return bridge.Response{
		Success: res.Success,
		Data:    res.Data,
		Error:   res.Error,
	}, nil
}

func checkPageURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidPageURL
	}
	return nil
}
