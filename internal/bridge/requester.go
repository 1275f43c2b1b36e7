package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

// DefaultTimeout bounds a scrape when the caller does not configure one.
const DefaultTimeout = 10 * time.Second

var (
	// ErrReceiverUnavailable is returned when the page side is not listening.
	// Reloading the page re-initialises it.
	ErrReceiverUnavailable = errors.New("the page is not ready: reload the page and try again")
	ErrScrapeTimeout       = errors.New("the page did not answer in time")
	ErrScrapeFailed        = errors.New("scrape failed")
)

// GenericFailure is reported when a failed response carries no message.
const GenericFailure = "failed to scrape page data"

// Requester sends SCRAPE_PAGE requests and turns every outcome into either a
// record or one of the errors above.
type Requester struct {
	channel Channel
	timeout time.Duration
	logger  logger.Logger
}

func NewRequester(ch Channel, timeout time.Duration, log logger.Logger) *Requester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Requester{
		channel: ch,
		timeout: timeout,
		logger:  log,
	}
}

// Scrape asks the page host for the current page's record.
func (r *Requester) Scrape(ctx context.Context) (domain.ScrapedRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.channel.Send(ctx, Request{Type: TypeScrapePage})
	if err != nil {
		return domain.ScrapedRecord{}, r.classify(err, time.Since(start))
	}

	if !resp.OK() {
		msg := resp.Error
		if msg == "" {
			msg = GenericFailure
		}
		r.logger.Warn("scrape returned a failure", logger.String("error", msg))
		return domain.ScrapedRecord{}, fmt.Errorf("%w: %s", ErrScrapeFailed, msg)
	}

	r.logger.Debug("scrape completed",
		logger.String("url", resp.Data.URL),
		logger.String("platform", resp.Data.PlatformID.String()),
		logger.Duration("elapsed", time.Since(start)))
	return *resp.Data, nil
}

func (r *Requester) classify(err error, elapsed time.Duration) error {
	switch {
	case errors.Is(err, ErrNoReceiver):
		r.logger.Warn("no receiver on the page side", logger.Error(err))
		return fmt.Errorf("%w (%v)", ErrReceiverUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		r.logger.Warn("scrape timed out", logger.Duration("elapsed", elapsed))
		return fmt.Errorf("%w after %s", ErrScrapeTimeout, r.timeout)
	case errors.Is(err, context.Canceled):
		return err
	default:
		r.logger.Error("scrape request failed", logger.Error(err))
		return fmt.Errorf("%w: %v", ErrScrapeFailed, err)
	}
}
