package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/pagehost"
)

// PageExpirer unloads a page that has been sitting in the host for longer
// than its TTL, so a stale document is never scraped into a new card.
type PageExpirer struct {
	host     *pagehost.Host
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewPageExpirer creates a new page expirer
func NewPageExpirer(host *pagehost.Host, log logger.Logger, interval, ttl time.Duration) *PageExpirer {
	return &PageExpirer{
		host:     host,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic expiry check
func (pe *PageExpirer) Start(ctx context.Context) {
	ticker := time.NewTicker(pe.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pe.Collect()
			case <-pe.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the expirer
func (pe *PageExpirer) Stop() {
	close(pe.stopCh)
}

// Collect unloads the current page if it is older than the TTL and reports
// whether it did.
func (pe *PageExpirer) Collect() bool {
	page, ok := pe.host.Expire(pe.now().Add(-pe.ttl))
	if !ok {
		return false
	}

	pe.logger.Info("expired stale page",
		logger.String("url", page.URL),
		logger.Duration("age", pe.now().Sub(page.LoadedAt)))
	return true
}
