package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/pagehost"
	"github.com/MrSnakeDoc/cardsmith/internal/session"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access the API
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Session      *session.Session   // the active card session
	PageHost     *pagehost.Host     // in-process page host, nil when a remote one is used
	PageHostURL  string             // remote page host base URL, empty when in-process
	MaxPageBytes int64              // max size of a pushed document
	ConfigStore  store.ConfigStore  // affiliate settings
	HistoryStore store.HistoryStore // exported card snapshots
	StoreBackend string             // "redis" | "memory"
	StorePinger  Pinger             // nil for the in-memory backend

	SettingsFile  string        // settings file path, empty when disabled
	ReloadTrigger chan struct{} // Channel to trigger manual settings reload (nil if disabled)

	RateLimitBurst  int // per client IP bucket size for scrape endpoints
	RateLimitPerMin int // per client IP refill per minute
}
