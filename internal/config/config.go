package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, must cover ScrapeTimeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Scraping
	ScrapeTimeout      time.Duration // how long a refresh waits for the page host (default: 10s)
	PageHostURL        string        // remote page host base URL (empty = in-process page host)
	MaxPageBytes       int64         // max size of a document pushed to PUT /api/page
	PageTTL            time.Duration // unload a pushed page after this long (0 = never)
	PageExpiryInterval time.Duration // how often the page TTL is checked

	// Settings file
	SettingsFile   string        // optional YAML file seeding defaults, palette and shop labels
	ReloadInterval time.Duration // interval to reload the settings file (0 = manual only)

	// Redis
	RedisEnabled          bool          // false => in-memory stores, nothing survives a restart
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limit on scrape and page push endpoints
	RateLimitBurst  int // bucket size per client IP
	RateLimitPerMin int // refill per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CARDSMITH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CARDSMITH_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CARDSMITH_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("CARDSMITH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CARDSMITH_PRETTY_LOG", true),

		// Scraping
		ScrapeTimeout:      mustDuration("CARDSMITH_SCRAPE_TIMEOUT", 10*time.Second),
		PageHostURL:        getenv("CARDSMITH_PAGE_HOST_URL", ""),
		MaxPageBytes:       int64(getenvInt("CARDSMITH_MAX_PAGE_BYTES", 10<<20)),
		PageTTL:            mustDuration("CARDSMITH_PAGE_TTL", 0),
		PageExpiryInterval: mustDuration("CARDSMITH_PAGE_EXPIRY_INTERVAL", time.Minute),

		// Settings file
		SettingsFile:   getenv("CARDSMITH_SETTINGS_FILE", ""),
		ReloadInterval: mustDuration("CARDSMITH_RELOAD_INTERVAL", time.Hour),

		// Redis settings
		RedisEnabled:          mustBool("CARDSMITH_REDIS_ENABLED", false),
		RedisAddr:             getenv("CARDSMITH_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("CARDSMITH_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CARDSMITH_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("CARDSMITH_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CARDSMITH_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CARDSMITH_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("CARDSMITH_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CARDSMITH_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("CARDSMITH_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("CARDSMITH_RATE_LIMIT_PER_MIN", 30),
	}

	// Validate Redis password configuration
	if cfg.RedisEnabled && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: CARDSMITH_REDIS_PASSWORD is required when CARDSMITH_REDIS_PASSWORD_REQUIRED=true")
	}

	// A refresh must be able to finish before the request is cut off
	if cfg.RequestTimeout <= cfg.ScrapeTimeout {
		panic(fmt.Sprintf("❌ FATAL: CARDSMITH_REQUEST_TIMEOUT (%s) must be greater than CARDSMITH_SCRAPE_TIMEOUT (%s)",
			cfg.RequestTimeout, cfg.ScrapeTimeout))
	}

	if cfg.PageHostURL != "" && !strings.HasPrefix(cfg.PageHostURL, "http://") && !strings.HasPrefix(cfg.PageHostURL, "https://") {
		panic(fmt.Sprintf("❌ FATAL: CARDSMITH_PAGE_HOST_URL must be an http(s) URL, got %q", cfg.PageHostURL))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
		}
		return i
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid boolean value for %s: %s", key, v))
		}
		return b
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			panic(fmt.Sprintf("❌ FATAL: Invalid duration value for %s: %s", key, v))
		}
		return d
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
