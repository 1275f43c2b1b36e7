package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/config"
	"github.com/MrSnakeDoc/cardsmith/internal/extract"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/pagehost"
	"github.com/MrSnakeDoc/cardsmith/internal/redis"
	"github.com/MrSnakeDoc/cardsmith/internal/scheduler"
	"github.com/MrSnakeDoc/cardsmith/internal/session"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
	"github.com/MrSnakeDoc/cardsmith/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/cardsmith/internal/store/redis"
	"github.com/MrSnakeDoc/cardsmith/internal/utils"
	"github.com/MrSnakeDoc/cardsmith/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.SettingsReloader
	expirer     *scheduler.PageExpirer
}

// stores groups the backends picked at startup.
type stores struct {
	backend  string
	config   store.ConfigStore
	history  store.HistoryStore
	defaults store.DefaultsSetter
	pinger   deps.Pinger
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Stores: Redis when enabled (fail fast if unreachable), memory otherwise
	var redisClient *goredis.Client
	st := stores{backend: "memory"}
	if cfg.RedisEnabled {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		rs := redisstore.NewStore(client)
		st = stores{backend: "redis", config: rs, history: rs, defaults: rs, pinger: rs}
	} else {
		loggerClient.Warn("redis disabled, settings and history are kept in memory")
		cs := memory.NewConfigStore()
		st.config, st.history, st.defaults = cs, memory.NewHistoryStore(), cs
	}

	// Page side: a remote page host, or one running in this process
	var (
		channel bridge.Channel
		host    *pagehost.Host
	)
	if cfg.PageHostURL != "" {
		loggerClient.Info("using remote page host", logger.String("url", cfg.PageHostURL))
		channel = bridge.NewHTTPChannel(cfg.PageHostURL)
	} else {
		host = pagehost.New(extract.NewDispatcher(nil, loggerClient), loggerClient)
		local := bridge.NewLocalChannel()
		local.Attach(host)
		channel = local
	}

	requester := bridge.NewRequester(channel, cfg.ScrapeTimeout, loggerClient)
	sess := session.New(requester, st.config, st.history, loggerClient)

	// Settings file reloader (if configured)
	var reloader *scheduler.SettingsReloader
	var reloadTrigger chan struct{}
	if cfg.SettingsFile != "" {
		loggerClient.Info("settings file configured, initializing settings reloader",
			logger.String("file", cfg.SettingsFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewSettingsReloader(
			cfg.SettingsFile,
			st.defaults,
			sess,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("settings file not configured, using built-in defaults")
	}

	var expirer *scheduler.PageExpirer
	if host != nil && cfg.PageTTL > 0 {
		expirer = scheduler.NewPageExpirer(host, loggerClient, cfg.PageExpiryInterval, cfg.PageTTL)
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		Session:         sess,
		PageHost:        host,
		PageHostURL:     cfg.PageHostURL,
		MaxPageBytes:    cfg.MaxPageBytes,
		ConfigStore:     st.config,
		HistoryStore:    st.history,
		StoreBackend:    st.backend,
		StorePinger:     st.pinger,
		SettingsFile:    cfg.SettingsFile,
		ReloadTrigger:   reloadTrigger,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		expirer:     expirer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Cardsmith v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Cardsmith %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start settings reloader: %w", err)
		}
		a.logger.Info("settings reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if a.expirer != nil {
		a.expirer.Start(ctx)
		a.logger.Info("page expirer started",
			logger.Duration("ttl", a.cfg.PageTTL),
			logger.Duration("interval", a.cfg.PageExpiryInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.expirer != nil {
		a.expirer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ Cardsmith stopped cleanly")
	return nil
}
