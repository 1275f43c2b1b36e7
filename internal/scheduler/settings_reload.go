package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/render"
	"github.com/MrSnakeDoc/cardsmith/internal/sources/settings"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

// LayoutApplier receives the palette and shop presets of a settings file.
type LayoutApplier interface {
	ApplyLayout(palette render.Palette, presets []domain.ShopPreset)
}

// SettingsReloader handles periodic reloading of the settings file
type SettingsReloader struct {
	loader        *settings.Loader
	defaults      store.DefaultsSetter
	target        LayoutApplier
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSettingsReloader creates a new settings reloader. defaults may be nil
// when the config store does not support seeded defaults.
func NewSettingsReloader(
	settingsFile string,
	defaults store.DefaultsSetter,
	target LayoutApplier,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SettingsReloader {
	return &SettingsReloader{
		loader:        settings.NewLoader(settingsFile),
		defaults:      defaults,
		target:        target,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the file once and then keeps reloading it on every tick and
// manual trigger. A zero interval disables the periodic reload.
func (sr *SettingsReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	go sr.run(ctx)
	return nil
}

func (sr *SettingsReloader) run(ctx context.Context) {
	var tick <-chan time.Time
	if sr.interval > 0 {
		ticker := time.NewTicker(sr.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			if err := sr.Reload(ctx); err != nil {
				sr.logger.Error("failed to reload settings", logger.Error(err))
			}
		case <-sr.manualTrigger:
			sr.logger.Info("manual reload triggered")
			if err := sr.Reload(ctx); err != nil {
				sr.logger.Error("failed to reload settings", logger.Error(err))
			}
		case <-sr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the reloader
func (sr *SettingsReloader) Stop() {
	close(sr.stopCh)
}

// Reload reads the settings file and pushes its content to the config
// store defaults and the session. An invalid file changes nothing.
func (sr *SettingsReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	layout, err := settings.Map(file)
	if err != nil {
		return fmt.Errorf("invalid settings file %s: %w", sr.loader.Path(), err)
	}

	if sr.defaults != nil {
		sr.defaults.SetDefaults(layout.Defaults)
	}
	if sr.target != nil {
		sr.target.ApplyLayout(layout.Palette, layout.Presets)
	}

	sr.logger.Info("settings reloaded",
		logger.String("file", sr.loader.Path()),
		logger.Int("shop_presets", len(layout.Presets)))
	return nil
}
