package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

// LoadSettings retrieves the affiliate settings, falling back to the
// defaults when nothing has been saved yet.
func (s *Store) LoadSettings(ctx context.Context) (domain.AffiliateSettings, error) {
	defaults := s.currentDefaults()
	data, err := s.client.Get(ctx, ConfigKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("failed to get settings: %w", err)
	}
	return store.DecodeSettings(data, defaults)
}

// SaveSettings stores the affiliate settings without expiry
func (s *Store) SaveSettings(ctx context.Context, settings domain.AffiliateSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.client.Set(ctx, ConfigKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// UpdateSettings applies patch over the stored settings and saves the result
func (s *Store) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.AffiliateSettings, error) {
	current, err := s.LoadSettings(ctx)
	if err != nil {
		return domain.AffiliateSettings{}, err
	}
	next := patch.Apply(current)
	if err := s.SaveSettings(ctx, next); err != nil {
		return domain.AffiliateSettings{}, err
	}
	return next, nil
}
