package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

// Store handles Redis operations for settings and history
type Store struct {
	client *redis.Client
	now    func() time.Time

	mu       sync.RWMutex
	defaults domain.AffiliateSettings
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client:   client,
		now:      time.Now,
		defaults: domain.DefaultAffiliateSettings(),
	}
}

// SetDefaults replaces the values used for fields that were never saved.
func (s *Store) SetDefaults(defaults domain.AffiliateSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = defaults
}

func (s *Store) currentDefaults() domain.AffiliateSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Ping reports whether the backing Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
