// Package memory provides in-process stores. They back the service when
// Redis is disabled and are used throughout the tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

// ConfigStore keeps the settings as a serialized blob, exactly like the
// Redis store, so both go through the same decode-over-defaults path.
type ConfigStore struct {
	mu       sync.RWMutex
	data     []byte
	defaults domain.AffiliateSettings
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{defaults: domain.DefaultAffiliateSettings()}
}

// SetDefaults replaces the values used for fields that were never saved.
func (s *ConfigStore) SetDefaults(defaults domain.AffiliateSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = defaults
}

// SetRaw replaces the stored blob. Useful to seed settings written by an
// older version.
func (s *ConfigStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}

func (s *ConfigStore) LoadSettings(_ context.Context) (domain.AffiliateSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.DecodeSettings(s.data, s.defaults)
}

func (s *ConfigStore) SaveSettings(_ context.Context, settings domain.AffiliateSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *ConfigStore) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.AffiliateSettings, error) {
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

// HistoryStore keeps up to domain.MaxHistory snapshots, newest first.
type HistoryStore struct {
	mu    sync.RWMutex
	items []domain.HistoryItem
	now   func() time.Time
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{now: time.Now}
}

func (h *HistoryStore) Add(_ context.Context, draft domain.CardDraft) (domain.HistoryItem, error) {
	item := store.NewHistoryItem(draft, h.now())

	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]domain.HistoryItem, 0, len(h.items)+1)
	items = append(items, item)
	items = append(items, h.items...)
	if len(items) > domain.MaxHistory {
		items = items[:domain.MaxHistory]
	}
	h.items = items

	return cloneItem(item), nil
}

func (h *HistoryStore) List(_ context.Context) ([]domain.HistoryItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.HistoryItem, 0, len(h.items))
	for _, item := range h.items {
		out = append(out, cloneItem(item))
	}
	return out, nil
}

func (h *HistoryStore) Get(_ context.Context, id string) (domain.HistoryItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, item := range h.items {
		if item.ID == id {
			return cloneItem(item), nil
		}
	}
	return domain.HistoryItem{}, fmt.Errorf("%w: %s", store.ErrHistoryNotFound, id)
}

func (h *HistoryStore) Remove(_ context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, item := range h.items {
		if item.ID == id {
			h.items = append(h.items[:i:i], h.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", store.ErrHistoryNotFound, id)
}

func (h *HistoryStore) Clear(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	return nil
}

func cloneItem(item domain.HistoryItem) domain.HistoryItem {
	item.CardDraft = item.CardDraft.Clone()
	return item
}
