package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

// Add pushes a snapshot of draft to the head of the history list and trims
// the list to domain.MaxHistory entries
func (s *Store) Add(ctx context.Context, draft domain.CardDraft) (domain.HistoryItem, error) {
	item := store.NewHistoryItem(draft, s.now())

	data, err := json.Marshal(item)
	if err != nil {
		return domain.HistoryItem{}, fmt.Errorf("failed to marshal history item: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, HistoryKey(), data)
	pipe.LTrim(ctx, HistoryKey(), 0, domain.MaxHistory-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.HistoryItem{}, fmt.Errorf("failed to save history item: %w", err)
	}

	return item, nil
}

// List returns the history, newest first
func (s *Store) List(ctx context.Context) ([]domain.HistoryItem, error) {
	entries, err := s.rawEntries(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.item)
	}
	return items, nil
}

// Get returns a single history item by id
func (s *Store) Get(ctx context.Context, id string) (domain.HistoryItem, error) {
	entries, err := s.rawEntries(ctx)
	if err != nil {
		return domain.HistoryItem{}, err
	}
	for _, e := range entries {
		if e.item.ID == id {
			return e.item, nil
		}
	}
	return domain.HistoryItem{}, fmt.Errorf("%w: %s", store.ErrHistoryNotFound, id)
}

// Remove deletes a history item by id
func (s *Store) Remove(ctx context.Context, id string) error {
	entries, err := s.rawEntries(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.item.ID != id {
			continue
		}
		if err := s.client.LRem(ctx, HistoryKey(), 1, e.raw).Err(); err != nil {
			return fmt.Errorf("failed to remove history item: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", store.ErrHistoryNotFound, id)
}

// Clear drops the whole history
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, HistoryKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

type historyEntry struct {
	raw  string
	item domain.HistoryItem
}

func (s *Store) rawEntries(ctx context.Context) ([]historyEntry, error) {
	values, err := s.client.LRange(ctx, HistoryKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]historyEntry, 0, len(values))
	for _, v := range values {
		var item domain.HistoryItem
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			// Skip entries that can't be decoded
			continue
		}
		entries = append(entries, historyEntry{raw: v, item: item})
	}
	return entries, nil
}
