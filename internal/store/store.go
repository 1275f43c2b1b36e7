// Package store defines the persistence collaborators of a panel session:
// affiliate settings and the card history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

var ErrHistoryNotFound = errors.New("history item not found")

// ConfigStore persists AffiliateSettings.
type ConfigStore interface {
	LoadSettings(ctx context.Context) (domain.AffiliateSettings, error)
	SaveSettings(ctx context.Context, s domain.AffiliateSettings) error
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.AffiliateSettings, error)
}

// HistoryStore keeps the most recent card snapshots, newest first.
type HistoryStore interface {
	Add(ctx context.Context, draft domain.CardDraft) (domain.HistoryItem, error)
	List(ctx context.Context) ([]domain.HistoryItem, error)
	Get(ctx context.Context, id string) (domain.HistoryItem, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// DefaultsSetter is implemented by config stores whose fallback settings can
// be replaced at runtime, e.g. from the settings file.
type DefaultsSetter interface {
	SetDefaults(s domain.AffiliateSettings)
}

// DecodeSettings decodes a stored settings blob on top of defaults, so
// fields missing from the blob keep their default values.
func DecodeSettings(data []byte, defaults domain.AffiliateSettings) (domain.AffiliateSettings, error) {
	s := defaults
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return s, nil
}

// NewHistoryItem snapshots draft with a fresh id and timestamp.
func NewHistoryItem(draft domain.CardDraft, now time.Time) domain.HistoryItem {
	return domain.HistoryItem{
		CardDraft: draft.Clone(),
		ID:        uuid.NewString(),
		CreatedAt: now.UnixMilli(),
	}
}
