package domain

import "github.com/MrSnakeDoc/cardsmith/internal/platform"

// ShopPreset overrides how a platform's slot is presented. An empty Label or
// a nil Enabled leaves the slot's current value.
type ShopPreset struct {
	PlatformID platform.ID `json:"platformId" yaml:"platform"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	Enabled    *bool       `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// ApplyPresets returns a copy of the draft with slot labels and enabled
// flags taken from presets. URLs are never touched.
func (c CardDraft) ApplyPresets(presets []ShopPreset) CardDraft {
	out := c.Clone()
	for _, p := range presets {
		for i := range out.Shops {
			if out.Shops[i].PlatformID != p.PlatformID {
				continue
			}
			if p.Label != "" {
				out.Shops[i].Label = p.Label
			}
			if p.Enabled != nil {
				out.Shops[i].IsEnabled = *p.Enabled
			}
		}
	}
	return out
}
