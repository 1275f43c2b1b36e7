package domain

import (
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

// ShopLink is one purchase button on a card.
//
// Identity is ID, not URL: a card carries a fixed, ordered set of slots
// (one per platform) and only URL changes over time. An empty URL means
// the slot is unset.
type ShopLink struct {
	ID         string      `json:"id"`
	PlatformID platform.ID `json:"platformId"`
	Label      string      `json:"label"`
	URL        string      `json:"url"`
	IsEnabled  bool        `json:"isEnabled"`
}

// CardDraft is the in-progress product card of the active session.
type CardDraft struct {
	Title       string     `json:"title"`
	ImageURL    string     `json:"imageUrl"`
	MainLinkURL string     `json:"mainLinkUrl"`
	Shops       []ShopLink `json:"shops"`
}

// DefaultShops returns one enabled, empty slot per supported platform.
func DefaultShops() []ShopLink {
	known := platform.Known()
	shops := make([]ShopLink, 0, len(known))
	for i, id := range known {
		shops = append(shops, ShopLink{
			ID:         slotID(i),
			PlatformID: id,
			Label:      id.Label(),
			IsEnabled:  true,
		})
	}
	return shops
}

func slotID(i int) string {
	return string(rune('1' + i))
}

// NewCardDraft returns an empty draft with the default shop slots.
func NewCardDraft() CardDraft {
	return CardDraft{Shops: DefaultShops()}
}

// Clone returns a deep copy so a snapshot never shares its shop slice with
// the live draft.
func (c CardDraft) Clone() CardDraft {
	out := c
	if c.Shops != nil {
		out.Shops = make([]ShopLink, len(c.Shops))
		copy(out.Shops, c.Shops)
	}
	return out
}

// IsEmpty reports whether the draft has neither a title nor an image.
func (c CardDraft) IsEmpty() bool {
	return strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.ImageURL) == ""
}

// Shop returns the slot with the given id.
func (c CardDraft) Shop(id string) (ShopLink, bool) {
	for _, s := range c.Shops {
		if s.ID == id {
			return s, true
		}
	}
	return ShopLink{}, false
}

// SetShopURL returns a copy of the draft with the slot's URL replaced.
func (c CardDraft) SetShopURL(id, url string) (CardDraft, error) {
	out := c.Clone()
	for i := range out.Shops {
		if out.Shops[i].ID == id {
			out.Shops[i].URL = url
			return out, nil
		}
	}
	return c, ErrShopNotFound
}

// ClearShop returns a copy of the draft with the slot's URL emptied.
func (c CardDraft) ClearShop(id string) (CardDraft, error) {
	return c.SetShopURL(id, "")
}

// ActiveShops returns the slots that carry a non-empty URL.
func (c CardDraft) ActiveShops() []ShopLink {
	var active []ShopLink
	for _, s := range c.Shops {
		if strings.TrimSpace(s.URL) != "" {
			active = append(active, s)
		}
	}
	return active
}

// RenderableShops returns the enabled slots with a non-empty URL, in slot order.
func (c CardDraft) RenderableShops() []ShopLink {
	var out []ShopLink
	for _, s := range c.ActiveShops() {
		if s.IsEnabled {
			out = append(out, s)
		}
	}
	return out
}

// IsAmazonOnly reports whether Amazon is the single populated shop.
func (c CardDraft) IsAmazonOnly() bool {
	active := c.ActiveShops()
	return len(active) == 1 && active[0].PlatformID == platform.Amazon
}

// ShopValidation pairs a slot id with the result of checking its URL.
type ShopValidation struct {
	ShopID string `json:"shopId"`
	urlrule.ValidationResult
}

// Validate checks every slot's current URL against its platform rule.
func (c CardDraft) Validate() []ShopValidation {
	out := make([]ShopValidation, 0, len(c.Shops))
	for _, s := range c.Shops {
		out = append(out, ShopValidation{
			ShopID:           s.ID,
			ValidationResult: urlrule.ValidateShopURL(s.PlatformID, s.URL),
		})
	}
	return out
}
