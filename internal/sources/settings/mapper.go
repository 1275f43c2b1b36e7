package settings

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/render"
)

// Layout is the validated content of a settings file
type Layout struct {
	Defaults domain.AffiliateSettings
	Palette  render.Palette
	Presets  []domain.ShopPreset
}

// colorPattern accepts hex colours and plain CSS colour names.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Map validates a parsed settings file and converts it to a Layout. Fields
// left empty fall back to the built-in defaults.
func Map(file File) (Layout, error) {
	defaults := domain.DefaultAffiliateSettings()
	if tag := strings.TrimSpace(file.Affiliate.AmazonTag); tag != "" {
		defaults.AmazonTag = tag
	}
	if base := strings.TrimSpace(file.Affiliate.SunstellaBaseURL); base != "" {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Layout{}, fmt.Errorf("affiliate.sunstellaBaseUrl must be an absolute URL: %q", base)
		}
		defaults.SunstellaBaseURL = base
	}

	palette := render.Palette{
		AmazonColor:        strings.TrimSpace(file.Palette.Amazon),
		AliExpressColor:    strings.TrimSpace(file.Palette.AliExpress),
		SunstellaBgColor:   strings.TrimSpace(file.Palette.SunstellaBg),
		SunstellaTextColor: strings.TrimSpace(file.Palette.SunstellaText),
	}
	for name, c := range map[string]string{
		"amazon":        palette.AmazonColor,
		"aliexpress":    palette.AliExpressColor,
		"sunstellaBg":   palette.SunstellaBgColor,
		"sunstellaText": palette.SunstellaTextColor,
	} {
		if c != "" && !colorPattern.MatchString(c) {
			return Layout{}, fmt.Errorf("palette.%s is not a valid colour: %q", name, c)
		}
	}

	presets := make([]domain.ShopPreset, 0, len(file.Shops))
	seen := make(map[platform.ID]bool, len(file.Shops))
	for i, shop := range file.Shops {
		id := platform.Parse(shop.Platform)
		if !id.IsKnown() {
			return Layout{}, fmt.Errorf("shops[%d]: unknown platform %q", i, shop.Platform)
		}
		if seen[id] {
			return Layout{}, fmt.Errorf("shops[%d]: platform %q listed twice", i, id)
		}
		seen[id] = true

		presets = append(presets, domain.ShopPreset{
			PlatformID: id,
			Label:      strings.TrimSpace(shop.Label),
			Enabled:    shop.Enabled,
		})
	}

	return Layout{
		Defaults: defaults,
		Palette:  palette.WithDefaults(),
		Presets:  presets,
	}, nil
}
