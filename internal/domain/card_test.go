package domain

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/cardsmith/internal/platform"
)

func TestDefaultShops(t *testing.T) {
	shops := DefaultShops()
	expected := []struct {
		id       string
		platform platform.ID
		label    string
	}{
		{"1", platform.Amazon, "Amazon"},
		{"2", platform.AliExpress, "AliExpress"},
		{"3", platform.Sunstella, "Sunstella"},
	}

	if len(shops) != len(expected) {
		t.Fatalf("DefaultShops() returned %d slots, want %d", len(shops), len(expected))
	}
	for i, exp := range expected {
		s := shops[i]
		if s.ID != exp.id || s.PlatformID != exp.platform || s.Label != exp.label || !s.IsEnabled || s.URL != "" {
			t.Errorf("slot %d = %+v", i, s)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := NewCardDraft()
	clone := orig.Clone()
	clone.Shops[0].URL = "https://changed.example"

	if orig.Shops[0].URL != "" {
		t.Error("Clone shares its shop slice with the original")
	}
}

func TestSetAndClearShop(t *testing.T) {
	draft := NewCardDraft()

	updated, err := draft.SetShopURL("2", "https://s.click.aliexpress.com/e/_abc")
	if err != nil {
		t.Fatalf("SetShopURL() error = %v", err)
	}
	if s, _ := updated.Shop("2"); s.URL != "https://s.click.aliexpress.com/e/_abc" {
		t.Errorf("slot 2 url = %q", s.URL)
	}

	cleared, err := updated.ClearShop("2")
	if err != nil {
		t.Fatalf("ClearShop() error = %v", err)
	}
	if s, _ := cleared.Shop("2"); s.URL != "" {
		t.Errorf("slot 2 url = %q after clear", s.URL)
	}

	if _, err := draft.SetShopURL("99", "x"); !errors.Is(err, ErrShopNotFound) {
		t.Errorf("SetShopURL(unknown) error = %v, want ErrShopNotFound", err)
	}
}

func TestIsAmazonOnly(t *testing.T) {
	draft := NewCardDraft()
	if draft.IsAmazonOnly() {
		t.Error("empty draft is not amazon-only")
	}

	draft, _ = draft.SetShopURL("1", "https://www.amazon.co.jp/dp/B0ABCDEFGH")
	if !draft.IsAmazonOnly() {
		t.Error("draft with only amazon should be amazon-only")
	}

	draft, _ = draft.SetShopURL("3", "https://sunstella.co.jp/products/x")
	if draft.IsAmazonOnly() {
		t.Error("draft with two shops is not amazon-only")
	}
}

func TestRenderableShopsSkipsDisabled(t *testing.T) {
	draft := NewCardDraft()
	draft, _ = draft.SetShopURL("1", "https://www.amazon.co.jp/dp/B0ABCDEFGH")
	draft, _ = draft.SetShopURL("3", "https://sunstella.co.jp/products/x")
	draft.Shops[2].IsEnabled = false

	got := draft.RenderableShops()
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("RenderableShops() = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	draft := NewCardDraft()
	draft, _ = draft.SetShopURL("2", "https://aliexpress.com/item/123.html")

	results := draft.Validate()
	if len(results) != 3 {
		t.Fatalf("Validate() returned %d results", len(results))
	}
	for _, r := range results {
		wantValid := r.ShopID != "2"
		if r.IsValid != wantValid {
			t.Errorf("slot %s valid = %v, want %v", r.ShopID, r.IsValid, wantValid)
		}
	}
}

func TestSettingsPatchApply(t *testing.T) {
	tag := "other-22"
	got := SettingsPatch{AmazonTag: &tag}.Apply(DefaultAffiliateSettings())
	if got.AmazonTag != "other-22" {
		t.Errorf("AmazonTag = %q", got.AmazonTag)
	}
	if got.SunstellaBaseURL != DefaultSunstellaBaseURL {
		t.Errorf("SunstellaBaseURL = %q, should keep default", got.SunstellaBaseURL)
	}
}

func TestApplyPresets(t *testing.T) {
	off := false
	draft, _ := NewCardDraft().SetShopURL("2", "https://s.click.aliexpress.com/e/_abc")

	got := draft.ApplyPresets([]ShopPreset{
		{PlatformID: platform.Amazon, Label: "Buy on Amazon"},
		{PlatformID: platform.AliExpress, Enabled: &off},
		{PlatformID: platform.Other, Label: "ignored"},
	})

	amazon, _ := got.Shop("1")
	if amazon.Label != "Buy on Amazon" || !amazon.IsEnabled {
		t.Errorf("amazon slot = %+v", amazon)
	}
	ali, _ := got.Shop("2")
	if ali.IsEnabled || ali.Label != "AliExpress" || ali.URL == "" {
		t.Errorf("aliexpress slot = %+v", ali)
	}
	if original, _ := draft.Shop("1"); original.Label != "Amazon" {
		t.Error("ApplyPresets mutated its receiver")
	}
}
