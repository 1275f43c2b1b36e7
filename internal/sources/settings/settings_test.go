package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/render"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeFile(t, `---
affiliate:
  amazonTag: blog-22
palette:
  amazon: "#111111"
shops:
  - platform: amazon
    label: Amazonで見る
  - platform: aliexpress
    enabled: false
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Affiliate.AmazonTag != "blog-22" {
		t.Errorf("AmazonTag = %q", file.Affiliate.AmazonTag)
	}
	if len(file.Shops) != 2 {
		t.Fatalf("Shops = %+v", file.Shops)
	}
	if file.Shops[1].Enabled == nil || *file.Shops[1].Enabled {
		t.Errorf("aliexpress enabled = %v, want explicit false", file.Shops[1].Enabled)
	}
}

func TestLoaderExpandsEnv(t *testing.T) {
	t.Setenv("CARDSMITH_TEST_TAG", "from-env-22")
	path := writeFile(t, "affiliate:\n  amazonTag: ${CARDSMITH_TEST_TAG}\n")

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Affiliate.AmazonTag != "from-env-22" {
		t.Errorf("AmazonTag = %q, want expanded value", file.Affiliate.AmazonTag)
	}
}

func TestLoaderKeepsBareDollar(t *testing.T) {
	t.Setenv("url", "expanded")
	path := writeFile(t, "affiliate:\n  sunstellaBaseUrl: \"https://shopa.jp/P3$url/?url=\"\n  amazonTag: ${CARDSMITH_UNSET_TAG}\n")

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Affiliate.SunstellaBaseURL != "https://shopa.jp/P3$url/?url=" {
		t.Errorf("SunstellaBaseURL = %q, want bare $ kept", file.Affiliate.SunstellaBaseURL)
	}
	if file.Affiliate.AmazonTag != "" {
		t.Errorf("AmazonTag = %q, want unset variable expanded to empty", file.Affiliate.AmazonTag)
	}
}

func TestLoaderErrors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load(); err == nil {
		t.Error("Load() on a missing file should fail")
	}
	if _, err := NewLoader(writeFile(t, "shops: [unclosed")).Load(); err == nil {
		t.Error("Load() on invalid yaml should fail")
	}
}

func TestMap(t *testing.T) {
	off := false
	tests := []struct {
		name    string
		file    File
		wantErr bool
		check   func(t *testing.T, l Layout)
	}{
		{
			name: "empty file keeps defaults",
			file: File{},
			check: func(t *testing.T, l Layout) {
				if l.Defaults != domain.DefaultAffiliateSettings() {
					t.Errorf("Defaults = %+v", l.Defaults)
				}
				if l.Palette != render.DefaultPalette() {
					t.Errorf("Palette = %+v", l.Palette)
				}
				if len(l.Presets) != 0 {
					t.Errorf("Presets = %+v", l.Presets)
				}
			},
		},
		{
			name: "overrides",
			file: File{
				Affiliate: AffiliateProps{AmazonTag: " blog-22 ", SunstellaBaseURL: "https://shopa.jp/OTHER/?url="},
				Palette:   PaletteProps{Amazon: "#123", SunstellaText: "black"},
				Shops:     []ShopProps{{Platform: "Sunstella", Label: "Sunstella JP", Enabled: &off}},
			},
			check: func(t *testing.T, l Layout) {
				if l.Defaults.AmazonTag != "blog-22" || l.Defaults.SunstellaBaseURL != "https://shopa.jp/OTHER/?url=" {
					t.Errorf("Defaults = %+v", l.Defaults)
				}
				if l.Palette.AmazonColor != "#123" || l.Palette.SunstellaTextColor != "black" || l.Palette.AliExpressColor != "#FF4747" {
					t.Errorf("Palette = %+v", l.Palette)
				}
				if len(l.Presets) != 1 || l.Presets[0].PlatformID != platform.Sunstella || *l.Presets[0].Enabled {
					t.Errorf("Presets = %+v", l.Presets)
				}
			},
		},
		{name: "unknown platform", file: File{Shops: []ShopProps{{Platform: "ebay"}}}, wantErr: true},
		{name: "duplicate platform", file: File{Shops: []ShopProps{{Platform: "amazon"}, {Platform: "AMAZON"}}}, wantErr: true},
		{name: "bad colour", file: File{Palette: PaletteProps{Amazon: "red; } body { display:none"}}, wantErr: true},
		{name: "relative base url", file: File{Affiliate: AffiliateProps{SunstellaBaseURL: "/redirect?url="}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Map() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}
