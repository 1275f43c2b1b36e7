package render

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`Tom & Jerry's <"best">`)
	want := "Tom &amp; Jerry&#039;s &lt;&quot;best&quot;&gt;"
	if got != want {
		t.Errorf("EscapeHTML() = %q, want %q", got, want)
	}
}

func TestHatenaTag(t *testing.T) {
	if got := HatenaTag("B0ABCDEFGH"); got != "[asin:B0ABCDEFGH:detail]" {
		t.Errorf("HatenaTag() = %q", got)
	}
}

func TestCardHTML(t *testing.T) {
	draft := domain.NewCardDraft()
	draft.Title = `Widget <Pro> & "Max"`
	draft.ImageURL = "https://img.example/w.jpg"
	draft.MainLinkURL = "https://www.amazon.co.jp/dp/B0ABCDEFGH?tag=x-22"
	draft, _ = draft.SetShopURL("1", "https://www.amazon.co.jp/dp/B0ABCDEFGH?tag=x-22")
	draft, _ = draft.SetShopURL("2", "https://ja.aliexpress.com/item/1.html")
	draft.Shops[1].IsEnabled = false

	got, err := CardHTML(draft)
	if err != nil {
		t.Fatalf("CardHTML() error = %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"root class", `<div class="hatena-asin-detail ali-item">`},
		{"escaped title", `>Widget &lt;Pro&gt; &amp; &quot;Max&quot;</a>`},
		{"escaped alt", `alt="Widget &lt;Pro&gt; &amp; &quot;Max&quot;"`},
		{"image", `<img src="https://img.example/w.jpg"`},
		{"main link", `<a href="https://www.amazon.co.jp/dp/B0ABCDEFGH?tag=x-22" class="hatena-asin-detail-image-link"`},
		{"amazon button", `class="asin-detail-buy shop-amazon" target="_blank" rel="nofollow">Amazon</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(got, tt.want) {
				t.Errorf("CardHTML() missing %q in:\n%s", tt.want, got)
			}
		})
	}

	if strings.Contains(got, "shop-aliexpress") {
		t.Error("disabled shop rendered a button")
	}
	if strings.Contains(got, "shop-sunstella") {
		t.Error("empty shop rendered a button")
	}
	if got != strings.TrimSpace(got) {
		t.Error("output is not trimmed")
	}
}

func TestCardHTMLMainLinkFallback(t *testing.T) {
	got, err := CardHTML(domain.NewCardDraft())
	if err != nil {
		t.Fatalf("CardHTML() error = %v", err)
	}
	if !strings.Contains(got, `<a href="#" class="hatena-asin-detail-image-link"`) {
		t.Errorf("main link should fall back to #:\n%s", got)
	}
}

func TestCardHTMLButtonOrder(t *testing.T) {
	draft := domain.NewCardDraft()
	draft, _ = draft.SetShopURL("3", "https://shopa.jp/X/?url=https%3A%2F%2Fsunstella.co.jp%2Fp")
	draft, _ = draft.SetShopURL("1", "https://www.amazon.co.jp/dp/B0ABCDEFGH")

	got, err := CardHTML(draft)
	if err != nil {
		t.Fatalf("CardHTML() error = %v", err)
	}
	amazon := strings.Index(got, "shop-amazon")
	sunstella := strings.Index(got, "shop-sunstella")
	if amazon < 0 || sunstella < 0 || amazon > sunstella {
		t.Errorf("buttons should follow slot order:\n%s", got)
	}
	if !strings.Contains(got, "</a>\n            <a href=") {
		t.Errorf("buttons should be one per line:\n%s", got)
	}
}

func TestBlogCSS(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		want    []string
	}{
		{
			name:    "defaults",
			palette: Palette{},
			want:    []string{"background-color: #FF9900 !important;", "#FF4747", "#f0f0f0", "color: #333333 !important;"},
		},
		{
			name:    "custom amazon colour",
			palette: Palette{AmazonColor: "#123456"},
			want:    []string{"background-color: #123456 !important;", "#FF4747"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BlogCSS(tt.palette)
			if err != nil {
				t.Fatalf("BlogCSS() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("BlogCSS() missing %q", w)
				}
			}
			if strings.Contains(got, "{{") {
				t.Error("BlogCSS() left template actions unexpanded")
			}
		})
	}
}
