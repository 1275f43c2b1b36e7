package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/extract"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

const page = `<html><head><title>Amazon.co.jp: Widget</title></head>
<body><span id="productTitle">Widget</span>
<img id="landingImage" src="https://m.media-amazon.com/images/I/w.jpg"></body></html>`

const pageURL = "https://www.amazon.co.jp/Widget/dp/B0ABCDEFGH?th=1"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level=fatal"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractFromStdin(t *testing.T) {
	out, err := run(t, page, "extract", "--url", pageURL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var res extract.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !res.Success || res.Data.Title != "Widget" || res.Data.URL != pageURL {
		t.Errorf("result = %+v", res)
	}
}

func TestExtractCardFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "extract", "--url", pageURL, "--card", "--tag", "me-22", path)
	if err != nil {
		t.Fatalf("extract --card: %v", err)
	}
	var draft domain.CardDraft
	if err := json.Unmarshal([]byte(out), &draft); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := urlrule.AmazonCanonicalBase + "B0ABCDEFGH?tag=me-22"
	if draft.MainLinkURL != want || draft.Shops[0].URL != want {
		t.Errorf("draft = %+v", draft)
	}
}

func TestExtractHTML(t *testing.T) {
	out, err := run(t, page, "extract", "--url", pageURL, "--html", "-")
	if err != nil {
		t.Fatalf("extract --html: %v", err)
	}
	if !strings.Contains(out, `class="asin-detail-buy shop-amazon"`) || !strings.Contains(out, "Widget") {
		t.Errorf("html = %s", out)
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := run(t, page, "extract"); err == nil {
		t.Error("missing --url should fail")
	}
	if _, err := run(t, "", "extract", "--url", pageURL, filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := run(t, "", "extract", "--url", pageURL, "a.html", "b.html"); err == nil {
		t.Error("two page arguments should fail")
	}
}

func TestLink(t *testing.T) {
	out, err := run(t, "", "link", "--platform", "aliexpress", "https://ja.aliexpress.com/item/1.html")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	var res linkResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Populate || res.ShopURL != "" || res.MainLink != "https://ja.aliexpress.com/item/1.html" {
		t.Errorf("link = %+v", res)
	}

	if _, err := run(t, "", "link", "--platform", "ebay", "https://x.example"); err == nil {
		t.Error("unknown platform should fail")
	}
}

func TestValidate(t *testing.T) {
	if _, err := run(t, "", "validate", "--platform", "aliexpress", "https://s.click.aliexpress.com/e/_abc"); err != nil {
		t.Errorf("valid link: %v", err)
	}

	for _, name := range []string{"other", ""} {
		if _, err := run(t, "", "validate", "--platform="+name, "https://anything.example/x"); err != nil {
			t.Errorf("validate with platform %q: %v", name, err)
		}
	}
	if _, err := run(t, "", "validate", "https://anything.example/x"); err != nil {
		t.Errorf("validate without platform: %v", err)
	}
	if _, err := run(t, "", "validate", "--platform", "ebay", "https://x.example"); err == nil || errors.Is(err, errInvalidLink) {
		t.Errorf("unknown platform err = %v, want a usage error", err)
	}

	out, err := run(t, "", "validate", "--platform", "aliexpress", "https://aliexpress.com/item/123.html")
	if !errors.Is(err, errInvalidLink) {
		t.Fatalf("err = %v, want errInvalidLink", err)
	}
	var res urlrule.ValidationResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Message != urlrule.MsgAliExpressWrongType {
		t.Errorf("message = %q", res.Message)
	}
}
