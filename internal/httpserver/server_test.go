package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/config"
	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/pagehost"
	"github.com/MrSnakeDoc/cardsmith/internal/session"
	"github.com/MrSnakeDoc/cardsmith/internal/store/memory"
)

const amazonPage = `<html><head><title>Amazon.co.jp: Widget Pro</title></head>
<body><span id="productTitle"> Widget Pro </span>
<img id="landingImage" src="https://m.media-amazon.com/images/I/widget.jpg"></body></html>`

const amazonURL = "https://www.amazon.co.jp/Widget-Pro/dp/B0ABCDEFGH/ref=sr_1_1?keywords=widget"

func testConfig() *config.Config {
	return &config.Config{RequestTimeout: 5 * time.Second}
}

// newTestDeps wires an in-process page host, memory stores and a session
// the same way the app does without Redis.
func newTestDeps(t *testing.T) deps.Deps {
	t.Helper()
	log := logger.Nop()
	host := pagehost.New(nil, log)
	ch := bridge.NewLocalChannel()
	ch.Attach(host)

	cfgStore := memory.NewConfigStore()
	history := memory.NewHistoryStore()
	sess := session.New(bridge.NewRequester(ch, time.Second, log), cfgStore, history, log)

	return deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Version:         "test",
		TimeNow:         time.Now,
		Session:         sess,
		PageHost:        host,
		MaxPageBytes:    1 << 20,
		ConfigStore:     cfgStore,
		HistoryStore:    history,
		StoreBackend:    "memory",
		RateLimitBurst:  100,
		RateLimitPerMin: 100,
	}
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func pushPage(t *testing.T, h http.Handler, pageURL, html string) {
	t.Helper()
	w := do(t, h, http.MethodPut, "/api/page?url="+url.QueryEscape(pageURL), html)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/page = %d %s", w.Code, w.Body.String())
	}
}

func TestProbes(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))

	for _, path := range []string{"/healthz", "/readyz", "/infra"} {
		if w := do(t, h, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}

	if w := do(t, h, http.MethodPost, "/reload", ""); w.Code != http.StatusNotFound {
		t.Errorf("POST /reload without settings file = %d, want 404", w.Code)
	}
}

func TestReloadTrigger(t *testing.T) {
	d := newTestDeps(t)
	d.ReloadTrigger = make(chan struct{}, 1)
	h := NewRouter(testConfig(), logger.Nop(), d)

	if w := do(t, h, http.MethodPost, "/reload", ""); w.Code != http.StatusAccepted {
		t.Errorf("first POST /reload = %d, want 202", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/reload", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("second POST /reload = %d, want 429", w.Code)
	}
}

func TestRefreshWithoutPage(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))

	w := do(t, h, http.MethodPost, "/api/card/refresh", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("refresh without page = %d, want 502", w.Code)
	}
	body := decode[map[string]string](t, w)
	if !strings.Contains(body["error"], "reload the page") {
		t.Errorf("error = %q, want a reload hint", body["error"])
	}

	state := decode[session.State](t, do(t, h, http.MethodGet, "/api/card", ""))
	if state.LastError == "" || state.Loading {
		t.Errorf("state = %+v, want last error recorded", state)
	}
}

func TestCardWorkflow(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))
	pushPage(t, h, amazonURL, amazonPage)

	w := do(t, h, http.MethodPost, "/api/card/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh = %d %s", w.Code, w.Body.String())
	}
	draft := decode[domain.CardDraft](t, w)
	wantLink := "https://www.amazon.co.jp/dp/B0ABCDEFGH?tag=" + domain.DefaultAmazonTag
	if draft.Title != "Widget Pro" || draft.MainLinkURL != wantLink {
		t.Errorf("draft = %+v", draft)
	}

	// Amazon is the only shop: export yields the Hatena short-code.
	w = do(t, h, http.MethodPost, "/api/card/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d %s", w.Code, w.Body.String())
	}
	exp := decode[session.Export](t, w)
	if exp.Format != session.FormatHatena || exp.Content != "[asin:B0ABCDEFGH:detail]" {
		t.Errorf("export = %+v", exp)
	}

	// Adding a second shop switches to HTML.
	w = do(t, h, http.MethodPut, "/api/card/shops/2", `{"url":"https://s.click.aliexpress.com/e/_abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put shop = %d %s", w.Code, w.Body.String())
	}
	exp = decode[session.Export](t, do(t, h, http.MethodPost, "/api/card/export", ""))
	if exp.Format != session.FormatHTML || !strings.Contains(exp.Content, "shop-aliexpress") {
		t.Errorf("export = %+v", exp)
	}

	items := decode[[]domain.HistoryItem](t, do(t, h, http.MethodGet, "/api/history", ""))
	if len(items) != 2 || items[0].ID != exp.Item.ID {
		t.Fatalf("history = %+v", items)
	}

	// Reset then restore the first snapshot.
	reset := decode[domain.CardDraft](t, do(t, h, http.MethodPost, "/api/card/reset", ""))
	if !reset.IsEmpty() || len(reset.ActiveShops()) != 0 {
		t.Errorf("reset draft = %+v", reset)
	}
	w = do(t, h, http.MethodPost, "/api/history/"+items[1].ID+"/restore", "")
	if w.Code != http.StatusOK {
		t.Fatalf("restore = %d %s", w.Code, w.Body.String())
	}
	restored := decode[domain.CardDraft](t, w)
	if restored.Title != "Widget Pro" || len(restored.ActiveShops()) != 1 {
		t.Errorf("restored = %+v", restored)
	}

	if w := do(t, h, http.MethodDelete, "/api/history/"+items[1].ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete history item = %d", w.Code)
	}
	if w := do(t, h, http.MethodDelete, "/api/history/"+items[1].ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("delete missing history item = %d, want 404", w.Code)
	}
	if w := do(t, h, http.MethodDelete, "/api/history", ""); w.Code != http.StatusNoContent {
		t.Errorf("clear history = %d", w.Code)
	}
}

func TestCardEdits(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"patch title", http.MethodPatch, "/api/card", `{"title":"Manual"}`, http.StatusOK},
		{"patch unknown field", http.MethodPatch, "/api/card", `{"price":1}`, http.StatusBadRequest},
		{"unknown shop", http.MethodPut, "/api/card/shops/9", `{"url":"https://x.example"}`, http.StatusNotFound},
		{"bad shop body", http.MethodPut, "/api/card/shops/1", `not json`, http.StatusBadRequest},
		{"invalid url is stored", http.MethodPut, "/api/card/shops/2", `{"url":"https://ja.aliexpress.com/item/1.html"}`, http.StatusOK},
		{"clear unknown shop", http.MethodDelete, "/api/card/shops/9", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, h, tt.method, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("%s %s = %d %s, want %d", tt.method, tt.path, w.Code, w.Body.String(), tt.want)
			}
		})
	}

	results := decode[[]domain.ShopValidation](t, do(t, h, http.MethodGet, "/api/card/validation", ""))
	if len(results) != 3 || results[1].IsValid || results[1].Message == "" {
		t.Errorf("validation = %+v", results)
	}

	state := decode[session.State](t, do(t, h, http.MethodGet, "/api/card", ""))
	if state.Draft.Title != "Manual" {
		t.Errorf("title = %q", state.Draft.Title)
	}
}

func TestExportEmptyCard(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))
	if w := do(t, h, http.MethodPost, "/api/card/export", ""); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("export empty card = %d, want 422", w.Code)
	}
}

func TestConfigEndpoints(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))

	got := decode[domain.AffiliateSettings](t, do(t, h, http.MethodGet, "/api/config", ""))
	if got != domain.DefaultAffiliateSettings() {
		t.Errorf("GET /api/config = %+v, want defaults", got)
	}

	w := do(t, h, http.MethodPatch, "/api/config", `{"amazonTag":"mine-22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH /api/config = %d %s", w.Code, w.Body.String())
	}
	got = decode[domain.AffiliateSettings](t, do(t, h, http.MethodGet, "/api/config", ""))
	if got.AmazonTag != "mine-22" || got.SunstellaBaseURL != domain.DefaultSunstellaBaseURL {
		t.Errorf("settings after patch = %+v", got)
	}

	if w := do(t, h, http.MethodPatch, "/api/config", `{"amazonTag":`); w.Code != http.StatusBadRequest {
		t.Errorf("PATCH with bad json = %d, want 400", w.Code)
	}

	// The new tag is used by the next refresh.
	pushPage(t, h, amazonURL, amazonPage)
	draft := decode[domain.CardDraft](t, do(t, h, http.MethodPost, "/api/card/refresh", ""))
	if !strings.HasSuffix(draft.MainLinkURL, "?tag=mine-22") {
		t.Errorf("MainLinkURL = %q", draft.MainLinkURL)
	}
}

func TestCSSEndpoint(t *testing.T) {
	h := NewRouter(testConfig(), logger.Nop(), newTestDeps(t))
	w := do(t, h, http.MethodGet, "/api/css", "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("GET /api/css = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), ".shop-aliexpress") {
		t.Error("stylesheet is missing the shop rules")
	}
}

func TestPageEndpoints(t *testing.T) {
	d := newTestDeps(t)
	d.MaxPageBytes = 64
	h := NewRouter(testConfig(), logger.Nop(), d)

	if w := do(t, h, http.MethodPut, "/api/page?url=relative", "<html></html>"); w.Code != http.StatusBadRequest {
		t.Errorf("PUT relative page = %d, want 400", w.Code)
	}
	big := "<html><body>" + strings.Repeat("x", 200) + "</body></html>"
	if w := do(t, h, http.MethodPut, "/api/page?url=https%3A%2F%2Fexample.com%2F", big); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("PUT oversized page = %d, want 413", w.Code)
	}

	w := do(t, h, http.MethodPost, "/api/messages", `{"type":"SCRAPE_PAGE"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("message without page = %d, want 503", w.Code)
	}

	pushPage(t, h, "https://example.com/p", "<title>Example</title>")
	w = do(t, h, http.MethodPost, "/api/messages", `{"type":"SCRAPE_PAGE"}`)
	resp := decode[bridge.Response](t, w)
	if w.Code != http.StatusOK || !resp.OK() || resp.Data.Title != "Example" {
		t.Errorf("message = %d %+v", w.Code, resp)
	}

	if w := do(t, h, http.MethodDelete, "/api/page", ""); w.Code != http.StatusNoContent {
		t.Errorf("DELETE /api/page = %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/messages", `{"type":"SCRAPE_PAGE"}`); w.Code != http.StatusServiceUnavailable {
		t.Errorf("message after unload = %d, want 503", w.Code)
	}
}

func TestAccessRestrictions(t *testing.T) {
	d := newTestDeps(t)
	d.AllowedCIDRS = []string{"10.0.0.0/8"}
	d.AllowedHosts = []string{"cards.example.com"}
	h := NewRouter(testConfig(), logger.Nop(), d)

	req := httptest.NewRequest(http.MethodGet, "/api/card", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign ip = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/card", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	req.Host = "cards.example.com:8080"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("allowed ip and host = %d, want 200", w.Code)
	}
}

// TestRemotePageHost runs the page host and the panel as two servers
// talking over HTTP.
func TestRemotePageHost(t *testing.T) {
	hostDeps := newTestDeps(t)
	hostSrv := httptest.NewServer(NewRouter(testConfig(), logger.Nop(), hostDeps))
	defer hostSrv.Close()

	log := logger.Nop()
	cfgStore := memory.NewConfigStore()
	history := memory.NewHistoryStore()
	requester := bridge.NewRequester(bridge.NewHTTPChannel(hostSrv.URL), 2*time.Second, log)
	panel := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Session:         session.New(requester, cfgStore, history, log),
		PageHostURL:     hostSrv.URL,
		ConfigStore:     cfgStore,
		HistoryStore:    history,
		StoreBackend:    "memory",
		RateLimitBurst:  100,
		RateLimitPerMin: 100,
	}
	h := NewRouter(testConfig(), logger.Nop(), panel)

	if w := do(t, h, http.MethodPut, "/api/page?url=x", "<html></html>"); w.Code != http.StatusNotFound {
		t.Errorf("panel should not expose the page host, got %d", w.Code)
	}

	if w := do(t, h, http.MethodPost, "/api/card/refresh", ""); w.Code != http.StatusBadGateway {
		t.Errorf("refresh before the host has a page = %d, want 502", w.Code)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut,
		hostSrv.URL+"/api/page?url="+url.QueryEscape(amazonURL), bytes.NewBufferString(amazonPage))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := hostSrv.Client().Do(req)
	if err != nil {
		t.Fatalf("push page: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("push page = %d", resp.StatusCode)
	}

	w := do(t, h, http.MethodPost, "/api/card/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("remote refresh = %d %s", w.Code, w.Body.String())
	}
	if draft := decode[domain.CardDraft](t, w); draft.Title != "Widget Pro" {
		t.Errorf("remote draft = %+v", draft)
	}
}
