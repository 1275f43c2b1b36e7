// Package session holds the single active card-building session: the draft
// being edited, the scrape state and the wiring to the stores.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/render"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

var (
	ErrScrapeInProgress = errors.New("a scrape is already in progress")
	ErrNothingToExport  = errors.New("nothing to export: add a title or a shop link first")
)

// Scraper fetches the record of the page currently shown to the user.
type Scraper interface {
	Scrape(ctx context.Context) (domain.ScrapedRecord, error)
}

// State is a point-in-time view of the session.
type State struct {
	Draft     domain.CardDraft `json:"draft"`
	Loading   bool             `json:"loading"`
	LastError string           `json:"lastError,omitempty"`
}

// Patch carries a partial update of the card text fields.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	MainLinkURL *string `json:"mainLinkUrl,omitempty"`
}

// Export formats.
const (
	FormatHatena = "hatena"
	FormatHTML   = "html"
)

// Export is the snippet produced for the current card.
type Export struct {
	Format  string             `json:"format"`
	Content string             `json:"content"`
	Item    domain.HistoryItem `json:"historyItem"`
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	draft   domain.CardDraft
	loading bool
	lastErr string
	palette render.Palette

	scraper Scraper
	config  store.ConfigStore
	history store.HistoryStore
	logger  logger.Logger
}

// New creates a session with an empty draft.
func New(scraper Scraper, config store.ConfigStore, history store.HistoryStore, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		draft:   domain.NewCardDraft(),
		palette: render.DefaultPalette(),
		scraper: scraper,
		config:  config,
		history: history,
		logger:  log,
	}
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Draft: s.draft.Clone(), Loading: s.loading, LastError: s.lastErr}
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() domain.CardDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Refresh scrapes the current page and merges the record into the draft.
// Only one scrape runs at a time. A failure is kept as LastError and the
// draft is left unchanged.
func (s *Session) Refresh(ctx context.Context) (domain.CardDraft, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return domain.CardDraft{}, ErrScrapeInProgress
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	settings, err := s.config.LoadSettings(ctx)
	if err != nil {
		s.logger.Warn("failed to load affiliate settings, using defaults", logger.Error(err))
	}

	rec, err := s.scraper.Scrape(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		s.logger.Warn("refresh failed", logger.Error(err))
		return s.draft.Clone(), err
	}

	s.draft = domain.Merge(s.draft, rec, settings)
	s.logger.Info("card refreshed",
		logger.String("platform", rec.PlatformID.String()),
		logger.String("url", rec.URL))
	return s.draft.Clone(), nil
}

// Reset clears the card content and any previous error.
func (s *Session) Reset() domain.CardDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = domain.Reset(s.draft)
	s.lastErr = ""
	return s.draft.Clone()
}

// Update writes the non-nil fields of p into the draft.
func (s *Session) Update(p Patch) domain.CardDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Title != nil {
		s.draft.Title = *p.Title
	}
	if p.ImageURL != nil {
		s.draft.ImageURL = *p.ImageURL
	}
	if p.MainLinkURL != nil {
		s.draft.MainLinkURL = *p.MainLinkURL
	}
	return s.draft.Clone()
}

func (s *Session) SetTitle(title string) domain.CardDraft {
	return s.Update(Patch{Title: &title})
}

func (s *Session) SetImageURL(u string) domain.CardDraft {
	return s.Update(Patch{ImageURL: &u})
}

func (s *Session) SetMainLinkURL(u string) domain.CardDraft {
	return s.Update(Patch{MainLinkURL: &u})
}

// SetShopURL stores a URL in the given slot. The URL is kept even when it
// fails validation; Validate reports the problem.
func (s *Session) SetShopURL(id, u string) (domain.CardDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.draft.SetShopURL(id, u)
	if err != nil {
		return s.draft.Clone(), fmt.Errorf("%w: %s", err, id)
	}
	s.draft = next
	return s.draft.Clone(), nil
}

func (s *Session) ClearShop(id string) (domain.CardDraft, error) {
	return s.SetShopURL(id, "")
}

// Validate checks every shop slot of the current draft.
func (s *Session) Validate() []domain.ShopValidation {
	return s.Draft().Validate()
}

// Export renders the current card and records it in the history. When
// Amazon is the only shop and its ASIN can be read, the Hatena short-code
// is produced instead of the HTML block.
func (s *Session) Export(ctx context.Context) (Export, error) {
	draft := s.Draft()

	active := draft.ActiveShops()
	if draft.Title == "" && len(active) == 0 {
		return Export{}, ErrNothingToExport
	}

	item, err := s.history.Add(ctx, draft)
	if err != nil {
		return Export{}, fmt.Errorf("save history: %w", err)
	}

	out := Export{Item: item}
	if asin, ok := amazonOnlyASIN(draft); ok {
		out.Format = FormatHatena
		out.Content = render.HatenaTag(asin)
	} else {
		html, err := render.CardHTML(draft)
		if err != nil {
			return Export{}, err
		}
		out.Format = FormatHTML
		out.Content = html
	}

	s.logger.Info("card exported",
		logger.String("format", out.Format),
		logger.String("history_id", item.ID))
	return out, nil
}

func amazonOnlyASIN(draft domain.CardDraft) (string, bool) {
	if !draft.IsAmazonOnly() {
		return "", false
	}
	return urlrule.ExtractAmazonASIN(draft.ActiveShops()[0].URL)
}

// Restore replaces the draft with a history snapshot.
func (s *Session) Restore(ctx context.Context, id string) (domain.CardDraft, error) {
	item, err := s.history.Get(ctx, id)
	if err != nil {
		return domain.CardDraft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = item.Draft()
	s.lastErr = ""
	return s.draft.Clone(), nil
}

// ApplyLayout installs the palette and shop presets from the settings file.
// Presets are applied to the live draft immediately.
func (s *Session) ApplyLayout(palette render.Palette, presets []domain.ShopPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette = palette.WithDefaults()
	s.draft = s.draft.ApplyPresets(presets)
}

// Palette returns the palette used by CSS.
func (s *Session) Palette() render.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// CSS renders the blog stylesheet with the current palette.
func (s *Session) CSS() (string, error) {
	return render.BlogCSS(s.Palette())
}
