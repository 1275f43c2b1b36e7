package extract

import (
	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

// NoTitle is used when a page exposes no title at all.
const NoTitle = "No Title"

// Fallback handles any page using Open Graph metadata. It always matches and
// leaves the platform unset.
type Fallback struct{}

func (Fallback) Name() string { return "fallback" }

func (Fallback) Matches(string) bool { return true }

func (Fallback) Extract(doc *Document, url string) (domain.ScrapedRecord, error) {
	if doc == nil {
		return domain.ScrapedRecord{}, ErrNilDocument
	}

	return domain.ScrapedRecord{
		Title:    firstNonEmpty(doc.MetaProperty("og:title"), doc.Title(), NoTitle),
		ImageURL: doc.MetaProperty("og:image"),
		URL:      url,
		SiteName: doc.MetaProperty("og:site_name"),
	}, nil
}
