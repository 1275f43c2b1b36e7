package extract

import (
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
)

// AliExpress extracts AliExpress item pages.
type AliExpress struct{}

func (AliExpress) Name() string { return string(platform.AliExpress) }

func (AliExpress) Matches(url string) bool {
	return strings.Contains(url, "aliexpress.com") || strings.Contains(url, "aliexpress.co.jp")
}

func (AliExpress) Extract(doc *Document, url string) (domain.ScrapedRecord, error) {
	if doc == nil {
		return domain.ScrapedRecord{}, ErrNilDocument
	}

	return domain.ScrapedRecord{
		Title:      firstNonEmpty(doc.MetaProperty("og:title"), doc.Title()),
		ImageURL:   doc.MetaProperty("og:image"),
		URL:        url,
		SiteName:   "AliExpress",
		PlatformID: platform.AliExpress,
	}, nil
}
