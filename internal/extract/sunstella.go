package extract

import (
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

// Sunstella extracts sunstella.co.jp product pages, which publish reliable
// Open Graph metadata.
type Sunstella struct{}

func (Sunstella) Name() string { return string(platform.Sunstella) }

func (Sunstella) Matches(url string) bool {
	return strings.Contains(url, urlrule.SunstellaHost)
}

func (Sunstella) Extract(doc *Document, url string) (domain.ScrapedRecord, error) {
	if doc == nil {
		return domain.ScrapedRecord{}, ErrNilDocument
	}

	return domain.ScrapedRecord{
		Title:      firstNonEmpty(doc.MetaProperty("og:title"), doc.Title()),
		ImageURL:   firstNonEmpty(doc.MetaProperty("og:image"), doc.MetaProperty("og:image:secure_url")),
		URL:        url,
		SiteName:   "Sunstella",
		PlatformID: platform.Sunstella,
	}, nil
}
