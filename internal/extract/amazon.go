package extract

import (
	"encoding/json"
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
)

const (
	amazonTitleID        = "productTitle"
	amazonImageID        = "landingImage"
	amazonDynamicImgAttr = "data-a-dynamic-image"
)

// Amazon extracts product pages on any Amazon storefront or short-link domain.
type Amazon struct{}

func (Amazon) Name() string { return string(platform.Amazon) }

func (Amazon) Matches(url string) bool {
	return strings.Contains(url, "amazon.") || strings.Contains(url, "amzn.")
}

// Extract returns the raw page URL. Affiliate cleaning needs the configured
// tag and is applied when the record is merged into a card.
func (Amazon) Extract(doc *Document, url string) (domain.ScrapedRecord, error) {
	if doc == nil {
		return domain.ScrapedRecord{}, ErrNilDocument
	}

	title, _ := doc.ElementText(amazonTitleID)
	if title == "" {
		title = doc.Title()
	}

	return domain.ScrapedRecord{
		Title:      title,
		ImageURL:   amazonImage(doc),
		URL:        url,
		SiteName:   "Amazon",
		PlatformID: platform.Amazon,
	}, nil
}

func amazonImage(doc *Document) string {
	imageURL := ""
	if doc.HasElement(amazonImageID) {
		if dynamic, ok := doc.ElementAttr(amazonImageID, amazonDynamicImgAttr); ok && dynamic != "" {
			imageURL = lastObjectKey(dynamic)
		}
		if imageURL == "" {
			imageURL, _ = doc.ElementAttr(amazonImageID, "src")
		}
	}
	if imageURL == "" {
		imageURL = doc.MetaProperty("og:image")
	}
	return imageURL
}

// lastObjectKey returns the last key of a JSON object in document order.
// The dynamic image map lists resolutions smallest first, so the last key
// is the largest variant. Malformed JSON yields "".
func lastObjectKey(raw string) string {
	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return ""
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ""
	}

	last := ""
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return ""
		}
		key, ok := keyTok.(string)
		if !ok {
			return ""
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return ""
		}
		last = key
	}

	if _, err := dec.Token(); err != nil {
		return ""
	}
	return last
}
