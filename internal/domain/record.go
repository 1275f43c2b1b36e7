package domain

import "github.com/MrSnakeDoc/cardsmith/internal/platform"

// ScrapedRecord is what an extractor pulls out of a loaded product page.
//
// A record is produced fresh on every extraction and never persisted as-is.
// URL is always the raw page URL; affiliate cleaning happens during merge.
type ScrapedRecord struct {
	Title      string      `json:"title"`
	ImageURL   string      `json:"imageUrl"`
	URL        string      `json:"url"`
	SiteName   string      `json:"siteName,omitempty"`
	PlatformID platform.ID `json:"platformId,omitempty"`
}
