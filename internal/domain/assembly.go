package domain

import (
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

// AffiliateLinks resolves the main link and the shop slot URL for a scraped
// record. populate is false when the platform's slot must not be filled
// from a scrape.
func AffiliateLinks(rec ScrapedRecord, settings AffiliateSettings) (mainLink, shopURL string, populate bool) {
	switch rec.PlatformID {
	case platform.Amazon:
		clean := urlrule.CleanAmazonURL(rec.URL, settings.AmazonTag)
		return clean, clean, true
	case platform.Sunstella:
		clean := urlrule.CleanSunstellaURL(rec.URL, settings.SunstellaBaseURL)
		return clean, clean, true
	case platform.AliExpress:
		// The scraped product URL is never a valid AliExpress affiliate target.
		return rec.URL, "", false
	default:
		return rec.URL, rec.URL, true
	}
}

// Merge folds a freshly scraped record into the draft and returns the result.
// The input draft is not modified.
//
//   - only the slot matching the record's platform is updated;
//   - title and image are taken from the record only while both are empty,
//     so manual edits survive a re-scrape;
//   - the main link is first-write-wins.
func Merge(draft CardDraft, rec ScrapedRecord, settings AffiliateSettings) CardDraft {
	mainLink, shopURL, populate := AffiliateLinks(rec, settings)

	out := draft.Clone()
	if populate && rec.PlatformID.IsKnown() {
		for i := range out.Shops {
			if out.Shops[i].PlatformID == rec.PlatformID {
				out.Shops[i].URL = shopURL
			}
		}
	}

	if draft.IsEmpty() {
		out.Title = rec.Title
		out.ImageURL = rec.ImageURL
	}

	if out.MainLinkURL == "" {
		out.MainLinkURL = mainLink
	}

	return out
}

// Reset clears the card content but keeps every shop slot.
func Reset(draft CardDraft) CardDraft {
	out := draft.Clone()
	out.Title = ""
	out.ImageURL = ""
	out.MainLinkURL = ""
	for i := range out.Shops {
		out.Shops[i].URL = ""
	}
	return out
}
