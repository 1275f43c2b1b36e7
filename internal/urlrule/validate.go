package urlrule

import (
	"strings"

	"github.com/MrSnakeDoc/cardsmith/internal/platform"
)

// User-facing validation messages.
const (
	MsgMalformedURL         = "The URL format is invalid"
	MsgAmazonDomain         = "Enter an amazon.co.jp URL"
	MsgAmazonNoASIN         = "The URL does not contain a valid ASIN"
	MsgAliExpressWrongType  = "Enter an s.click.aliexpress.com affiliate link instead of the product page URL"
	MsgAliExpressNotLink    = "Enter an AliExpress affiliate link (s.click.aliexpress.com)"
	MsgSunstellaRedirectURL = "Enter the product page URL (sunstella.co.jp), not the generated shopa.jp link"
	MsgSunstellaNotLink     = "Enter a Sunstella product page URL (sunstella.co.jp)"
)

const (
	amazonJPHost            = "amazon.co.jp"
	amazonShortHost         = "amzn.asia"
	aliExpressHost          = "aliexpress.com"
	aliExpressAffiliateHost = "s.click.aliexpress.com"
)

// ValidationResult is the outcome of checking a shop URL. It is computed on
// demand and never stored.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

func valid() ValidationResult { return ValidationResult{IsValid: true} }

func invalid(msg string) ValidationResult {
	return ValidationResult{IsValid: false, Message: msg}
}

// ValidateShopURL checks that url is an acceptable affiliate target for the
// given platform. An empty URL is valid: it means the slot was cleared.
func ValidateShopURL(id platform.ID, rawURL string) ValidationResult {
	if strings.TrimSpace(rawURL) == "" {
		return valid()
	}

	u, ok := parseAbsolute(rawURL)
	if !ok {
		return invalid(MsgMalformedURL)
	}
	host := hostname(u)

	switch id {
	case platform.Amazon:
		if !strings.Contains(host, amazonJPHost) && !strings.Contains(host, amazonShortHost) {
			return invalid(MsgAmazonDomain)
		}
		if _, ok := ExtractAmazonASIN(rawURL); !ok {
			return invalid(MsgAmazonNoASIN)
		}
		return valid()

	case platform.AliExpress:
		if host == aliExpressAffiliateHost {
			return valid()
		}
		// Common mistake: the plain item page instead of the affiliate short-link.
		if strings.Contains(host, aliExpressHost) {
			return invalid(MsgAliExpressWrongType)
		}
		return invalid(MsgAliExpressNotLink)

	case platform.Sunstella:
		// shopa.jp is what CleanSunstellaURL produces, never an input.
		if strings.Contains(host, AffiliateRedirectHost) {
			return invalid(MsgSunstellaRedirectURL)
		}
		if strings.Contains(host, SunstellaHost) {
			return valid()
		}
		return invalid(MsgSunstellaNotLink)

	default:
		return valid()
	}
}
