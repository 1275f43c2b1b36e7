package urlrule

import (
	"fmt"
	"net/url"
	"strings"
)

// ASINLength is the fixed length of an Amazon Standard Identification Number.
const ASINLength = 10

// AmazonCanonicalBase is the storefront every cleaned Amazon link points at.
const AmazonCanonicalBase = "https://www.amazon.co.jp/dp/"

// ExtractAmazonASIN returns the ASIN embedded in an Amazon product URL.
//
// Supported shapes: /dp/<ASIN>, /gp/product/<ASIN> and /<slug>/dp/<ASIN>,
// with anything after the ASIN ignored. The first dp or gp/product marker
// wins; the segment following it must be exactly ASINLength long.
func ExtractAmazonASIN(rawURL string) (string, bool) {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return "", false
	}

	segments := strings.Split(u.EscapedPath(), "/")
	asin := ""
	for i := 0; i < len(segments); i++ {
		if segments[i] == "dp" && i+1 < len(segments) {
			asin = segments[i+1]
			break
		}
		if segments[i] == "product" && i > 0 && segments[i-1] == "gp" && i+1 < len(segments) {
			asin = segments[i+1]
			break
		}
	}

	if len(asin) != ASINLength {
		return "", false
	}
	return asin, true
}

// CleanAmazonURL rewrites an Amazon product URL into its canonical affiliate
// form. Without an ASIN or a tag the input is returned untouched.
func CleanAmazonURL(rawURL, tag string) string {
	asin, ok := ExtractAmazonASIN(rawURL)
	if !ok || tag == "" {
		return rawURL
	}
	return fmt.Sprintf("%s%s?tag=%s", AmazonCanonicalBase, asin, tag)
}

// parseAbsolute parses rawURL and rejects anything that is not an absolute
// URL with a host. url.Parse accepts almost any string as a relative
// reference, which is not a usable shop link.
func parseAbsolute(rawURL string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, false
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

// hostname returns the lowercased host without port.
func hostname(u *url.URL) string {
	return strings.ToLower(u.Hostname())
}
