package urlrule

import "strings"

const (
	// SunstellaHost is the storefront domain product pages live on.
	SunstellaHost = "sunstella.co.jp"
	// AffiliateRedirectHost is the redirect service Sunstella links are routed through.
	AffiliateRedirectHost = "shopa.jp"
)

// CleanSunstellaURL routes a Sunstella product URL through the affiliate
// redirect by appending its path and query to baseURL. URLs on any other
// host, and URLs that fail to parse, come back unchanged.
func CleanSunstellaURL(rawURL, baseURL string) string {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return rawURL
	}
	if !strings.Contains(hostname(u), SunstellaHost) {
		return rawURL
	}

	target := u.EscapedPath()
	if target == "" {
		target = "/"
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return baseURL + target
}
