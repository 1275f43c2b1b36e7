package domain

const (
	DefaultAmazonTag        = "konoe.studio-22"
	DefaultSunstellaBaseURL = "https://shopa.jp/P3YAJPMCHRM5/?url="
)

// AffiliateSettings holds the user-configured affiliate identifiers applied
// when scraped URLs are cleaned.
type AffiliateSettings struct {
	AmazonTag        string `json:"amazonTag" yaml:"amazonTag"`
	SunstellaBaseURL string `json:"sunstellaBaseUrl" yaml:"sunstellaBaseUrl"`
}

// DefaultAffiliateSettings returns the settings used when nothing is stored.
func DefaultAffiliateSettings() AffiliateSettings {
	return AffiliateSettings{
		AmazonTag:        DefaultAmazonTag,
		SunstellaBaseURL: DefaultSunstellaBaseURL,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left as is.
type SettingsPatch struct {
	AmazonTag        *string `json:"amazonTag,omitempty"`
	SunstellaBaseURL *string `json:"sunstellaBaseUrl,omitempty"`
}

// Apply returns s with the non-nil fields of p written over it.
func (p SettingsPatch) Apply(s AffiliateSettings) AffiliateSettings {
	if p.AmazonTag != nil {
		s.AmazonTag = *p.AmazonTag
	}
	if p.SunstellaBaseURL != nil {
		s.SunstellaBaseURL = *p.SunstellaBaseURL
	}
	return s
}
