package settings

// File represents the top-level structure of the settings YAML file
type File struct {
	Affiliate AffiliateProps `yaml:"affiliate"`
	Palette   PaletteProps   `yaml:"palette"`
	Shops     []ShopProps    `yaml:"shops"`
}

// AffiliateProps seeds the affiliate defaults used until the user saves
// their own values
type AffiliateProps struct {
	AmazonTag        string `yaml:"amazonTag,omitempty"`
	SunstellaBaseURL string `yaml:"sunstellaBaseUrl,omitempty"`
}

// PaletteProps contains the button colours of the generated stylesheet
type PaletteProps struct {
	Amazon        string `yaml:"amazon,omitempty"`
	AliExpress    string `yaml:"aliexpress,omitempty"`
	SunstellaBg   string `yaml:"sunstellaBg,omitempty"`
	SunstellaText string `yaml:"sunstellaText,omitempty"`
}

// ShopProps overrides the presentation of one platform's shop slot
type ShopProps struct {
	Platform string `yaml:"platform"`
	Label    string `yaml:"label,omitempty"`
	Enabled  *bool  `yaml:"enabled,omitempty"`
}
