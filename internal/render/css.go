package render

import (
	"bytes"
	"fmt"
)

// Palette holds the button colours of the generated stylesheet.
type Palette struct {
	AmazonColor        string `json:"amazonColor" yaml:"amazonColor"`
	AliExpressColor    string `json:"aliexpressColor" yaml:"aliexpressColor"`
	SunstellaBgColor   string `json:"sunstellaBgColor" yaml:"sunstellaBgColor"`
	SunstellaTextColor string `json:"sunstellaTextColor" yaml:"sunstellaTextColor"`
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		AmazonColor:        "#FF9900",
		AliExpressColor:    "#FF4747",
		SunstellaBgColor:   "#f0f0f0",
		SunstellaTextColor: "#333333",
	}
}

// WithDefaults fills empty colours from DefaultPalette.
func (p Palette) WithDefaults() Palette {
	d := DefaultPalette()
	if p.AmazonColor == "" {
		p.AmazonColor = d.AmazonColor
	}
	if p.AliExpressColor == "" {
		p.AliExpressColor = d.AliExpressColor
	}
	if p.SunstellaBgColor == "" {
		p.SunstellaBgColor = d.SunstellaBgColor
	}
	if p.SunstellaTextColor == "" {
		p.SunstellaTextColor = d.SunstellaTextColor
	}
	return p
}

// BlogCSS renders the stylesheet for the card buttons.
func BlogCSS(p Palette) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "blog.css.tmpl", p.WithDefaults()); err != nil {
		return "", fmt.Errorf("render css: %w", err)
	}
	return buf.String(), nil
}
