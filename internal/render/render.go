// Package render turns a card draft into the snippets pasted into a blog
// post: the card HTML, the Hatena short-code and the matching stylesheet.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(
	template.New("render").
		Funcs(template.FuncMap{"escape": EscapeHTML}).
		ParseFS(templatesFS, "templates/*.tmpl"),
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML special characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

type cardView struct {
	MainHref string
	ImageURL string
	Title    string
	Shops    []domain.ShopLink
}

// CardHTML renders the product card block. Only enabled shops with a URL
// get a button; a missing main link renders as "#".
func CardHTML(draft domain.CardDraft) (string, error) {
	view := cardView{
		MainHref: draft.MainLinkURL,
		ImageURL: draft.ImageURL,
		Title:    draft.Title,
		Shops:    draft.RenderableShops(),
	}
	if view.MainHref == "" {
		view.MainHref = "#"
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "card.html.tmpl", view); err != nil {
		return "", fmt.Errorf("render card: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// HatenaTag returns the Hatena Blog short-code for an Amazon product.
func HatenaTag(asin string) string {
	return "[asin:" + asin + ":detail]"
}
