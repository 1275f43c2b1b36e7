package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a loaded product page. Every lookup is best-effort: missing
// elements and attributes come back as empty strings, never as errors.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page into a Document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an already parsed tree.
func FromNode(root *html.Node) *Document {
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// Title returns the first HTML <title> text with whitespace collapsed, the
// way browsers expose document.title. SVG titles are ignored.
func (d *Document) Title() string {
	if d == nil || d.doc == nil {
		return ""
	}
	sel := d.doc.Find("title").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Nodes[0].Namespace == ""
	}).First()
	return collapseSpace(sel.Text())
}

// MetaProperty returns the content of <meta property="name">.
func (d *Document) MetaProperty(name string) string {
	v, _ := d.Attr(fmt.Sprintf(`meta[property=%q]`, name), "content")
	return v
}

// ElementText returns the text of the element with the given id with runs
// of whitespace collapsed to single spaces.
func (d *Document) ElementText(id string) (string, bool) {
	sel := d.byID(id)
	if sel == nil {
		return "", false
	}
	return collapseSpace(sel.Text()), true
}

// ElementAttr returns an attribute of the element with the given id.
func (d *Document) ElementAttr(id, name string) (string, bool) {
	sel := d.byID(id)
	if sel == nil {
		return "", false
	}
	return sel.Attr(name)
}

// HasElement reports whether an element with the given id exists.
func (d *Document) HasElement(id string) bool {
	return d.byID(id) != nil
}

// Attr returns an attribute of the first element matching selector.
func (d *Document) Attr(selector, name string) (string, bool) {
	if d == nil || d.doc == nil {
		return "", false
	}
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(name)
}

// HTML serializes the document back to markup.
func (d *Document) HTML() (string, error) {
	if d == nil || d.doc == nil {
		return "", nil
	}
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

func (d *Document) byID(id string) *goquery.Selection {
	if d == nil || d.doc == nil || id == "" {
		return nil
	}
	sel := d.doc.Find(fmt.Sprintf(`[id=%q]`, id)).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstNonEmpty returns the first argument that is not empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
