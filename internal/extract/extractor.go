package extract

import (
	"errors"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
)

var (
	ErrNilDocument         = errors.New("no document loaded")
	ErrNoMatchingExtractor = errors.New("no compatible extractor found")
)

// Extractor turns a loaded page into a ScrapedRecord.
//
// Matches is a loose substring test on the URL so locale subdomains and
// short-link domains are accepted. Extract must tolerate any markup.
type Extractor interface {
	Name() string
	Matches(url string) bool
	Extract(doc *Document, url string) (domain.ScrapedRecord, error)
}

// Registry is the ordered list of extractors. Order is significant: the
// first match wins, and the fallback must come last.
type Registry []Extractor

// DefaultRegistry returns the platform extractors followed by the fallback.
func DefaultRegistry() Registry {
	return Registry{
		Amazon{},
		Sunstella{},
		AliExpress{},
		Fallback{},
	}
}

// Select returns the first extractor matching url.
func (r Registry) Select(url string) (Extractor, bool) {
	for _, e := range r {
		if e.Matches(url) {
			return e, true
		}
	}
	return nil, false
}
