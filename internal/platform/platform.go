package platform

import "strings"

// ID identifies a shop platform. It drives which URL rule, which extractor
// and which shop slot apply to a given link.
type ID string

const (
	Amazon     ID = "amazon"
	AliExpress ID = "aliexpress"
	Sunstella  ID = "sunstella"

	// Other marks an unrecognized platform. It never owns a shop slot.
	Other ID = ""
)

// Known returns the supported platforms in shop slot order.
func Known() []ID {
	return []ID{Amazon, AliExpress, Sunstella}
}

// Parse maps a raw platform string to an ID. Anything unknown is Other.
func Parse(s string) ID {
	switch ID(strings.ToLower(strings.TrimSpace(s))) {
	case Amazon:
		return Amazon
	case AliExpress:
		return AliExpress
	case Sunstella:
		return Sunstella
	default:
		return Other
	}
}

// IsKnown reports whether id is one of the supported platforms.
func (id ID) IsKnown() bool {
	return id != Other && Parse(string(id)) == id
}

// Label returns the human readable shop name.
func (id ID) Label() string {
	switch id {
	case Amazon:
		return "Amazon"
	case AliExpress:
		return "AliExpress"
	case Sunstella:
		return "Sunstella"
	default:
		return ""
	}
}

// AutoPopulatesShop reports whether a scraped URL may be written into the
// platform's shop slot. AliExpress links need a manually generated
// s.click short-link, so the scraped product URL is never used there.
func (id ID) AutoPopulatesShop() bool {
	return id != AliExpress
}

func (id ID) String() string { return string(id) }
