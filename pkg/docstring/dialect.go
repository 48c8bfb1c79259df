package docstring

import (
	"fmt"
	"strings"
)

// Dialect identifies a documentation comment convention.
type Dialect int

const (
	// Google is the "Args:" section style.
	Google Dialect = iota
	// Numpy is the underlined "Parameters" section style.
	Numpy
	// RestructuredText is the ":param name:" field list style.
	RestructuredText
)

// String returns a human-readable representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Google:
		return "google"
	case Numpy:
		return "numpy"
	case RestructuredText:
		return "restructured-text"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// Dialects returns every dialect in tie-break priority order.
func Dialects() []Dialect {
	return []Dialect{Google, Numpy, RestructuredText}
}

// Parse parses text with the given dialect.
func Parse(dialect Dialect, text string) Doc {
	switch dialect {
	case Numpy:
		return ParseNumpy(text)
	case RestructuredText:
		return ParseRestructuredText(text)
	default:
		return ParseGoogle(text)
	}
}

// Select parses text with every dialect and returns the parse whose argument
// names match the most entries of names. Ties go to the earlier dialect in
// Dialects order. Blank text is not parsed and yields an empty Doc.
func Select(text string, names []string) (Dialect, Doc) {
	if strings.TrimSpace(text) == "" {
		return Google, Doc{}
	}

	bestDialect := Google
	var bestDoc Doc
	bestCount := -1
	for _, dialect := range Dialects() {
		doc := Parse(dialect, text)
		if count := doc.MatchedArgCount(names); count > bestCount {
			bestDialect, bestDoc, bestCount = dialect, doc, count
		}
	}
	return bestDialect, bestDoc
}
