// Package docstring parses documentation comments into a description and per-argument help.
//
// Three dialects are understood: Google style ("Args:" sections), Numpy style
// ("Parameters" headers underlined with dashes) and reStructuredText field lists
// (":param name: ..."). Select runs all three and keeps the parse whose argument
// names best match the real parameter names.
package docstring

import "strings"

// DescriptionBuilder joins raw lines into free-flowing prose.
//
// Blank lines become paragraph breaks, other lines are trimmed and joined with a
// single space, and a run ending in a hyphen is glued directly onto the next line
// so that words wrapped with a hyphen are rejoined. The zero value is ready to use.
type DescriptionBuilder struct {
	description  string
	midParagraph bool
}

// AddLine feeds one raw line into the builder.
func (b *DescriptionBuilder) AddLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		// No leading blank paragraphs.
		if b.description == "" {
			return
		}
		b.description += "\n"
		b.midParagraph = false
		return
	}

	switch {
	case !b.midParagraph:
		b.description += trimmed
	case strings.HasSuffix(b.description, "-"):
		b.description = b.description[:len(b.description)-1] + trimmed
	default:
		b.description += " " + trimmed
	}
	b.midParagraph = true
}

// Build returns the accumulated text without surrounding whitespace.
func (b *DescriptionBuilder) Build() string {
	return strings.TrimSpace(b.description)
}
