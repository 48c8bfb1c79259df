package docstring

import (
	"regexp"
	"strings"
)

// rstDirective matches field list markers such as ":param name:", ":param str name:"
// and ":returns:".
var rstDirective = regexp.MustCompile(`^:(\w+)(?: (\w+))?(?: (\w+))?:`)

// ParseRestructuredText parses a reStructuredText field list comment. Lines before
// the first directive form the description. Scanning stops at the first directive
// that is not ":param", so parameters documented after ":returns:" are not seen.
func ParseRestructuredText(text string) Doc {
	var (
		description DescriptionBuilder
		args        []Arg
		name        string
		builder     DescriptionBuilder
	)
	flush := func() {
		if name != "" {
			args = append(args, Arg{Name: name, Description: builder.Build()})
		}
	}

scan:
	for _, line := range splitLines(text) {
		stripped := strings.TrimLeft(line, " \t")
		m := rstDirective.FindStringSubmatch(stripped)
		switch {
		case m != nil:
			argName := m[3]
			if argName == "" {
				argName = m[2]
			}
			if m[1] != "param" || argName == "" {
				break scan
			}
			flush()
			name = argName
			builder = DescriptionBuilder{}
			builder.AddLine(stripped[len(m[0]):])
		case name == "":
			description.AddLine(line)
		default:
			builder.AddLine(line)
		}
	}
	flush()

	return Doc{Description: description.Build(), Args: args}
}
