package docstring

import "strings"

const googleArgsHeader = "Args:"

// ParseGoogle parses a Google style comment. Lines before the "Args:" header form
// the description; the argument block runs from the header to the first blank line.
func ParseGoogle(text string) Doc {
	var (
		description DescriptionBuilder
		foundArgs   bool
		argsEnded   bool
		argLines    []string
	)

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == googleArgsHeader {
			foundArgs = true
			continue
		}

		switch {
		case !foundArgs:
			description.AddLine(line)
		case trimmed == "":
			argsEnded = true
		case !argsEnded:
			argLines = append(argLines, line)
		}
	}

	return Doc{Description: description.Build(), Args: ArgsFromLines(argLines)}
}
