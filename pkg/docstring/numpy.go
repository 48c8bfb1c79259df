package docstring

import "strings"

const numpyParametersHeader = "Parameters"

// numpyState is the position of the Numpy parser within a comment.
type numpyState int

const (
	numpyInDescription numpyState = iota
	numpyFoundParametersHeader
	numpyInParameterBlock
)

// ParseNumpy parses a Numpy style comment:
//
//	Summary line.
//
//	Parameters
//	----------
//	name: str
//	    Help for name.
//
// The type annotation after the colon is not part of the help text.
func ParseNumpy(text string) Doc {
	var (
		description DescriptionBuilder
		state       numpyState
		argLines    []string
	)

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		switch state {
		case numpyInDescription:
			if trimmed == numpyParametersHeader {
				state = numpyFoundParametersHeader
				continue
			}
			description.AddLine(line)
		case numpyFoundParametersHeader:
			// Anything between the header and its underline is ignored.
			if isDashRule(trimmed) {
				state = numpyInParameterBlock
			}
		case numpyInParameterBlock:
			argLines = append(argLines, line)
		}
	}

	return Doc{Description: description.Build(), Args: collectArgs(argLines, numpyArgStart, false)}
}

func isDashRule(s string) bool {
	return s != "" && strings.Trim(s, "-") == ""
}
