package docstring

import (
	"regexp"
	"strings"
)

// Arg is the help text documented for one argument.
type Arg struct {
	Name        string
	Description string
}

// Doc is the result of parsing one documentation comment. Argument names are
// whatever the comment documents and need not match the real parameters.
type Doc struct {
	Description string
	Args        []Arg
}

// Help maps argument names to their help text. A name documented twice keeps
// its last entry.
func (d Doc) Help() map[string]string {
	help := make(map[string]string, len(d.Args))
	for _, arg := range d.Args {
		help[arg.Name] = arg.Description
	}
	return help
}

// MatchedArgCount counts the documented arguments whose name is one of names.
func (d Doc) MatchedArgCount(names []string) int {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	count := 0
	for _, arg := range d.Args {
		if _, ok := known[arg.Name]; ok {
			count++
		}
	}
	return count
}

var (
	googleArgStart = regexp.MustCompile(`^(\w+): `)
	numpyArgStart  = regexp.MustCompile(`^(\w+)\s*:`)
)

// ArgsFromLines parses a Google style argument block:
//
//	hoge: description of hoge
//	      that can be multilined.
//	fuga: description of fuga.
//
// A line starting with "name: " opens an argument and the rest of the line seeds
// its description; any other line continues the current argument.
func ArgsFromLines(lines []string) []Arg {
	return collectArgs(lines, googleArgStart, true)
}

// collectArgs splits lines into arguments at every line matching start. When
// keepRemainder is false the text after the match is dropped. Lines before the
// first argument are ignored.
func collectArgs(lines []string, start *regexp.Regexp, keepRemainder bool) []Arg {
	var (
		args    []Arg
		name    string
		builder DescriptionBuilder
	)
	flush := func() {
		if name != "" {
			args = append(args, Arg{Name: name, Description: builder.Build()})
		}
	}

	for _, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		loc := start.FindStringSubmatchIndex(stripped)
		if loc == nil {
			if name != "" {
				builder.AddLine(line)
			}
			continue
		}

		flush()
		name = stripped[loc[2]:loc[3]]
		builder = DescriptionBuilder{}
		if keepRemainder {
			builder.AddLine(stripped[loc[1]:])
		}
	}
	flush()

	return args
}

// splitLines splits text into lines, accepting both LF and CRLF endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
