// Package theme loads the styles used to colour generated help output.
//
// Themes are YAML documents embedded in the binary. Each names a style per
// semantic element of a help page (section headers, option names, command
// names and so on); the colour values follow lipgloss conventions and may be
// adaptive with separate light and dark values.
package theme

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"autocli/internal/data/embedded"
)

const (
	// DefaultName is the theme used when none is configured.
	DefaultName = "default"
	// PlainName is the theme without any styling.
	PlainName = "plain"
	// MaxWidth is the widest help page ever rendered.
	MaxWidth = 120
)

// Theme holds one lipgloss style per help element.
type Theme struct {
	Name     string
	Header   lipgloss.Style
	Usage    lipgloss.Style
	Option   lipgloss.Style
	Command  lipgloss.Style
	Argument lipgloss.Style
	Required lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}

type styleConfig struct {
	Foreground any   `yaml:"foreground,omitempty"`
	Background any   `yaml:"background,omitempty"`
	Bold       *bool `yaml:"bold,omitempty"`
	Italic     *bool `yaml:"italic,omitempty"`
	Underline  *bool `yaml:"underline,omitempty"`
}

type themeFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Styles      struct {
		Header   styleConfig `yaml:"header"`
		Usage    styleConfig `yaml:"usage"`
		Option   styleConfig `yaml:"option"`
		Command  styleConfig `yaml:"command"`
		Argument styleConfig `yaml:"argument"`
		Required styleConfig `yaml:"required"`
		Muted    styleConfig `yaml:"muted"`
		Error    styleConfig `yaml:"error"`
	} `yaml:"styles"`
}

// Names lists the built-in themes in lexical order.
func Names() []string {
	names := make([]string, 0, len(embedded.Themes()))
	for name := range embedded.Themes() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the built-in theme with the given name.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	data, ok := embedded.Themes()[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	return Parse(data)
}

// Parse decodes a theme from YAML data.
func Parse(data []byte) (*Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("theme file has no name")
	}
	s := file.Styles
	return &Theme{
		Name:     file.Name,
		Header:   createStyle(s.Header),
		Usage:    createStyle(s.Usage),
		Option:   createStyle(s.Option),
		Command:  createStyle(s.Command),
		Argument: createStyle(s.Argument),
		Required: createStyle(s.Required),
		Muted:    createStyle(s.Muted),
		Error:    createStyle(s.Error),
	}, nil
}

// Plain returns the unstyled theme.
func Plain() *Theme {
	t, err := Load(PlainName)
	if err != nil {
		plain := lipgloss.NewStyle()
		return &Theme{
			Name:     PlainName,
			Header:   plain,
			Usage:    plain,
			Option:   plain,
			Command:  plain,
			Argument: plain,
			Required: plain,
			Muted:    plain,
			Error:    plain,
		}
	}
	return t
}

// Resolve picks the theme to render with. The plain theme is used when
// colour is disabled or the terminal cannot display it; an unknown name falls
// back to the default theme together with the lookup error.
func Resolve(name string, noColor bool) (*Theme, error) {
	if !ColorEnabled(noColor) {
		return Plain(), nil
	}
	t, err := Load(name)
	if err != nil {
		fallback, loadErr := Load(DefaultName)
		if loadErr != nil {
			return Plain(), err
		}
		return fallback, err
	}
	return t, nil
}

// ColorEnabled reports whether styled output should be produced.
func ColorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return lipgloss.ColorProfile() != termenv.Ascii
}

// Width returns the column budget for help output: the terminal width when
// stdout is a terminal, capped at max. A non-positive max means MaxWidth.
func Width(max int) int {
	if max <= 0 || max > MaxWidth {
		max = MaxWidth
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return max
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 || width > max {
		return max
	}
	return width
}

// Wrap word-wraps text to width columns, ignoring ANSI sequences.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}

func createStyle(config styleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color := parseColor(config.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := parseColor(config.Background); color != nil {
		style = style.Background(color)
	}
	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	return style
}

// parseColor accepts a plain colour string or a map with light and dark keys.
func parseColor(value any) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return lipgloss.Color(v)
	case map[string]any:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}
