package cobrabind

import (
	"fmt"
	"strings"

	"autocli/internal/theme"
	"autocli/pkg/clitypes"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// maxLabelColumn is the widest left column before help text moves to its own line.
const maxLabelColumn = 30

type helpRow struct {
	label string
	style lipgloss.Style
	help  string
}

// leafHelp renders the help page of a command built from a schema.
func (b *binder) leafHelp(c *cobra.Command, s *clitypes.CommandSchema) {
	var sb strings.Builder

	usage := b.theme.Usage.Render(c.CommandPath()) + " [OPTIONS]"
	for _, p := range s.Positionals() {
		usage += " " + p.DisplayName()
	}
	b.writeUsage(&sb, usage)
	b.writeDescription(&sb, s.Description)

	var args []helpRow
	for _, p := range s.Positionals() {
		label := p.DisplayName()
		if len(p.Choices) > 0 {
			label += " [" + p.TypeName() + "]"
		}
		args = append(args, helpRow{label: label, style: b.theme.Argument, help: p.Help})
	}
	b.writeSection(&sb, "Arguments", args)

	var opts []helpRow
	known := make(map[string]bool)
	for _, p := range s.Options() {
		known[p.FlagName()] = true
		opts = append(opts, helpRow{label: optionLabel(p), style: b.theme.Option, help: b.paramHelp(s, p)})
	}
	opts = append(opts, flagRows(c.LocalFlags(), known, b.theme.Option)...)
	b.writeSection(&sb, "Options", opts)
	b.writeSection(&sb, "Global Options", flagRows(c.InheritedFlags(), nil, b.theme.Option))

	fmt.Fprint(c.OutOrStdout(), sb.String())
}

// commandHelp renders the help page of a group or an auxiliary command.
func (b *binder) commandHelp(c *cobra.Command, _ []string) {
	var sb strings.Builder

	usage := b.theme.Usage.Render(c.CommandPath()) + " [OPTIONS]"
	if c.HasAvailableSubCommands() {
		usage += " COMMAND [ARGS]..."
	} else if _, rest, found := strings.Cut(c.Use, " "); found {
		usage += " " + rest
	}
	b.writeUsage(&sb, usage)

	description := c.Long
	if description == "" {
		description = c.Short
	}
	b.writeDescription(&sb, description)

	b.writeSection(&sb, "Options", flagRows(c.LocalFlags(), nil, b.theme.Option))
	b.writeSection(&sb, "Global Options", flagRows(c.InheritedFlags(), nil, b.theme.Option))

	var commands []helpRow
	for _, sub := range c.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		commands = append(commands, helpRow{label: sub.Name(), style: b.theme.Command, help: sub.Short})
	}
	b.writeSection(&sb, "Commands", commands)

	fmt.Fprint(c.OutOrStdout(), sb.String())
}

func (b *binder) writeUsage(sb *strings.Builder, usage string) {
	sb.WriteString(b.theme.Header.Render("Usage:") + " " + usage + "\n")
}

func (b *binder) writeDescription(sb *strings.Builder, description string) {
	if description == "" {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(indent(theme.Wrap(description, b.width-2), 2))
	sb.WriteString("\n")
}

func (b *binder) writeSection(sb *strings.Builder, title string, rows []helpRow) {
	if len(rows) == 0 {
		return
	}
	sb.WriteString("\n" + b.theme.Header.Render(title+":") + "\n")

	column := 0
	for _, row := range rows {
		column = max(column, lipgloss.Width(row.label))
	}
	column = min(column, maxLabelColumn)
	helpWidth := max(b.width-column-4, 20)
	pad := strings.Repeat(" ", column+4)

	for _, row := range rows {
		label := "  " + row.style.Render(row.label)
		if row.help == "" {
			sb.WriteString(label + "\n")
			continue
		}
		lines := strings.Split(theme.Wrap(row.help, helpWidth), "\n")
		labelWidth := lipgloss.Width(row.label)
		if labelWidth > column {
			sb.WriteString(label + "\n")
			for _, line := range lines {
				sb.WriteString(pad + line + "\n")
			}
			continue
		}
		sb.WriteString(label + strings.Repeat(" ", column-labelWidth+2) + lines[0] + "\n")
		for _, line := range lines[1:] {
			sb.WriteString(pad + line + "\n")
		}
	}
}

// paramHelp returns the help text of an option with its default and required
// markers appended.
func (b *binder) paramHelp(s *clitypes.CommandSchema, p clitypes.ParameterSpec) string {
	var parts []string
	if p.Help != "" {
		parts = append(parts, p.Help)
	}
	if p.HasDefault {
		var shown string
		switch p.Kind {
		case clitypes.ChoiceOption:
			shown = defaultLabel(s, p)
		case clitypes.Flag:
			if defaultValue(p).Bool() {
				shown = "true"
			}
		default:
			shown = fmt.Sprint(p.Default)
		}
		if shown != "" {
			parts = append(parts, b.theme.Muted.Render("[default: "+shown+"]"))
		}
	}
	if p.Required {
		parts = append(parts, b.theme.Required.Render("[required]"))
	}
	return strings.Join(parts, "  ")
}

func optionLabel(p clitypes.ParameterSpec) string {
	switch p.Kind {
	case clitypes.Flag:
		return p.DisplayName()
	case clitypes.ChoiceOption:
		return p.DisplayName() + " [" + p.TypeName() + "]"
	default:
		return p.DisplayName() + " " + p.TypeName()
	}
}

// flagRows lists the flags of fs in definition order, skipping the names in known.
func flagRows(fs *pflag.FlagSet, known map[string]bool, style lipgloss.Style) []helpRow {
	var rows []helpRow
	fs.SortFlags = false
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || known[f.Name] {
			return
		}
		label := "--" + f.Name
		if f.Shorthand != "" {
			label = "-" + f.Shorthand + ", " + label
		}
		if t := f.Value.Type(); t != "bool" {
			label += " " + t
		}
		rows = append(rows, helpRow{label: label, style: style, help: f.Usage})
	})
	return rows
}

func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
