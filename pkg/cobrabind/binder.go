// Package cobrabind registers a command tree with github.com/spf13/cobra.
//
// The tree built by package cmdtree is turned into cobra commands: leaves get
// their positional arguments and flags registered in declaration order, groups
// keep their children in registration order. Parsed values are collected by
// parameter name and handed to the schema command, which translates choice
// labels and calls the wrapped function.
//
// Importing the package turns off cobra.EnableCommandSorting for the whole
// process, so every cobra command lists its subcommands in registration order.
package cobrabind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"autocli/internal/logger"
	"autocli/internal/theme"
	"autocli/pkg/clitypes"
	"autocli/pkg/cmdtree"
	"autocli/pkg/schema"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// ErrFlagConflict is returned when two parameters of one command map to
	// the same flag spelling, or a parameter uses a reserved flag name.
	ErrFlagConflict = errors.New("conflicting flag name")
	// ErrNilNode is returned when there is no tree to register.
	ErrNilNode = errors.New("nil command tree")
)

func init() {
	cobra.EnableCommandSorting = false
}

const (
	helpFlag    = "help"
	versionFlag = "version"
)

// Option configures NewCommand.
type Option func(*options)

type options struct {
	name        string
	description string
	version     string
	theme       *theme.Theme
	maxWidth    int
	auxiliary   bool
}

// WithName sets the root command name. It defaults to the tree's name, or the
// program name when the tree root is an unnamed group.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDescription sets the help description of a group root.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// WithVersion enables the root --version flag.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithTheme sets the help theme.
func WithTheme(t *theme.Theme) Option {
	return func(o *options) { o.theme = t }
}

// WithMaxWidth caps the help page width. Values above theme.MaxWidth are
// lowered to it.
func WithMaxWidth(width int) Option {
	return func(o *options) { o.maxWidth = width }
}

// WithoutAuxiliaryCommands disables the show-completion and schema commands
// normally added to a group root.
func WithoutAuxiliaryCommands() Option {
	return func(o *options) { o.auxiliary = false }
}

type binder struct {
	theme  *theme.Theme
	width  int
	logger *log.Logger
}

// NewCommand builds the cobra command for node. Registration errors, such as
// two parameters sharing a flag spelling, abort before anything is returned.
func NewCommand(node *cmdtree.Node, opts ...Option) (*cobra.Command, error) {
	if node == nil {
		return nil, ErrNilNode
	}
	o := options{auxiliary: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.theme == nil {
		o.theme, _ = theme.Resolve(theme.DefaultName, false)
	}

	b := &binder{
		theme:  o.theme,
		width:  theme.Width(o.maxWidth),
		logger: logger.NewStyledLogger("Bind"),
	}

	name := o.name
	if name == "" {
		name = node.Name
	}
	if name == "" {
		name = filepath.Base(os.Args[0])
	}

	root, err := b.build(node, name)
	if err != nil {
		return nil, err
	}

	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetErrPrefix(b.theme.Error.Render("Error:"))
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	if o.description != "" && !node.IsLeaf() {
		root.Long = o.description
	}
	if o.version != "" && root.Flags().Lookup(versionFlag) == nil {
		root.Version = o.version
		root.Flags().Bool(versionFlag, false, "Show the version and exit.")
	}
	if !node.IsLeaf() && o.auxiliary {
		b.addAuxiliary(root, node)
	}
	return root, nil
}

func (b *binder) build(node *cmdtree.Node, name string) (*cobra.Command, error) {
	if node.IsLeaf() {
		return b.leaf(node.Command, name)
	}

	group := &cobra.Command{Use: name}
	group.SetHelpFunc(b.commandHelp)
	for _, child := range node.Children {
		sub, err := b.build(child, child.Name)
		if err != nil {
			return nil, err
		}
		group.AddCommand(sub)
	}
	addHelpFlag(group)
	b.logger.Debug("registered group", "command", name, "children", len(node.Children))
	return group, nil
}

func (b *binder) leaf(command *schema.Command, name string) (*cobra.Command, error) {
	s := command.Schema()
	positionals := s.Positionals()

	use := name
	if len(s.Options()) > 0 {
		use += " [flags]"
	}
	for _, p := range positionals {
		use += " " + p.DisplayName()
	}

	c := &cobra.Command{
		Use:   use,
		Short: s.Summary(),
		Long:  s.Description,
		Args:  usageArgs(cobra.ExactArgs(len(positionals))),
		RunE: func(c *cobra.Command, args []string) error {
			values, err := Values(c, s, args)
			if err != nil {
				return err
			}
			return command.Invoke(c.Context(), values)
		},
	}
	c.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) < len(positionals) && len(positionals[len(args)].Choices) > 0 {
			return positionals[len(args)].Labels(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	}
	c.Flags().SortFlags = false
	if err := b.registerFlags(c, name, s); err != nil {
		return nil, err
	}
	addHelpFlag(c)
	c.SetHelpFunc(func(c *cobra.Command, _ []string) {
		b.leafHelp(c, s)
	})
	b.logger.Debug("registered command", "command", name, "params", len(s.Params))
	return c, nil
}

func (b *binder) registerFlags(c *cobra.Command, name string, s *clitypes.CommandSchema) error {
	owners := make(map[string]string)
	flags := c.Flags()
	for _, p := range s.Params {
		if p.Kind == clitypes.Positional {
			continue
		}
		flag := p.FlagName()
		if flag == helpFlag {
			return fmt.Errorf("%w: command %s: parameter %s uses the reserved --%s", ErrFlagConflict, name, p.Name, flag)
		}
		if other, taken := owners[flag]; taken {
			return fmt.Errorf("%w: command %s: parameters %s and %s both map to --%s", ErrFlagConflict, name, other, p.Name, flag)
		}
		owners[flag] = p.Name

		switch p.Kind {
		case clitypes.Flag:
			flags.Bool(flag, defaultValue(p).Bool(), p.Help)
		case clitypes.ValueOption:
			if p.Type.Kind() == reflect.String {
				flags.String(flag, defaultValue(p).String(), p.Help)
			} else {
				flags.Int64(flag, defaultValue(p).Int(), p.Help)
			}
		case clitypes.ChoiceOption:
			labels := p.Labels()
			flags.Var(newChoiceValue(labels, defaultLabel(s, p)), flag, p.Help)
			err := c.RegisterFlagCompletionFunc(flag, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return labels, cobra.ShellCompDirectiveNoFileComp
			})
			if err != nil {
				return fmt.Errorf("command %s: parameter %s: %w", name, p.Name, err)
			}
		}
		if p.Required {
			if err := c.MarkFlagRequired(flag); err != nil {
				return fmt.Errorf("command %s: parameter %s: %w", name, p.Name, err)
			}
		}
		b.logger.Debug("registered flag", "command", name, "param", p.Name, "kind", p.Kind)
	}
	return nil
}

// defaultValue returns the parameter default, or the zero value of its type
// when it has none.
func defaultValue(p clitypes.ParameterSpec) reflect.Value {
	if p.HasDefault && p.Default != nil {
		return reflect.ValueOf(p.Default)
	}
	return reflect.Zero(p.Type)
}

// defaultLabel returns the label of a choice parameter's default member.
func defaultLabel(s *clitypes.CommandSchema, p clitypes.ParameterSpec) string {
	if !p.HasDefault {
		return ""
	}
	if table, ok := s.Translations[p.Name]; ok {
		if label, ok := table.Label(p.Default); ok {
			return label
		}
	}
	return clitypes.EnumLabel(p.Default)
}

func addHelpFlag(c *cobra.Command) {
	if c.Flags().Lookup(helpFlag) == nil {
		c.Flags().BoolP(helpFlag, "h", false, "Show this message and exit.")
	}
}
