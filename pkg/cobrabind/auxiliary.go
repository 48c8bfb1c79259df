package cobrabind

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"autocli/pkg/cmdtree"

	"github.com/spf13/cobra"
)

const (
	showCompletionName = "show-completion"
	schemaName         = "schema"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

// addAuxiliary adds the show-completion and schema commands to a group root,
// unless the tree already has a command of the same name.
func (b *binder) addAuxiliary(root *cobra.Command, node *cmdtree.Node) {
	if _, taken := node.Child(showCompletionName); !taken {
		c := newShowCompletionCommand(root)
		c.SetHelpFunc(b.commandHelp)
		root.AddCommand(c)
	}
	if _, taken := node.Child(schemaName); !taken {
		c := newSchemaCommand(root, node)
		c.SetHelpFunc(b.commandHelp)
		root.AddCommand(c)
	}
}

func newShowCompletionCommand(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:       showCompletionName + " [SHELL]",
		Short:     "Print the shell completion script for this program.",
		Long:      "Print the shell completion script for this program. SHELL is one of bash, zsh, fish or powershell and defaults to the current shell.",
		Args:      usageArgs(cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs)),
		ValidArgs: shells,
		RunE: func(c *cobra.Command, args []string) error {
			shell := detectShell(os.Getenv("SHELL"))
			if len(args) == 1 {
				shell = args[0]
			}
			return writeCompletion(root, shell, c.OutOrStdout())
		},
	}
	addHelpFlag(c)
	return c
}

// detectShell maps a $SHELL path to a supported shell name, defaulting to bash.
func detectShell(path string) string {
	switch filepath.Base(path) {
	case "zsh":
		return "zsh"
	case "fish":
		return "fish"
	case "pwsh", "powershell", "pwsh.exe", "powershell.exe":
		return "powershell"
	default:
		return "bash"
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return &UsageError{Err: fmt.Errorf("unsupported shell %q", shell)}
	}
}

func newSchemaCommand(root *cobra.Command, node *cmdtree.Node) *cobra.Command {
	format := newChoiceValue([]string{"yaml", "json"}, "yaml")
	c := &cobra.Command{
		Use:    schemaName,
		Short:  "Print the command tree as YAML or JSON.",
		Hidden: true,
		Args:   usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			manifest := cmdtree.Describe(node)
			if manifest.Name == "" {
				manifest.Name = root.Name()
			}
			var (
				data []byte
				err  error
			)
			if format.String() == "json" {
				data, err = manifest.JSON()
				data = append(data, '\n')
			} else {
				data, err = manifest.YAML()
			}
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
	c.Flags().Var(format, "format", "Output format.")
	addHelpFlag(c)
	return c
}
