package cmdtree

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"autocli/internal/logger"
	"autocli/pkg/schema"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidInput is returned for an input that is neither a function, a
	// list of functions nor a mapping.
	ErrInvalidInput = errors.New("invalid command tree input")
	// ErrDuplicateName is returned when two children of one group share a name.
	ErrDuplicateName = errors.New("duplicate command name")
)

// Entry is one named value of a Map.
type Entry struct {
	Name  string
	Value any
}

// Map is an ordered mapping from subcommand names to functions, lists or
// nested mappings. Children are created in entry order.
type Map []Entry

// Assembler turns raw input into a command tree.
type Assembler struct {
	builder *schema.Builder
	logger  *log.Logger
}

// NewAssembler creates an assembler using the given schema builder. A nil
// builder gets a default one.
func NewAssembler(builder *schema.Builder) *Assembler {
	if builder == nil {
		builder = schema.NewBuilder()
	}
	return &Assembler{builder: builder, logger: logger.NewStyledLogger("Tree")}
}

// Assemble builds a tree with a default assembler.
func Assemble(input any) (*Node, error) {
	return NewAssembler(nil).Assemble(input)
}

// Assemble builds the command tree for input:
//
//   - a *schema.Func, schema.Func or *schema.Command becomes a leaf named after the function,
//   - a []*schema.Func, []*schema.Command or []any of those becomes a group whose
//     children are named after their functions, in list order,
//   - a Map becomes a group whose children are named by the keys, in entry order;
//     functions become renamed leaves and lists or maps nested groups,
//   - a map[string]any is treated as a Map with keys in lexical order.
//
// The root group has an empty name.
func (a *Assembler) Assemble(input any) (*Node, error) {
	cmd, isFunc, err := a.command(input)
	if err != nil {
		return nil, err
	}
	if isFunc {
		a.logger.Debug("Assembled single command", "command", cmd.Name())
		return &Node{Name: cmd.Name(), Kind: Leaf, Command: cmd}, nil
	}
	return a.group(nil, input)
}

// command builds input when it is function-like.
func (a *Assembler) command(input any) (*schema.Command, bool, error) {
	var (
		cmd *schema.Command
		err error
	)
	switch v := input.(type) {
	case *schema.Command:
		if v == nil {
			return nil, false, nil
		}
		return v, true, nil
	case *schema.Func:
		if v == nil {
			return nil, false, nil
		}
		cmd, err = a.builder.Build(v)
	case schema.Func:
		cmd, err = a.builder.Build(&v)
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return cmd, true, nil
}

func (a *Assembler) group(path []string, input any) (*Node, error) {
	node := &Node{Name: lastName(path), Kind: Group}

	switch v := input.(type) {
	case []*schema.Func:
		items := make([]any, len(v))
		for i, f := range v {
			items[i] = f
		}
		return node, a.addList(node, path, items)
	case []*schema.Command:
		items := make([]any, len(v))
		for i, c := range v {
			items[i] = c
		}
		return node, a.addList(node, path, items)
	case []any:
		return node, a.addList(node, path, v)
	case Map:
		return node, a.addMap(node, path, v)
	case []Entry:
		return node, a.addMap(node, path, Map(v))
	case map[string]any:
		return node, a.addMap(node, path, sortedMap(v))
	default:
		return nil, fmt.Errorf("%w at %s: %T is neither a function, a list nor a mapping",
			ErrInvalidInput, describePath(path), input)
	}
}

// addList adds list items as leaves named after their own functions.
func (a *Assembler) addList(node *Node, path []string, items []any) error {
	for i, item := range items {
		cmd, isFunc, err := a.command(item)
		if err != nil {
			return err
		}
		if !isFunc {
			return fmt.Errorf("%w at %s: list element %d is %T, not a function",
				ErrInvalidInput, describePath(path), i, item)
		}
		if err := a.add(node, path, &Node{Name: cmd.Name(), Kind: Leaf, Command: cmd}); err != nil {
			return err
		}
	}
	return nil
}

// addMap adds entries under their keys, renaming functions and recursing into
// nested lists and mappings.
func (a *Assembler) addMap(node *Node, path []string, entries Map) error {
	for _, entry := range entries {
		if entry.Name == "" {
			return fmt.Errorf("%w at %s: empty command name", ErrInvalidInput, describePath(path))
		}

		cmd, isFunc, err := a.command(entry.Value)
		if err != nil {
			return err
		}

		var child *Node
		if isFunc {
			child = &Node{Name: entry.Name, Kind: Leaf, Command: cmd.Rename(entry.Name)}
		} else {
			childPath := append(append([]string(nil), path...), entry.Name)
			child, err = a.group(childPath, entry.Value)
			if err != nil {
				return err
			}
		}
		if err := a.add(node, path, child); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) add(node *Node, path []string, child *Node) error {
	if _, exists := node.Child(child.Name); exists {
		return fmt.Errorf("%w %q in %s", ErrDuplicateName, child.Name, describePath(path))
	}
	a.logger.Debug("Assembled node", "command", strings.Join(append(append([]string(nil), path...), child.Name), " "),
		"kind", child.Kind)
	node.Children = append(node.Children, child)
	return nil
}

func sortedMap(m map[string]any) Map {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make(Map, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Value: m[name]})
	}
	return entries
}

func lastName(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func describePath(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return strings.Join(path, " ")
}
