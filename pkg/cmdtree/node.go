// Package cmdtree assembles derived commands into a tree of named subcommands.
//
// Assemble accepts a single function, an ordered list of functions, or an
// ordered mapping from names to functions and nested lists or mappings. The
// result is a Node tree that is built once and handed to the command-line
// collaborator without further modification.
package cmdtree

import (
	"fmt"

	"autocli/pkg/schema"
)

// Kind tags a Node as a leaf command or a group of subcommands.
type Kind int

const (
	// Leaf wraps one invokable command.
	Leaf Kind = iota
	// Group holds ordered, uniquely named children.
	Group
)

// String returns a human-readable representation of the node kind.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Group:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one node of a command tree.
type Node struct {
	Name     string
	Kind     Kind
	Command  *schema.Command // Leaf only
	Children []*Node         // Group only, in registration order
}

// IsLeaf reports whether the node wraps a command.
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// Child returns the direct child called name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, child := range n.Children {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// ChildNames returns the names of the direct children in order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		names = append(names, child.Name)
	}
	return names
}

// Lookup follows path from this node, one child name per element.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	current := n
	for _, name := range path {
		next, ok := current.Child(name)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Walk visits the node and its descendants depth-first in child order. path
// holds the names from the root's children down to the visited node; it is
// empty for the root. Returning an error stops the walk.
func (n *Node) Walk(fn func(path []string, node *Node) error) error {
	return n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func(path []string, node *Node) error) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for _, child := range n.Children {
		childPath := append(append([]string(nil), path...), child.Name)
		if err := child.walk(childPath, fn); err != nil {
			return err
		}
	}
	return nil
}
