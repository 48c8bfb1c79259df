package cmdtree

import (
	"encoding/json"

	"autocli/pkg/clitypes"

	"gopkg.in/yaml.v3"
)

// Manifest is a serializable description of a command tree.
type Manifest struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Params      []ParamManifest `yaml:"params,omitempty" json:"params,omitempty"`
	Commands    []Manifest      `yaml:"commands,omitempty" json:"commands,omitempty"`
}

// ParamManifest describes one parameter of a leaf command.
type ParamManifest struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     string   `yaml:"kind" json:"kind"`
	Type     string   `yaml:"type" json:"type"`
	Flag     string   `yaml:"flag,omitempty" json:"flag,omitempty"`
	Required bool     `yaml:"required" json:"required"`
	Default  any      `yaml:"default,omitempty" json:"default,omitempty"`
	Help     string   `yaml:"help,omitempty" json:"help,omitempty"`
	Choices  []string `yaml:"choices,omitempty" json:"choices,omitempty"`
}

// Describe builds the manifest of the tree rooted at node.
func Describe(node *Node) Manifest {
	m := Manifest{Name: node.Name}
	if node.IsLeaf() {
		s := node.Command.Schema()
		m.Description = s.Description
		for _, p := range s.Params {
			m.Params = append(m.Params, describeParam(s, p))
		}
		return m
	}
	for _, child := range node.Children {
		m.Commands = append(m.Commands, Describe(child))
	}
	return m
}

func describeParam(s *clitypes.CommandSchema, p clitypes.ParameterSpec) ParamManifest {
	pm := ParamManifest{
		Name:     p.Name,
		Kind:     p.Kind.String(),
		Type:     p.TypeName(),
		Required: p.Required,
		Help:     p.Help,
	}
	if p.Kind != clitypes.Positional {
		pm.Flag = "--" + p.FlagName()
	}
	if p.HasDefault {
		pm.Default = p.Default
		if table, ok := s.Translations[p.Name]; ok {
			if label, found := table.Label(p.Default); found {
				pm.Default = label
			}
		}
	}
	if len(p.Choices) > 0 {
		pm.Choices = p.Labels()
	}
	return pm
}

// YAML encodes the manifest as YAML.
func (m Manifest) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}

// JSON encodes the manifest as indented JSON.
func (m Manifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
