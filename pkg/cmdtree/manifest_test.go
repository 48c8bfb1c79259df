package cmdtree

import (
	"context"
	"encoding/json"
	"testing"

	"autocli/pkg/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stage string

func (stage) Members() []any { return []any{stage("dev"), stage("prod")} }

func manifestTree(t *testing.T) *Node {
	t.Helper()
	deploy := &schema.Func{
		Name: "deploy",
		Doc:  "Deploy the service.\n\nArgs:\n    _target: What to deploy.\n    stage: Where to deploy.\n",
		Params: []schema.Param{
			schema.Required[string]("_target"),
			schema.Optional("stage", stage("prod")),
			schema.Optional("dry_run", false),
		},
		Call: func(context.Context, map[string]any) error { return nil },
	}
	node, err := Assemble(Map{{Name: "ship", Value: deploy}})
	require.NoError(t, err)
	return node
}

func TestDescribe(t *testing.T) {
	m := Describe(manifestTree(t))

	require.Len(t, m.Commands, 1)
	ship := m.Commands[0]
	assert.Equal(t, "ship", ship.Name)
	assert.Equal(t, "Deploy the service.", ship.Description)
	require.Len(t, ship.Params, 3)

	assert.Equal(t, ParamManifest{
		Name: "_target", Kind: "positional", Type: "string", Required: true, Help: "What to deploy.",
	}, ship.Params[0])
	assert.Equal(t, ParamManifest{
		Name: "stage", Kind: "choice", Type: "dev|prod", Flag: "--stage", Default: "prod",
		Help: "Where to deploy.", Choices: []string{"dev", "prod"},
	}, ship.Params[1])
	assert.Equal(t, "--dry-run", ship.Params[2].Flag)
	assert.Equal(t, false, ship.Params[2].Default)
}

func TestManifest_Encodings(t *testing.T) {
	m := Describe(manifestTree(t))

	out, err := m.YAML()
	require.NoError(t, err)
	var fromYAML Manifest
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, "ship", fromYAML.Commands[0].Name)
	assert.Contains(t, string(out), "choices:")

	out, err = m.JSON()
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(out, &fromJSON))
	assert.Contains(t, fromJSON, "commands")
}
