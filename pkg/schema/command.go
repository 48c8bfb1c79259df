package schema

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"autocli/pkg/clitypes"
)

// ErrMissingValue is returned by Invoke when a required parameter has no value.
var ErrMissingValue = errors.New("missing value for required parameter")

// Command is an invokable leaf: a derived schema and the function behind it.
type Command struct {
	schema *clitypes.CommandSchema
	call   CallFunc
	// Shared by renamed copies so one function never runs twice at once.
	mu *sync.Mutex
}

// Schema returns the command's schema. Callers must not modify it.
func (c *Command) Schema() *clitypes.CommandSchema {
	return c.schema
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.schema.Name
}

// Rename returns the same command under a different name. The function and its
// parameters are unchanged.
func (c *Command) Rename(name string) *Command {
	return &Command{schema: c.schema.WithName(name), call: c.call, mu: c.mu}
}

// Invoke runs the command once with values keyed by parameter name.
//
// Choice values arrive as wire labels and are translated to enumeration members
// before the call; a label outside the advertised choices fails with
// clitypes.ErrUnknownChoice. Missing parameters with a default receive it.
// Invocations of the same command are serialized and run to completion on the
// calling goroutine.
func (c *Command) Invoke(ctx context.Context, values map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	args, err := c.resolve(values)
	if err != nil {
		return fmt.Errorf("command %s: %w", c.schema.Name, err)
	}
	return c.call(ctx, args)
}

func (c *Command) resolve(values map[string]any) (map[string]any, error) {
	for name := range values {
		if _, ok := c.schema.Param(name); !ok {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
	}

	args := make(map[string]any, len(c.schema.Params))
	for _, p := range c.schema.Params {
		value, ok := values[p.Name]
		if !ok {
			if !p.HasDefault {
				return nil, fmt.Errorf("%w %s", ErrMissingValue, p.Name)
			}
			args[p.Name] = p.Default
			continue
		}

		if table, isChoice := c.schema.Translations[p.Name]; isChoice {
			member, err := translate(table, value)
			if err != nil {
				return nil, err
			}
			value = member
		}
		args[p.Name] = value
	}
	return args, nil
}

// translate maps a wire label to its member. Values that already are members
// pass through.
func translate(table clitypes.EnumTranslation, value any) (any, error) {
	if label, ok := value.(string); ok {
		if member, err := table.Translate(label); err == nil {
			return member, nil
		}
	}
	if _, ok := table.Label(value); ok {
		return value, nil
	}
	return table.Translate(fmt.Sprint(value))
}
