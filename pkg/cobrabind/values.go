package cobrabind

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"autocli/pkg/clitypes"

	"github.com/spf13/cobra"
)

// Values collects the parsed arguments and flags of c keyed by parameter name.
// Positional arguments and scalar options are converted to their declared Go
// types; enumeration values, positional or not, are delivered as labels for
// the command to translate.
// A required option that was not given is left out.
func Values(c *cobra.Command, s *clitypes.CommandSchema, args []string) (map[string]any, error) {
	positionals := s.Positionals()
	if len(args) != len(positionals) {
		return nil, &UsageError{Err: fmt.Errorf("accepts %d arg(s), received %d", len(positionals), len(args))}
	}

	values := make(map[string]any, len(s.Params))
	for i, p := range positionals {
		if len(p.Choices) > 0 {
			if !slices.Contains(p.Labels(), args[i]) {
				return nil, &UsageError{Err: fmt.Errorf("invalid value %q for %s: not one of %s",
					args[i], p.DisplayName(), strings.Join(p.Labels(), ", "))}
			}
			values[p.Name] = args[i]
			continue
		}
		v, err := parseArg(args[i], p.Type)
		if err != nil {
			return nil, &UsageError{Err: fmt.Errorf("invalid value %q for %s: %w", args[i], p.DisplayName(), err)}
		}
		values[p.Name] = v
	}

	flags := c.Flags()
	for _, p := range s.Params {
		if p.Kind == clitypes.Positional {
			continue
		}
		name := p.FlagName()
		if !p.HasDefault && !flags.Changed(name) {
			continue
		}
		switch p.Kind {
		case clitypes.Flag:
			v, err := flags.GetBool(name)
			if err != nil {
				return nil, err
			}
			values[p.Name] = reflect.ValueOf(v).Convert(p.Type).Interface()
		case clitypes.ValueOption:
			if p.Type.Kind() == reflect.String {
				v, err := flags.GetString(name)
				if err != nil {
					return nil, err
				}
				values[p.Name] = reflect.ValueOf(v).Convert(p.Type).Interface()
				continue
			}
			v, err := flags.GetInt64(name)
			if err != nil {
				return nil, err
			}
			if reflect.Zero(p.Type).OverflowInt(v) {
				return nil, &UsageError{Err: fmt.Errorf("invalid value %d for --%s: out of range for %s", v, name, p.Type)}
			}
			values[p.Name] = reflect.ValueOf(v).Convert(p.Type).Interface()
		case clitypes.ChoiceOption:
			values[p.Name] = flags.Lookup(name).Value.String()
		}
	}
	return values, nil
}

// parseArg converts a positional token to t, which has a string or signed
// integer kind.
func parseArg(arg string, t reflect.Type) (any, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(arg)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(arg, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		out.SetInt(n)
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
	return out.Interface(), nil
}

// choiceValue is a pflag.Value accepting one of a fixed set of labels.
type choiceValue struct {
	labels []string
	value  string
}

func newChoiceValue(labels []string, value string) *choiceValue {
	return &choiceValue{labels: labels, value: value}
}

func (v *choiceValue) String() string {
	return v.value
}

func (v *choiceValue) Set(s string) error {
	if !slices.Contains(v.labels, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(v.labels, ", "))
	}
	v.value = s
	return nil
}

func (v *choiceValue) Type() string {
	return strings.Join(v.labels, "|")
}
