package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"autocli/internal/logger"
	"autocli/pkg/clitypes"
	"autocli/pkg/docstring"

	"github.com/charmbracelet/log"
)

// Configuration errors reported by Build. They are fatal: a command whose schema
// cannot be derived is never registered.
var (
	// ErrUnsupportedType is returned for a parameter whose type has no CLI form.
	ErrUnsupportedType = errors.New("unsupported parameter type")
	// ErrPositionalDefault is returned for a positional parameter with a default.
	ErrPositionalDefault = errors.New("positional parameter cannot have a default")
	// ErrInvalidDefault is returned for a default that does not fit the parameter type.
	ErrInvalidDefault = errors.New("invalid default value")
	// ErrEmptyEnum is returned for an enumeration type without members.
	ErrEmptyEnum = errors.New("enumeration has no members")
	// ErrDuplicateName is returned when two parameters share a name.
	ErrDuplicateName = errors.New("duplicate parameter name")
)

// Builder derives command schemas. The zero value is not usable; use NewBuilder.
type Builder struct {
	logger *log.Logger
}

// NewBuilder creates a builder logging through a component logger.
func NewBuilder() *Builder {
	return &Builder{logger: logger.NewStyledLogger("Schema")}
}

// Build derives the command for fn with a default builder.
func Build(fn *Func) (*Command, error) {
	return NewBuilder().Build(fn)
}

// Build classifies every parameter of fn in declaration order, attaches help
// text from the best matching documentation dialect and returns the command.
func (b *Builder) Build(fn *Func) (*Command, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidFunc)
	}
	if fn.Name == "" {
		return nil, fmt.Errorf("%w: function has no name", ErrInvalidFunc)
	}
	if fn.Call == nil {
		return nil, fmt.Errorf("%w: %s: function has no body", ErrInvalidFunc, fn.Name)
	}

	names := fn.ParamNames()
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("function %s: %w %q", fn.Name, ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}

	var doc docstring.Doc
	if fn.Doc != "" {
		var dialect docstring.Dialect
		dialect, doc = docstring.Select(fn.Doc, names)
		b.logger.Debug("Selected documentation dialect", "command", fn.Name, "dialect", dialect,
			"matched", doc.MatchedArgCount(names))
	}
	help := doc.Help()

	schema := &clitypes.CommandSchema{
		Name:         fn.Name,
		Description:  doc.Description,
		Params:       make([]clitypes.ParameterSpec, 0, len(fn.Params)),
		Translations: make(map[string]clitypes.EnumTranslation),
	}

	for _, param := range fn.Params {
		spec, err := classify(param)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter %s: %w", fn.Name, param.Name, err)
		}
		spec.Help = help[param.Name]
		if len(spec.Choices) > 0 {
			schema.Translations[spec.Name] = clitypes.NewEnumTranslation(spec.Name, spec.Choices)
		}
		b.logger.Debug("Classified parameter", "command", fn.Name, "param", spec.Name,
			"kind", spec.Kind, "required", spec.Required)
		schema.Params = append(schema.Params, spec)
	}

	return &Command{schema: schema, call: fn.Call, mu: &sync.Mutex{}}, nil
}

// classify turns one formal parameter into a parameter spec without help text.
func classify(param Param) (clitypes.ParameterSpec, error) {
	spec := clitypes.ParameterSpec{Name: param.Name, Type: param.Type}
	t := param.Type
	if t == nil {
		return spec, fmt.Errorf("%w: no type", ErrUnsupportedType)
	}

	if clitypes.HasPointerMembers(t) {
		return spec, fmt.Errorf("%w %s: Members must have a value receiver", ErrUnsupportedType, t)
	}

	if clitypes.IsPositionalName(param.Name) {
		if param.HasDefault {
			return spec, ErrPositionalDefault
		}
		if choices, ok := clitypes.EnumChoices(t); ok {
			if len(choices) == 0 {
				return spec, fmt.Errorf("%w: %s", ErrEmptyEnum, t)
			}
			spec.Choices = choices
		} else if t.Kind() != reflect.String && !isInt(t.Kind()) {
			return spec, fmt.Errorf("%w %s for a positional argument", ErrUnsupportedType, t)
		}
		spec.Kind = clitypes.Positional
		spec.Required = true
		return spec, nil
	}

	// Enumerations come first: their underlying kind is usually string or int.
	if choices, ok := clitypes.EnumChoices(t); ok {
		if len(choices) == 0 {
			return spec, fmt.Errorf("%w: %s", ErrEmptyEnum, t)
		}
		spec.Kind = clitypes.ChoiceOption
		spec.Choices = choices
		if param.HasDefault {
			member, err := enumDefault(param.Default, t, choices)
			if err != nil {
				return spec, err
			}
			spec.Default = member
			spec.HasDefault = true
		} else {
			spec.Required = true
		}
		return spec, nil
	}

	switch {
	case t.Kind() == reflect.Bool:
		spec.Kind = clitypes.Flag
		spec.HasDefault = true
		spec.Default = reflect.Zero(t).Interface()
		if param.HasDefault {
			value, err := scalarDefault(param.Default, t)
			if err != nil {
				return spec, err
			}
			spec.Default = value
		}
		return spec, nil

	case t.Kind() == reflect.String || isInt(t.Kind()):
		spec.Kind = clitypes.ValueOption
		if param.HasDefault {
			value, err := scalarDefault(param.Default, t)
			if err != nil {
				return spec, err
			}
			spec.Default = value
			spec.HasDefault = true
		} else {
			spec.Required = true
		}
		return spec, nil
	}

	return spec, fmt.Errorf("%w %s", ErrUnsupportedType, t)
}

func scalarDefault(value any, t reflect.Type) (any, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil for %s", ErrInvalidDefault, t)
	}
	coerced, ok := coerce(v, t)
	if !ok {
		return nil, fmt.Errorf("%w: %v (%s) for %s", ErrInvalidDefault, value, v.Type(), t)
	}
	return coerced.Interface(), nil
}

// enumDefault accepts either a member of the enumeration or one of its labels.
func enumDefault(value any, t reflect.Type, choices []clitypes.Choice) (any, error) {
	if label, ok := value.(string); ok {
		for _, choice := range choices {
			if choice.Label == label {
				return choice.Value, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a label of %s", ErrInvalidDefault, label, t)
	}
	for _, choice := range choices {
		if reflect.DeepEqual(choice.Value, value) {
			return choice.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: %v is not a member of %s", ErrInvalidDefault, value, t)
}
