package clitypes

import (
	"fmt"
	"reflect"
	"strings"
)

// PositionalPrefix marks a parameter name as a positional argument.
const PositionalPrefix = "_"

// ParamKind describes how a parameter is exposed on the command line.
type ParamKind int

const (
	// Positional is supplied by position rather than by a named flag.
	Positional ParamKind = iota
	// Flag is a boolean switch that takes no value.
	Flag
	// ValueOption is a named option carrying a string or integer value.
	ValueOption
	// ChoiceOption is a named option restricted to the members of an enumeration.
	ChoiceOption
)

// String returns a human-readable representation of the parameter kind.
func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Flag:
		return "flag"
	case ValueOption:
		return "option"
	case ChoiceOption:
		return "choice"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// ParameterSpec describes one CLI-exposed parameter.
//
// For every non-positional parameter exactly one of Required and HasDefault is true.
// Choices is non-empty iff Kind is ChoiceOption or the parameter is a
// positional of enumeration type.
type ParameterSpec struct {
	Name       string       // Identifier, unique within a command
	Kind       ParamKind    // How the parameter is exposed
	Type       reflect.Type // Declared Go type of the source parameter
	Required   bool         // True iff the source parameter had no default
	Default    any          // Default value, meaningful only when HasDefault is set
	HasDefault bool         // Whether Default carries a value
	Help       string       // Help text scraped from the documentation comment
	Choices    []Choice     // Accepted values, enumeration types only
}

// IsPositionalName reports whether name carries the positional marker.
func IsPositionalName(name string) bool {
	return strings.HasPrefix(name, PositionalPrefix)
}

// FlagName returns the long flag spelling of the parameter, with underscores
// replaced by hyphens. The leading "--" is not included.
func (p ParameterSpec) FlagName() string {
	return strings.ReplaceAll(p.Name, "_", "-")
}

// DisplayName returns the name used in usage lines. Positional parameters lose
// their marker prefix and are upper-cased.
func (p ParameterSpec) DisplayName() string {
	if p.Kind == Positional {
		return strings.ToUpper(strings.TrimPrefix(p.Name, PositionalPrefix))
	}
	return "--" + p.FlagName()
}

// TypeName returns a short name for the declared type as shown in help output.
func (p ParameterSpec) TypeName() string {
	if len(p.Choices) > 0 {
		return strings.Join(p.Labels(), "|")
	}
	if p.Type == nil {
		return ""
	}
	switch p.Type.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	default:
		return p.Type.String()
	}
}

// Labels returns the wire labels of the parameter's choices in declaration order.
func (p ParameterSpec) Labels() []string {
	labels := make([]string, 0, len(p.Choices))
	for _, choice := range p.Choices {
		labels = append(labels, choice.Label)
	}
	return labels
}
