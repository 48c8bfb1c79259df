// Package schema derives command schemas from described functions.
//
// A Func describes a callable the way Go can see it at runtime: a name, the raw
// documentation comment, and the formal parameters in declaration order. Build
// classifies every parameter into a CLI parameter kind, merges in help text from
// the best matching documentation dialect, and returns a Command that pairs the
// immutable schema with the function it invokes.
//
// Define produces a Func from a function taking a params struct, so that the
// struct's fields become the command's parameters:
//
//	type deployParams struct {
//		Target  string `cli:"_target"`
//		Env     Env
//		Verbose bool `default:"false"`
//	}
//
//	fn, err := schema.Define("deploy", deployDoc, func(ctx context.Context, p deployParams) error {
//		...
//	})
package schema

import (
	"context"
	"errors"
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// CallFunc invokes a described function with values keyed by parameter name.
type CallFunc func(ctx context.Context, args map[string]any) error

// Param is one formal parameter of a described function.
type Param struct {
	Name       string
	Type       reflect.Type
	Default    any
	HasDefault bool
}

// Func describes a callable function.
type Func struct {
	// Name is the function's own declared name, used as the command name.
	Name string

	// Doc is the raw documentation comment. It may be empty.
	Doc string

	// Params are the formal parameters in declaration order.
	Params []Param

	// Call runs the function with values keyed by parameter name.
	Call CallFunc
}

// ErrInvalidFunc is returned for a Func that cannot be described or built.
var ErrInvalidFunc = errors.New("invalid function")

// Required declares a parameter of type T without a default.
func Required[T any](name string) Param {
	return Param{Name: name, Type: reflect.TypeFor[T]()}
}

// Optional declares a parameter of type T defaulting to value.
func Optional[T any](name string, value T) Param {
	return Param{Name: name, Type: reflect.TypeFor[T](), Default: value, HasDefault: true}
}

// ParamNames returns the parameter names in declaration order.
func (f *Func) ParamNames() []string {
	names := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		names = append(names, p.Name)
	}
	return names
}

// FuncName returns a command name for a Go function value: the last segment of
// its runtime symbol in kebab case. Closures and method values yield names such as
// "func1" and are better named explicitly.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return kebabCase(name)
}

// snakeCase converts a Go identifier to snake_case, keeping acronyms together:
// "IsTest" becomes "is_test" and "URLPath" becomes "url_path".
func snakeCase(name string) string {
	return strings.Join(splitWords(name), "_")
}

// kebabCase converts a Go identifier to kebab-case.
func kebabCase(name string) string {
	return strings.Join(splitWords(name), "-")
}

func splitWords(name string) []string {
	runes := []rune(name)
	var (
		words   []string
		current []rune
	)
	for i, r := range runes {
		if r == '_' || r == '-' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(current))
				current = nil
			}
		}
		current = append(current, unicode.ToLower(r))
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}
