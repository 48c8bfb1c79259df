package schema

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"autocli/pkg/clitypes"
)

// Struct tags read by Define.
const (
	nameTag    = "cli"
	defaultTag = "default"
)

// structParam ties a Param to the struct field it fills.
type structParam struct {
	param Param
	index []int
}

// Define describes fn, whose parameters are the exported fields of the params
// struct T in declaration order.
//
// # Struct tags
//
//   - cli:"name": the parameter name. Defaults to the field name in snake case.
//     A leading underscore makes the parameter positional. cli:"-" skips the field.
//   - default:"value": the default, parsed according to the field type. Enum
//     fields take the member's label. Fields without the tag have no default.
//
// Embedded structs contribute their fields in place. When name is empty the Go
// function's own name is used.
func Define[T any](name, doc string, fn func(context.Context, T) error) (*Func, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidFunc)
	}
	if name == "" {
		name = FuncName(fn)
	}

	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s: params must be a struct, got %s", ErrInvalidFunc, name, structType)
	}

	fields, err := collectFields(structType, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFunc, name, err)
	}

	params := make([]Param, 0, len(fields))
	for _, field := range fields {
		params = append(params, field.param)
	}

	call := func(ctx context.Context, args map[string]any) error {
		var target T
		value := reflect.ValueOf(&target).Elem()
		for _, field := range fields {
			arg, ok := args[field.param.Name]
			if !ok {
				continue
			}
			if err := assign(value.FieldByIndex(field.index), arg); err != nil {
				return fmt.Errorf("parameter %s: %w", field.param.Name, err)
			}
		}
		return fn(ctx, target)
	}

	return &Func{Name: name, Doc: doc, Params: params, Call: call}, nil
}

// MustDefine is like Define but panics on error. It suits package-level command
// declarations where a failure is a programming error.
func MustDefine[T any](name, doc string, fn func(context.Context, T) error) *Func {
	f, err := Define(name, doc, fn)
	if err != nil {
		panic(fmt.Sprintf("schema.MustDefine(%q): %v", name, err))
	}
	return f
}

func collectFields(structType reflect.Type, prefix []int) ([]structParam, error) {
	var fields []structParam
	for i := range structType.NumField() {
		field := structType.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := collectFields(field.Type, index)
			if err != nil {
				return nil, fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			fields = append(fields, embedded...)
			continue
		}
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get(nameTag)
		if name == "-" {
			continue
		}
		if name == "" {
			name = snakeCase(field.Name)
		}

		param := Param{Name: name, Type: field.Type}
		if raw, ok := field.Tag.Lookup(defaultTag); ok {
			value, err := parseDefault(field.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: default %q: %w", field.Name, raw, err)
			}
			param.Default = value
			param.HasDefault = true
		}

		fields = append(fields, structParam{param: param, index: index})
	}
	return fields, nil
}

// parseDefault converts a default tag to a value of type t. Types the builder
// does not support keep the raw string so that Build can report them.
func parseDefault(t reflect.Type, raw string) (any, error) {
	if choices, ok := clitypes.EnumChoices(t); ok {
		for _, choice := range choices {
			if choice.Label == raw {
				return choice.Value, nil
			}
		}
		return nil, fmt.Errorf("%w %q", clitypes.ErrUnknownChoice, raw)
	}

	value := reflect.New(t).Elem()
	switch {
	case t.Kind() == reflect.String:
		value.SetString(raw)
	case t.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		value.SetBool(b)
	case isInt(t.Kind()):
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, t.Bits())
		if err != nil {
			return nil, err
		}
		value.SetInt(n)
	default:
		return raw, nil
	}
	return value.Interface(), nil
}

// assign stores arg in field, converting between integer widths.
func assign(field reflect.Value, arg any) error {
	v := reflect.ValueOf(arg)
	if !v.IsValid() {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	coerced, ok := coerce(v, field.Type())
	if !ok {
		return fmt.Errorf("cannot assign %s to %s", v.Type(), field.Type())
	}
	field.Set(coerced)
	return nil
}
