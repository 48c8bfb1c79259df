package clitypes

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnknownChoice is returned when a label was never advertised as a choice.
// At invocation time this means the command-line collaborator accepted a value
// outside the schema, which is an internal consistency fault.
var ErrUnknownChoice = errors.New("unknown choice")

// Enum is implemented by types whose values form a closed set.
// Members must return every value of the type in declaration order and must be
// callable on the zero value.
type Enum interface {
	Members() []any
}

// Choice pairs the label a user types with the enumeration member it stands for.
type Choice struct {
	Label string
	Value any
}

var enumType = reflect.TypeFor[Enum]()

// IsEnumType reports whether t implements Enum.
func IsEnumType(t reflect.Type) bool {
	return t != nil && t.Implements(enumType)
}

// HasPointerMembers reports whether only *t implements Enum. Such a type is
// not usable as an enumeration: Members is called on the zero value of t.
func HasPointerMembers(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Pointer && !t.Implements(enumType) &&
		reflect.PointerTo(t).Implements(enumType)
}

// EnumChoices lists the choices of enumeration type t in declaration order.
// It returns false when t does not implement Enum.
func EnumChoices(t reflect.Type) ([]Choice, bool) {
	if !IsEnumType(t) {
		return nil, false
	}
	enum, ok := reflect.Zero(t).Interface().(Enum)
	if !ok {
		return nil, false
	}
	members := enum.Members()
	choices := make([]Choice, 0, len(members))
	for _, member := range members {
		choices = append(choices, Choice{Label: EnumLabel(member), Value: member})
	}
	return choices, true
}

// EnumLabel returns the textual value associated with an enumeration member.
// Stringers use String; string-kinded members use their value.
func EnumLabel(member any) string {
	if stringer, ok := member.(fmt.Stringer); ok {
		return stringer.String()
	}
	v := reflect.ValueOf(member)
	if v.IsValid() && v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(member)
}

// EnumTranslation maps the wire labels of one choice parameter to its members.
// It is built once at schema construction and only read afterwards.
type EnumTranslation struct {
	param   string
	labels  []string
	byLabel map[string]any
}

// NewEnumTranslation builds the translation table for param from its choices.
func NewEnumTranslation(param string, choices []Choice) EnumTranslation {
	t := EnumTranslation{
		param:   param,
		labels:  make([]string, 0, len(choices)),
		byLabel: make(map[string]any, len(choices)),
	}
	for _, choice := range choices {
		t.labels = append(t.labels, choice.Label)
		t.byLabel[choice.Label] = choice.Value
	}
	return t
}

// Param returns the name of the parameter the table belongs to.
func (t EnumTranslation) Param() string {
	return t.param
}

// Labels returns the advertised labels in declaration order.
func (t EnumTranslation) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Translate returns the member registered under label.
func (t EnumTranslation) Translate(label string) (any, error) {
	value, ok := t.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("parameter %s: %w %q (accepted: %v)", t.param, ErrUnknownChoice, label, t.labels)
	}
	return value, nil
}

// Label returns the label registered for member, the reverse direction of Translate.
func (t EnumTranslation) Label(member any) (string, bool) {
	for _, label := range t.labels {
		if reflect.DeepEqual(t.byLabel[label], member) {
			return label, true
		}
	}
	return "", false
}
