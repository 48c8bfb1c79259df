package schema

import "reflect"

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// coerce converts v to type t when both sit in the same kind family (string,
// bool or signed integer) and the value fits. Identical and assignable types
// pass through unchanged.
func coerce(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if v.Type() == t {
		return v, true
	}
	if v.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(v)
		return out, true
	}

	switch {
	case isInt(v.Kind()) && isInt(t.Kind()):
		if reflect.Zero(t).OverflowInt(v.Int()) {
			return reflect.Value{}, false
		}
		return v.Convert(t), true
	case v.Kind() == reflect.String && t.Kind() == reflect.String:
		return v.Convert(t), true
	case v.Kind() == reflect.Bool && t.Kind() == reflect.Bool:
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}
