package di

import (
	"context"
	"reflect"
)

// These are commonly used types.
var (
	typeError       = reflect.TypeFor[error]()
	typeContext     = reflect.TypeFor[context.Context]()
	typeCradle      = reflect.TypeFor[Cradle]()
	typeConstructor = reflect.TypeFor[Constructor]()
)

func safeReflectValue(t reflect.Type, val any) reflect.Value {
	if val == nil {
		return reflect.Zero(t)
	}

	return reflect.ValueOf(val)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// identity returns a comparable key for the underlying value, or false
// when the value cannot be used as a map key.
func identity(v any) (any, bool) {
	if isNil(v) {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if !rv.Comparable() {
		return nil, false
	}
	return v, true
}
