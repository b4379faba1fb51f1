// Package value provides checks on arbitrary values such as nil-ness and
// emptiness, independently of their concrete type.
package value

import (
	"reflect"
	"strings"
)

// IsNull checks whether a value is nil, either as a plain nil interface or
// as a typed nil pointer, slice, map, channel or function.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	objValue := reflect.ValueOf(v)
	switch objValue.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return objValue.IsNil()
	default:
		return false
	}
}

// IsEmpty checks whether a value is empty i.e. "", nil, 0, [], {}, false, etc.
// A string is considered empty if it is "" or if it only contains whitespaces.
func IsEmpty(v any) bool {
	if IsNull(v) {
		return true
	}
	if valueStr, ok := v.(string); ok {
		return len(strings.TrimSpace(valueStr)) == 0
	}
	if valueBool, ok := v.(bool); ok {
		return !valueBool
	}
	objValue := reflect.ValueOf(v)
	switch objValue.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice:
		return objValue.Len() == 0
	case reflect.Ptr:
		return IsEmpty(objValue.Elem().Interface())
	default:
		zero := reflect.Zero(objValue.Type())
		return reflect.DeepEqual(v, zero.Interface())
	}
}
