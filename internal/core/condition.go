package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Condition is a single parameter-level predicate attached to one method.
// Descriptor is the opaque identity fed to the hasher; two conditions with the
// same descriptor are treated as the same condition when keys are composed.
type Condition struct {
	Method     string
	Parameter  string
	Predicate  func(any) bool
	Descriptor string

	want    any
	hasWant bool
}

// Holds reports whether the condition passes for the argument its parameter
// names. Parameter names compare case-insensitively; a name that is not in
// params, or whose position has no argument, fails.
func (c Condition) Holds(params []string, args []any) bool {
	actual, ok := c.argument(params, args)
	if !ok || c.Predicate == nil {
		return false
	}

	return c.Predicate(actual)
}

func (c Condition) argument(params []string, args []any) (any, bool) {
	index := parameterIndex(params, c.Parameter)
	if index < 0 || index >= len(args) {
		return nil, false
	}

	return args[index], true
}

type conditionSet struct {
	key        string
	conditions []Condition
}

// matches is AND over every condition in the set.
func (s *conditionSet) matches(params []string, args []any) bool {
	for _, condition := range s.conditions {
		if !condition.Holds(params, args) {
			return false
		}
	}

	return true
}

func descriptors(conditions []Condition) []string {
	out := make([]string, 0, len(conditions))

	for _, condition := range conditions {
		out = append(out, condition.Descriptor)
	}

	return out
}

// funcIdentity names a predicate by its code pointer. Closures built from the
// same literal share an identity regardless of what they capture.
func funcIdentity(fn func(any) bool) string {
	if fn == nil {
		return "nil"
	}

	return fmt.Sprintf("%#x", reflect.ValueOf(fn).Pointer())
}

// isNil treats nil interfaces and nil pointers, maps, slices, channels and
// funcs alike.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

func parameterIndex(params []string, name string) int {
	for i, param := range params {
		if strings.EqualFold(param, name) {
			return i
		}
	}

	return -1
}
