// Package convert turns loosely typed values into concrete Go types without
// panicking. It backs the typed accessors on mocks, whose results are any.
package convert

import (
	"reflect"

	"github.com/spf13/cast"
)

// To converts v to a T, returning def when no conversion applies.
func To[T any](v any, def T) T {
	converted, ok := Try[T](v)
	if !ok {
		return def
	}

	return converted
}

// Try converts v to a T.
// A nil v never converts. Values that already are a T are returned as-is.
// Scalar targets (bool, integers, floats, strings, named types over them) go
// through cast, so "0x1F" parses as 31 and floats truncate into integers;
// results that overflow a narrow target fail. Anything else falls back to
// reflect conversion between compatible kinds.
func Try[T any](v any) (T, bool) {
	var zero T

	if v == nil {
		return zero, false
	}

	if typed, ok := v.(T); ok {
		return typed, true
	}

	target := reflect.TypeFor[T]()

	var (
		out reflect.Value
		ok  bool
	)

	if scalar(target.Kind()) {
		out, ok = castScalar(unnamed(v), target)
	} else {
		out, ok = convertValue(reflect.ValueOf(v), target)
	}

	if !ok {
		return zero, false
	}

	typed, ok := out.Interface().(T)

	return typed, ok
}

//nolint:cyclop // Kind dispatch
func castScalar(v any, target reflect.Type) (reflect.Value, bool) {
	out := reflect.New(target).Elem()

	switch target.Kind() {
	case reflect.Bool:
		parsed, err := cast.ToBoolE(v)
		if err != nil {
			return reflect.Value{}, false
		}

		out.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := cast.ToInt64E(v)
		if err != nil || out.OverflowInt(parsed) {
			return reflect.Value{}, false
		}

		out.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		parsed, err := cast.ToUint64E(v)
		if err != nil || out.OverflowUint(parsed) {
			return reflect.Value{}, false
		}

		out.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := cast.ToFloat64E(v)
		if err != nil || out.OverflowFloat(parsed) {
			return reflect.Value{}, false
		}

		out.SetFloat(parsed)
	case reflect.String:
		parsed, err := cast.ToStringE(v)
		if err != nil {
			return reflect.Value{}, false
		}

		out.SetString(parsed)
	default:
		return reflect.Value{}, false
	}

	return out, true
}

// convertValue covers the composite targets cast does not, such as a string
// into []byte. Numeric and non-numeric kinds never mix.
func convertValue(source reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if !source.Type().ConvertibleTo(target) {
		return reflect.Value{}, false
	}

	if numeric(source.Kind()) != numeric(target.Kind()) {
		return reflect.Value{}, false
	}

	return source.Convert(target), true
}

func numeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func scalar(kind reflect.Kind) bool {
	return kind == reflect.Bool || kind == reflect.String || numeric(kind)
}

// unnamed strips a named scalar type down to its predeclared counterpart,
// since cast only switches on predeclared types.
func unnamed(v any) any {
	value := reflect.ValueOf(v)

	switch kind := value.Kind(); {
	case kind == reflect.Bool:
		return value.Bool()
	case kind == reflect.String:
		return value.String()
	case kind >= reflect.Int && kind <= reflect.Int64:
		return value.Int()
	case kind >= reflect.Uint && kind <= reflect.Uintptr:
		return value.Uint()
	case kind == reflect.Float32 || kind == reflect.Float64:
		return value.Float()
	default:
		return v
	}
}
