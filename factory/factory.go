// Package factory constructs values whose dependencies are stand-ins.
//
// A Config names how to construct the target and which of its fields get a
// freshly seeded mock. Nothing is discovered from tags or markers.
package factory

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/toejough/standin/internal/core"
)

// Exported variables.
var (
	ErrFieldType        = errors.New("field cannot hold a mock")
	ErrNoSuchField      = errors.New("no such field")
	ErrNotStructPointer = errors.New("target is not a pointer to a struct")
)

// Config describes one target type.
type Config[T any] struct {
	// Construct builds the target. Nil means a zero value allocated with new.
	Construct func() T
	// Nested lists the fields that receive a mock.
	Nested []Nested
}

// Nested describes one field that receives a mock. The mock wraps Real when
// it is set, otherwise Type, otherwise nothing.
type Nested struct {
	Field   string
	Real    any
	Type    reflect.Type
	Options []core.Option
}

// Build constructs a T and assigns a new mock to every nested field.
// T must be a pointer to a struct, and each field must be exported and
// able to hold a *core.Mock, such as a field of type standin.Object.
func Build[T any](cfg Config[T]) (T, error) {
	var zero T

	target, err := construct(cfg.Construct)
	if err != nil {
		return zero, err
	}

	value := reflect.ValueOf(target)
	if !value.IsValid() || value.Kind() != reflect.Pointer || value.IsNil() ||
		value.Elem().Kind() != reflect.Struct {
		return zero, fmt.Errorf("%w: %T", ErrNotStructPointer, target)
	}

	for _, nested := range cfg.Nested {
		err := assign(value.Elem(), nested)
		if err != nil {
			return zero, err
		}
	}

	return target, nil
}

// Mocks returns the mock assigned to every nested field of target, by field name.
// It is the read side of Build, for tests that configure nested behavior.
func Mocks[T any](target T, cfg Config[T]) (map[string]*core.Mock, error) {
	value := reflect.ValueOf(target)
	if !value.IsValid() || value.Kind() != reflect.Pointer || value.IsNil() ||
		value.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotStructPointer, target)
	}

	mocks := make(map[string]*core.Mock, len(cfg.Nested))

	for _, nested := range cfg.Nested {
		field := value.Elem().FieldByName(nested.Field)
		if !field.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchField, nested.Field)
		}

		if !field.CanInterface() {
			return nil, fmt.Errorf("%w: %s is unexported", ErrFieldType, nested.Field)
		}

		mock, ok := field.Interface().(*core.Mock)
		if !ok {
			return nil, fmt.Errorf("%w: %s holds %T", ErrFieldType, nested.Field, field.Interface())
		}

		mocks[nested.Field] = mock
	}

	return mocks, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type constant
	mockType = reflect.TypeFor[*core.Mock]()
)

func assign(target reflect.Value, nested Nested) error {
	field := target.FieldByName(nested.Field)
	if !field.IsValid() {
		return fmt.Errorf("%w: %s on %s", ErrNoSuchField, nested.Field, target.Type())
	}

	if !field.CanSet() || !mockType.AssignableTo(field.Type()) {
		return fmt.Errorf("%w: %s is %s", ErrFieldType, nested.Field, field.Type())
	}

	field.Set(reflect.ValueOf(newMock(nested)))

	return nil
}

func construct[T any](build func() T) (T, error) {
	if build != nil {
		return build(), nil
	}

	var zero T

	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Pointer {
		return zero, fmt.Errorf("%w: %s", ErrNotStructPointer, typ)
	}

	target, ok := reflect.New(typ.Elem()).Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotStructPointer, typ)
	}

	return target, nil
}

func newMock(nested Nested) *core.Mock {
	switch {
	case nested.Real != nil:
		return core.New(nested.Real, nested.Options...)
	case nested.Type != nil:
		return core.NewOfType(nested.Type, nested.Options...)
	default:
		return core.New(nil, nested.Options...)
	}
}
