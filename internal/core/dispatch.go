package core

import (
	"fmt"
	"reflect"
	"slices"
)

// Invoke calls method name with args.
//
// Resolution: of the condition sets committed for name, those whose every
// condition holds are candidates; the one with the most conditions wins and
// ties go to the latest commit. The winner's composed key is used, or the
// bare name when nothing matches. Then, for that key:
//   - a fault returns its error (or panics) without running anything else;
//   - a registration returns its value and writes its output bindings
//     through the caller's pointer arguments;
//   - otherwise the real method is called.
//
// Method names are matched with their original casing, unlike Get and Set.
func (m *Mock) Invoke(name string, args ...any) (any, error) {
	key := m.resolve(name, args)

	m.history.record(Call{Method: name, Key: key, Args: slices.Clone(args)})

	if fault, ok := m.faults[key]; ok {
		m.trace("invoke %s: fault via %s", name, key)

		return nil, fault.raise()
	}

	if registration, ok := m.members[key]; ok && !registration.property {
		m.trace("invoke %s: registration %s", name, key)

		value := registration.Value()
		m.applyOutputs(name, registration.Outputs, args)

		return value, nil
	}

	m.trace("invoke %s: pass-through", name)

	return m.passThrough(name, args)
}

// Resolve reports the key a call with args would dispatch on.
func (m *Mock) Resolve(name string, args ...any) string {
	return m.resolve(name, args)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type constant
	errorType = reflect.TypeFor[error]()
)

type method struct {
	name     string
	fn       reflect.Value
	in       []reflect.Type
	out      []reflect.Type
	variadic bool
}

// arguments converts args to reflect values for a real call.
func (meth *method) arguments(args []any) ([]reflect.Value, error) {
	fixed := len(meth.in)
	if meth.variadic {
		fixed--
	}

	if len(args) < fixed || (!meth.variadic && len(args) != fixed) {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d",
			ErrBadArguments, meth.name, len(meth.in), len(args))
	}

	values := make([]reflect.Value, len(args))

	for i, arg := range args {
		want := meth.paramType(i)

		value, err := argumentValue(arg, want)
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d: %w", ErrBadArguments, meth.name, i+1, err)
		}

		values[i] = value
	}

	return values, nil
}

func (meth *method) paramType(index int) reflect.Type {
	last := len(meth.in) - 1
	if meth.variadic && index >= last {
		return meth.in[last].Elem()
	}

	return meth.in[index]
}

// results are the declared results without a trailing error.
func (meth *method) results() []reflect.Type {
	if len(meth.out) > 0 && meth.out[len(meth.out)-1] == errorType {
		return meth.out[:len(meth.out)-1]
	}

	return meth.out
}

func (m *Mock) applyOutputs(name string, outputs map[string]any, args []any) {
	meth, ok := m.methods[name]
	if !ok || len(outputs) == 0 {
		return
	}

	params := m.paramNames(name)

	for i, typ := range meth.in {
		if typ.Kind() != reflect.Pointer || i >= len(args) || i >= len(params) {
			continue
		}

		bound, ok := outputs[params[i]]
		if !ok {
			continue
		}

		if !writeThrough(args[i], bound) {
			m.trace("invoke %s: output %s not assignable from %T", name, params[i], bound)
		}
	}
}

func (m *Mock) passThrough(name string, args []any) (any, error) {
	meth, ok := m.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchMember, name)
	}

	if !meth.fn.IsValid() {
		return nil, fmt.Errorf("%w: %s has no real value to call", ErrNoSuchMember, name)
	}

	values, err := meth.arguments(args)
	if err != nil {
		return nil, err
	}

	return collapse(meth.fn.Call(values))
}

func (m *Mock) resolve(name string, args []any) string {
	sets := m.conditions[name]
	if len(sets) == 0 {
		return name
	}

	params := m.paramNames(name)

	var best *conditionSet

	for _, set := range sets {
		if !set.matches(params, args) {
			continue
		}

		if best == nil || len(set.conditions) >= len(best.conditions) {
			best = set
		}
	}

	if best == nil {
		return name
	}

	return best.key
}

func argumentValue(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
			reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil is not a %s", want)
		}
	}

	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", value.Type(), want)
	}

	return value, nil
}

// collapse folds real results into Invoke's shape: a trailing error becomes
// the error, and the rest become nil, the single value, or a []any.
func collapse(results []reflect.Value) (any, error) {
	var err error

	if n := len(results); n > 0 && results[n-1].Type() == errorType {
		if last := results[n-1]; !last.IsNil() {
			err, _ = last.Interface().(error)
		}

		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return nil, err
	case 1:
		return results[0].Interface(), err
	default:
		values := make([]any, len(results))
		for i, result := range results {
			values[i] = result.Interface()
		}

		return values, err
	}
}

func discover(typ reflect.Type, value reflect.Value) map[string]*method {
	methods := make(map[string]*method)
	if typ == nil {
		return methods
	}

	offset := 1
	if typ.Kind() == reflect.Interface {
		offset = 0
	}

	for i := range typ.NumMethod() {
		declared := typ.Method(i)
		if !declared.IsExported() {
			continue
		}

		meth := &method{
			name:     declared.Name,
			variadic: declared.Type.IsVariadic(),
		}

		for j := offset; j < declared.Type.NumIn(); j++ {
			meth.in = append(meth.in, declared.Type.In(j))
		}

		for j := range declared.Type.NumOut() {
			meth.out = append(meth.out, declared.Type.Out(j))
		}

		if value.IsValid() && typ.Kind() != reflect.Interface {
			meth.fn = value.Method(i)
		}

		methods[declared.Name] = meth
	}

	return methods
}

// writeThrough stores bound into the pointer target. Values that are neither
// assignable nor convertible to the pointee leave the target untouched.
func writeThrough(target, bound any) bool {
	pointer := reflect.ValueOf(target)
	if !pointer.IsValid() || pointer.Kind() != reflect.Pointer || pointer.IsNil() {
		return false
	}

	elem := pointer.Elem()

	value := reflect.ValueOf(bound)
	if !value.IsValid() {
		elem.Set(reflect.Zero(elem.Type()))

		return true
	}

	switch {
	case value.Type().AssignableTo(elem.Type()):
		elem.Set(value)
	case elem.Kind() != reflect.String && value.Type().ConvertibleTo(elem.Type()):
		elem.Set(value.Convert(elem.Type()))
	default:
		return false
	}

	return true
}
