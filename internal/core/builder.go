package core

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/toejough/standin/match"
)

// Builder accumulates one method's override: conditions on its parameters,
// output bindings, and finally a return value or a fault.
//
// Nothing reaches the mock until a terminal call (Returns, ReturnsNil, Fails,
// Panics). The first terminal call commits; later ones are ignored.
type Builder struct {
	method     string
	conditions []Condition
	outputs    map[string]any
	onCommit   func(Commit)
	committed  bool
}

// NewBuilder starts a builder for method. onCommit is called exactly once, by
// the first terminal call.
func NewBuilder(method string, onCommit func(Commit)) *Builder {
	return &Builder{
		method:   method,
		outputs:  make(map[string]any),
		onCommit: onCommit,
	}
}

// Fails commits a fault: matching calls return err instead of a value.
// Output bindings gathered so far are dropped. A nil err is replaced with
// ErrInducedFault so the call still fails.
func (b *Builder) Fails(err error) {
	if err == nil {
		err = ErrInducedFault
	}

	b.commit(Commit{
		Method:     b.method,
		Conditions: slices.Clone(b.conditions),
		Fault:      &Fault{Err: err},
	})
}

// IsEqualTo requires the parameter to deep-equal value. Neither side may be nil.
func (b *Builder) IsEqualTo(param string, value any) *Builder {
	condition := b.condition(
		param,
		fmt.Sprintf("equals:%s:%T:%#v", param, value, value),
		func(actual any) bool {
			return !isNil(actual) && !isNil(value) && reflect.DeepEqual(actual, value)
		},
	)
	condition.want = value
	condition.hasWant = true

	return b.append(condition)
}

// IsFalse requires predicate to reject the parameter.
// A nil predicate never holds, as with IsTrue.
func (b *Builder) IsFalse(param string, predicate func(any) bool) *Builder {
	var negated func(any) bool
	if predicate != nil {
		negated = func(actual any) bool { return !predicate(actual) }
	}

	return b.append(b.condition(
		param,
		fmt.Sprintf("false:%s:%s", param, funcIdentity(predicate)),
		negated,
	))
}

// IsNil requires the parameter to be nil.
func (b *Builder) IsNil(param string) *Builder {
	return b.append(b.condition(param, "nil:"+param, isNil))
}

// IsNotNil requires the parameter to be non-nil.
func (b *Builder) IsNotNil(param string) *Builder {
	return b.append(b.condition(
		param,
		"notnil:"+param,
		func(actual any) bool { return !isNil(actual) },
	))
}

// IsSameTypeAs requires the parameter to have sample's dynamic type.
// Neither side may be nil.
func (b *Builder) IsSameTypeAs(param string, sample any) *Builder {
	return b.append(b.condition(
		param,
		fmt.Sprintf("type:%s:%T", param, sample),
		func(actual any) bool {
			return !isNil(actual) && !isNil(sample) && reflect.TypeOf(actual) == reflect.TypeOf(sample)
		},
	))
}

// IsTrue requires predicate to accept the parameter.
// A nil predicate never holds.
func (b *Builder) IsTrue(param string, predicate func(any) bool) *Builder {
	return b.append(b.condition(
		param,
		fmt.Sprintf("true:%s:%s", param, funcIdentity(predicate)),
		predicate,
	))
}

// Matches requires matcher (gomega or match package) to accept the parameter.
func (b *Builder) Matches(param string, matcher match.Matcher) *Builder {
	return b.append(b.condition(
		param,
		fmt.Sprintf("matches:%s:%T:%+v", param, matcher, matcher),
		func(actual any) bool { return match.Check(matcher, actual) },
	))
}

// Panics commits a fault that panics with value instead of returning.
func (b *Builder) Panics(value any) {
	b.commit(Commit{
		Method:     b.method,
		Conditions: slices.Clone(b.conditions),
		Fault:      &Fault{Panic: value, panics: true},
	})
}

// PassesOut binds value to the output parameter param. It is written through
// the caller's pointer after the return value is produced.
func (b *Builder) PassesOut(param string, value any) *Builder {
	b.outputs[param] = value

	return b
}

// Returns commits value as the method's return.
func (b *Builder) Returns(value any) {
	b.commit(Commit{
		Method:     b.method,
		Conditions: slices.Clone(b.conditions),
		Value:      value,
		Outputs:    maps.Clone(b.outputs),
	})
}

// ReturnsNil commits a nil return.
func (b *Builder) ReturnsNil() {
	b.Returns(nil)
}

func (b *Builder) append(condition Condition) *Builder {
	b.conditions = append(b.conditions, condition)

	return b
}

func (b *Builder) commit(commit Commit) {
	if b.committed {
		return
	}

	b.committed = true

	if b.onCommit != nil {
		b.onCommit(commit)
	}
}

func (b *Builder) condition(param, descriptor string, predicate func(any) bool) Condition {
	return Condition{
		Method:     b.method,
		Parameter:  param,
		Predicate:  predicate,
		Descriptor: descriptor,
	}
}
