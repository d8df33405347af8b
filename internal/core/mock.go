// Package core provides the internal implementation of standin's dynamic
// mock: the registration store, the argument-conditioned dispatch, and the
// fluent builder that feeds it.
package core

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/toejough/standin/internal/signature"
)

// Exported variables.
var (
	ErrBadArguments = errors.New("bad arguments")
	ErrInducedFault = errors.New("induced fault")
	ErrNoSuchMember = errors.New("no such member")
	ErrNotFound     = errors.New("member not found")
)

// Mock stands in for one value, or for one type when there is no value.
//
// Every exported method of the wrapped type is seeded with a generated
// default at construction. Overrides are layered on with For. Calls that
// resolve to nothing configured fall through to the real method.
//
// A Mock is not safe for concurrent use.
type Mock struct {
	typ     reflect.Type
	methods map[string]*method
	params  map[string][]string

	members    map[string]*Registration
	conditions map[string][]*conditionSet
	faults     map[string]Fault

	generator Generator
	hasher    Hasher
	tracer    Tracer
	history   *history
}

// Object is the capability surface a mock is addressed through.
type Object interface {
	Get(name string) (any, error)
	Invoke(name string, args ...any) (any, error)
	Set(name string, value any)
}

// New wraps real. Its exported methods are discovered, seeded with defaults,
// and used for pass-through when no override resolves.
func New(real any, opts ...Option) *Mock {
	value := reflect.ValueOf(real)
	if !value.IsValid() {
		return newMock(nil, value, opts)
	}

	return newMock(value.Type(), value, opts)
}

// NewOfType wraps a type with no value behind it, such as an interface type.
// Methods are discovered and seeded; pass-through reports ErrNoSuchMember.
func NewOfType(t reflect.Type, opts ...Option) *Mock {
	return newMock(t, reflect.Value{}, opts)
}

// For starts a builder that commits an override for method into this mock.
func (m *Mock) For(method string) *Builder {
	return NewBuilder(method, m.upsert)
}

// Get reads a member by case-insensitive name.
// Reading a member that was never set or seeded is a misconfigured test and
// reports ErrNotFound.
func (m *Mock) Get(name string) (any, error) {
	registration, ok := m.members[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return registration.Value(), nil
}

// Methods returns the discovered method names, sorted.
func (m *Mock) Methods() []string {
	return slices.Sorted(maps.Keys(m.methods))
}

// Reset drops every registration, condition set and fault committed or seeded
// for method, leaving calls to pass through to the real method.
func (m *Mock) Reset(method string) {
	for _, set := range m.conditions[method] {
		delete(m.members, set.key)
		delete(m.faults, set.key)
	}

	delete(m.conditions, method)
	delete(m.members, method)
	delete(m.faults, method)

	m.trace("reset %s", method)
}

// Set writes a member by case-insensitive name, replacing any earlier value.
func (m *Mock) Set(name string, value any) {
	key := strings.ToLower(name)

	m.members[key] = &Registration{
		Key:      key,
		thunk:    constant(value),
		property: true,
	}
}

// Type returns the wrapped type, nil when there is none.
func (m *Mock) Type() reflect.Type {
	return m.typ
}

func newMock(typ reflect.Type, value reflect.Value, opts []Option) *Mock {
	resolved := newOptions(opts)

	mock := &Mock{
		typ:        typ,
		methods:    discover(typ, value),
		params:     resolved.params,
		members:    make(map[string]*Registration),
		conditions: make(map[string][]*conditionSet),
		faults:     make(map[string]Fault),
		generator:  resolved.generator,
		hasher:     resolved.hasher,
		tracer:     resolved.tracer,
		history:    newHistory(resolved.history),
	}

	if !resolved.skipSeeding {
		mock.seed()
	}

	return mock
}

// addConditionSet stores the set for method, replacing any set with the same
// key. The replacement moves to the end so it counts as the latest commit.
func (m *Mock) addConditionSet(method, key string, conditions []Condition) {
	sets := slices.DeleteFunc(m.conditions[method], func(set *conditionSet) bool {
		return set.key == key
	})

	m.conditions[method] = append(sets, &conditionSet{key: key, conditions: conditions})
}

func (m *Mock) composeKey(method string, conditions []Condition) string {
	return method + "_" + strconv.FormatUint(m.hasher(descriptors(conditions)...), 10)
}

// paramNames prefers explicitly supplied names and falls back to positional
// names for discovered methods.
func (m *Mock) paramNames(name string) []string {
	if names, ok := m.params[name]; ok {
		return names
	}

	meth, ok := m.methods[name]
	if !ok {
		return nil
	}

	names := make([]string, len(meth.in))
	for i := range names {
		names[i] = signature.Positional(i)
	}

	return names
}

// seed registers an unconditioned, generated default for every discovered method.
func (m *Mock) seed() {
	for _, name := range m.Methods() {
		results := m.methods[name].results()

		m.members[name] = &Registration{
			Key:   name,
			thunk: func() any { return m.generate(results) },
		}
	}

	m.trace("seeded %d method(s) of %v", len(m.methods), m.typ)
}

func (m *Mock) generate(results []reflect.Type) any {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return m.generator.Generate(results[0])
	default:
		values := make([]any, len(results))
		for i, result := range results {
			values[i] = m.generator.Generate(result)
		}

		return values
	}
}

func (m *Mock) trace(format string, args ...any) {
	if m.tracer == nil {
		return
	}

	m.tracer.Logf(format, args...)
}

// upsert is the builder commit callback.
func (m *Mock) upsert(commit Commit) {
	key := commit.Method

	if len(commit.Conditions) > 0 {
		key = m.composeKey(commit.Method, commit.Conditions)
		m.addConditionSet(commit.Method, key, commit.Conditions)
	}

	if commit.Fault != nil {
		m.faults[key] = *commit.Fault
		m.trace("committed fault for %s", key)

		return
	}

	m.members[key] = &Registration{
		Key:     key,
		Outputs: commit.Outputs,
		thunk:   constant(commit.Value),
	}

	m.trace("committed return for %s (%d output binding(s))", key, len(commit.Outputs))
}
