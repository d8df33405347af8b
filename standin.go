// Package standin builds programmable stand-ins for Go values.
//
// A stand-in discovers the exported methods of a real value (or a type),
// seeds each one with a generated default, and lets a test override any of
// them, optionally only for calls whose arguments satisfy conditions:
//
//	mock := standin.New(&Calculator{}, standin.WithParams("Divide", "a", "b", "remainder"))
//	mock.For("Divide").IsEqualTo("b", 0).Fails(ErrDivideByZero)
//	mock.For("Divide").IsEqualTo("b", 2).PassesOut("remainder", 1).Returns(5)
//
// This is the public API entry point. Implementation lives in internal/core.
package standin

import (
	"fmt"
	"reflect"

	"github.com/toejough/standin/convert"
	"github.com/toejough/standin/internal/core"
	"github.com/toejough/standin/internal/signature"
)

// Exported variables.
var (
	ErrBadArguments = core.ErrBadArguments
	ErrInducedFault = core.ErrInducedFault
	ErrNoSuchMember = core.ErrNoSuchMember
	ErrNotFound     = core.ErrNotFound
	ErrTypeNotFound = signature.ErrTypeNotFound
)

// Types re-exported from internal/core.

// Builder accumulates one method's override until a terminal call commits it.
type Builder = core.Builder

// Call records a single invocation and the key it resolved to.
type Call = core.Call

// Commit is what a Builder hands its mock when a terminal call ends it.
type Commit = core.Commit

// Condition is a single parameter-level predicate.
type Condition = core.Condition

// Fault is a configured failure that pre-empts any return for its key.
type Fault = core.Fault

// Generator produces a plausible value for a type.
type Generator = core.Generator

// Hasher digests an ordered sequence of condition descriptors.
type Hasher = core.Hasher

// Mock stands in for one value, or for one type when there is no value.
type Mock = core.Mock

// Object is the capability surface a mock is addressed through.
type Object = core.Object

// Option configures a Mock.
type Option = core.Option

// Registration is one stored behavior.
type Registration = core.Registration

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter = core.TestReporter

// Tracer receives dispatch diagnostics. *testing.T satisfies it.
type Tracer = core.Tracer

// Functions re-exported from internal/core.

// ForTest returns the mock registered under name for t, creating it with build
// on first use.
func ForTest(t TestReporter, name string, build func() *Mock) *Mock {
	return core.ForTest(t, name, build)
}

// GetAs reads a member and converts it to T.
func GetAs[T any](object Object, name string) (T, error) {
	value, err := object.Get(name)

	return Result[T](value, err)
}

// MustInvoke invokes name on object and fails the test on any error.
func MustInvoke(t TestReporter, object Object, name string, args ...any) any {
	t.Helper()

	return core.MustInvoke(t, object, name, args...)
}

// New wraps real.
func New(real any, opts ...Option) *Mock {
	return core.New(real, opts...)
}

// NewOfType wraps a type with no value behind it.
func NewOfType(t reflect.Type, opts ...Option) *Mock {
	return core.NewOfType(t, opts...)
}

// ParseParams reads the parameter names of every method declared for typeName
// in src, for use with WithParamTable.
func ParseParams(src, typeName string) (map[string][]string, error) {
	return signature.Parse(src, typeName)
}

// ParseParamsFile is ParseParams over a file on disk.
func ParseParamsFile(path, typeName string) (map[string][]string, error) {
	return signature.ParseFile(path, typeName)
}

// Result narrows an Invoke or Get result to T. A non-nil err is returned as is.
// A value that is neither a T nor convertible to one yields ErrBadArguments,
// except nil, which yields T's zero value.
func Result[T any](value any, err error) (T, error) {
	var zero T

	if err != nil {
		return zero, err
	}

	if value == nil {
		return zero, nil
	}

	converted, ok := convert.Try[T](value)
	if !ok {
		return zero, fmt.Errorf("%w: %T is not convertible to %T", ErrBadArguments, value, zero)
	}

	return converted, nil
}

// WithGenerator replaces the default value generator used for seeding.
func WithGenerator(generator Generator) Option {
	return core.WithGenerator(generator)
}

// WithHasher replaces the condition-set hasher.
func WithHasher(hasher Hasher) Option {
	return core.WithHasher(hasher)
}

// WithHistory bounds the number of recorded calls. Zero disables recording.
func WithHistory(limit int) Option {
	return core.WithHistory(limit)
}

// WithParamTable supplies parameter names for many methods at once.
func WithParamTable(table map[string][]string) Option {
	return core.WithParamTable(table)
}

// WithParams names the parameters of method, in declaration order.
func WithParams(method string, names ...string) Option {
	return core.WithParams(method, names...)
}

// WithSeed sets the seed of the default generator.
func WithSeed(seed int) Option {
	return core.WithSeed(seed)
}

// WithTracer routes diagnostics to tracer.
func WithTracer(tracer Tracer) Option {
	return core.WithTracer(tracer)
}

// WithoutSeeding skips generated defaults; unconfigured calls pass through.
func WithoutSeeding() Option {
	return core.WithoutSeeding()
}
