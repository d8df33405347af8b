package core

import (
	"maps"
	"reflect"

	"github.com/toejough/standin/internal/defaults"
	"github.com/toejough/standin/internal/sighash"
)

// Generator produces a plausible value for a type.
type Generator interface {
	Generate(t reflect.Type) any
}

// Hasher digests an ordered sequence of condition descriptors.
type Hasher func(descriptors ...string) uint64

// Option configures a Mock.
type Option func(*options)

// Tracer receives dispatch diagnostics. *testing.T satisfies it.
type Tracer interface {
	Logf(format string, args ...any)
}

// WithGenerator replaces the default value generator used for seeding.
func WithGenerator(generator Generator) Option {
	return func(o *options) {
		if generator != nil {
			o.generator = generator
		}
	}
}

// WithHasher replaces the condition-set hasher.
func WithHasher(hasher Hasher) Option {
	return func(o *options) {
		if hasher != nil {
			o.hasher = hasher
		}
	}
}

// WithHistory bounds the number of recorded calls. Zero disables recording.
func WithHistory(limit int) Option {
	return func(o *options) {
		o.history = max(limit, 0)
	}
}

// WithParamTable supplies parameter names for many methods at once, typically
// parsed from source with signature.Parse.
func WithParamTable(table map[string][]string) Option {
	return func(o *options) {
		maps.Copy(o.params, table)
	}
}

// WithParams names the parameters of method, in declaration order.
func WithParams(method string, names ...string) Option {
	return func(o *options) {
		o.params[method] = names
	}
}

// WithSeed sets the seed of the default generator.
func WithSeed(seed int) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithTracer routes seeding, commit and dispatch diagnostics to tracer.
func WithTracer(tracer Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithoutSeeding skips the generated defaults, so every method passes through
// to the real value until an override is committed.
func WithoutSeeding() Option {
	return func(o *options) {
		o.skipSeeding = true
	}
}

// unexported constants.
const (
	defaultHistory = 64
	defaultSeed    = 1
)

type options struct {
	generator   Generator
	hasher      Hasher
	history     int
	params      map[string][]string
	seed        int
	skipSeeding bool
	tracer      Tracer
}

func newOptions(opts []Option) options {
	resolved := options{
		hasher:  sighash.Sum,
		history: defaultHistory,
		params:  make(map[string][]string),
		seed:    defaultSeed,
	}

	for _, opt := range opts {
		opt(&resolved)
	}

	if resolved.generator == nil {
		resolved.generator = defaults.New(resolved.seed)
	}

	return resolved
}
