// Package defaults produces plausible values for arbitrary Go types.
//
// Scalars come from rapid generators run with a per-generator seed that
// advances on every draw, so a generator yields a deterministic sequence.
// Composite types are built structurally from their element types.
package defaults

import (
	"math"
	"reflect"

	"pgregory.net/rapid"
)

// Generator draws values for reflect types.
// A Generator is not safe for concurrent use.
type Generator struct {
	seed int
}

// New creates a Generator whose first draw uses seed.
func New(seed int) *Generator {
	return &Generator{seed: seed}
}

// Generate returns a value of type t as an any.
// Types that have no meaningful generated value (interfaces, funcs, channels,
// unsafe pointers) yield their zero value. Generate never panics.
func (g *Generator) Generate(t reflect.Type) any {
	if t == nil {
		return nil
	}

	return g.value(t, 0).Interface()
}

// Value is Generate without the conversion to any.
func (g *Generator) Value(t reflect.Type) reflect.Value {
	return g.value(t, 0)
}

// unexported constants.
const (
	floatBound  = 1e6
	maxDepth    = 4
	maxElements = 3
	minElements = 1
	stringShape = `[a-z][a-z0-9]{0,11}`
)

func (g *Generator) next() int {
	g.seed++

	return g.seed
}

//nolint:cyclop,funlen // Kind switch over every reflect kind is inherent
func (g *Generator) value(t reflect.Type, depth int) reflect.Value {
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		out.SetBool(rapid.Bool().Example(g.next()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		lo := int64(-1) << (bits - 1)
		hi := -(lo + 1)
		out.SetInt(rapid.Int64Range(lo, hi).Example(g.next()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out.SetUint(rapid.Uint64Range(0, maxUint(t.Bits())).Example(g.next()))
	case reflect.Float32, reflect.Float64:
		out.SetFloat(rapid.Float64Range(-floatBound, floatBound).Example(g.next()))
	case reflect.Complex64, reflect.Complex128:
		re := rapid.Float64Range(-floatBound, floatBound).Example(g.next())
		im := rapid.Float64Range(-floatBound, floatBound).Example(g.next())
		out.SetComplex(complex(re, im))
	case reflect.String:
		out.SetString(rapid.StringMatching(stringShape).Example(g.next()))
	case reflect.Pointer:
		if depth >= maxDepth {
			return out
		}

		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(g.value(t.Elem(), depth+1))
		out.Set(ptr)
	case reflect.Struct:
		if depth >= maxDepth {
			return out
		}

		for i := range t.NumField() {
			field := out.Field(i)
			if !field.CanSet() {
				continue
			}

			field.Set(g.value(t.Field(i).Type, depth+1))
		}
	case reflect.Array:
		if depth >= maxDepth {
			return out
		}

		for i := range t.Len() {
			out.Index(i).Set(g.value(t.Elem(), depth+1))
		}
	case reflect.Slice:
		if depth >= maxDepth {
			return out
		}

		count := g.count()
		slice := reflect.MakeSlice(t, count, count)

		for i := range count {
			slice.Index(i).Set(g.value(t.Elem(), depth+1))
		}

		out.Set(slice)
	case reflect.Map:
		if depth >= maxDepth {
			return out
		}

		count := g.count()
		entries := reflect.MakeMapWithSize(t, count)

		for range count {
			entries.SetMapIndex(g.value(t.Key(), depth+1), g.value(t.Elem(), depth+1))
		}

		out.Set(entries)
	default:
		// interfaces, funcs, channels and unsafe pointers stay zero
	}

	return out
}

func (g *Generator) count() int {
	return rapid.IntRange(minElements, maxElements).Example(g.next())
}

func maxUint(bits int) uint64 {
	if bits >= 64 { //nolint:mnd // width of uint64
		return math.MaxUint64
	}

	return uint64(1)<<bits - 1
}
