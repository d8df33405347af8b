package core

import (
	"sync"
)

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// ForTest returns the mock registered under name for t, creating it with
// build on first use. Test helpers that share a t therefore share mocks.
//
// build runs without the registry lock held, so it may itself call ForTest.
// When two callers race to create the same entry, the first one stored wins
// and the other's mock is discarded.
//
// If the TestReporter supports Cleanup (like *testing.T), its mocks are
// dropped from the registry when the test completes.
func ForTest(t TestReporter, name string, build func() *Mock) *Mock {
	key := registryKey{reporter: t, name: name}

	if mock, ok := lookup(key); ok {
		return mock
	}

	built := build()

	registryMu.Lock()
	defer registryMu.Unlock()

	if mock, ok := registry[key]; ok {
		return mock
	}

	registry[key] = built

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, key)
			registryMu.Unlock()
		})
	}

	return built
}

// MustInvoke invokes name on object and fails the test on any error,
// induced faults included.
func MustInvoke(t TestReporter, object Object, name string, args ...any) any {
	t.Helper()

	value, err := object.Invoke(name, args...)
	if err != nil {
		t.Fatalf("invoke %s: %v", name, err)
	}

	return value
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[registryKey]*Mock)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

type registryKey struct {
	reporter TestReporter
	name     string
}

func lookup(key registryKey) (*Mock, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	mock, ok := registry[key]

	return mock, ok
}
