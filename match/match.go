// Package match provides argument matchers and typed predicates for standin
// conditions. It is designed to be used alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/toejough/standin/match"
//	)
//
//	mock.For("Divide").Matches("b", BeNumerically(">", 10)).Returns(1)
//	mock.For("Divide").IsTrue("a", match.As(func(a int) bool { return a%2 == 0 })).Returns(0)
package match

import (
	"errors"
	"fmt"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// As adapts a typed predicate to the untyped form conditions take.
// Arguments that are not a T (including nil) fail the predicate.
func As[T any](predicate func(T) bool) func(any) bool {
	return func(actual any) bool {
		val, ok := actual.(T)
		if !ok {
			return false
		}

		return predicate(val)
	}
}

// Check runs matcher against actual and reduces the outcome to a bool.
// A matcher error counts as a mismatch.
func Check(matcher Matcher, actual any) bool {
	ok, err := matcher.Match(actual)

	return err == nil && ok
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate returns nil for a match, or an error describing the mismatch.
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}
