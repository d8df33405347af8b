package match_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/standin/match"
)

// TestBeAny verifies BeAny matches everything, nil included.
func TestBeAny(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, actual := range []any{42, nil, "x", []int{1}} {
		ok, err := match.BeAny.Match(actual)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ok).To(BeTrue())
	}

	g.Expect(match.BeAny.FailureMessage(42)).To(BeEmpty())
}

// TestSatisfy_Failure verifies the predicate error lands in the failure message.
func TestSatisfy_Failure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Satisfy(func(val int) error {
		if val <= 10 {
			return errors.New("must be greater than 10")
		}

		return nil
	})

	ok, err := matcher.Match(5)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(5)).
		To(Equal("value 5 does not satisfy predicate: must be greater than 10"))
}

// TestSatisfy_TypeMismatch verifies a wrongly typed value errors instead of panicking.
func TestSatisfy_TypeMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Satisfy(func(int) error { return nil })

	ok, err := matcher.Match("five")

	g.Expect(ok).To(BeFalse())
	g.Expect(err).To(MatchError(ContainSubstring("type mismatch")))
	g.Expect(matcher.FailureMessage("five")).To(Equal("value five does not satisfy predicate"))
}

// TestAs verifies typed predicates reject values of other types.
func TestAs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	even := match.As(func(val int) bool { return val%2 == 0 })

	g.Expect(even(4)).To(BeTrue())
	g.Expect(even(3)).To(BeFalse())
	g.Expect(even("4")).To(BeFalse())
	g.Expect(even(nil)).To(BeFalse())
}

// TestCheck verifies gomega matchers plug in and errors count as mismatches.
func TestCheck(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(match.Check(BeNumerically(">", 3), 5)).To(BeTrue())
	g.Expect(match.Check(BeNumerically(">", 3), 2)).To(BeFalse())
	g.Expect(match.Check(BeNumerically(">", 3), "five")).To(BeFalse())
}
