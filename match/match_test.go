package match_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/trialhq/trial/match"
)

// TestAnything_MatchesEverything verifies Anything never rejects a value.
func TestAnything_MatchesEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, value := range []any{nil, 0, "", false, []int{1}, struct{}{}} {
		ok, err := match.Anything.Match(value)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ok).To(BeTrue())
	}

	g.Expect(match.Anything.FailureMessage(42)).To(BeEmpty())
}

// TestSatisfy_Predicate verifies pass, fail, and the failure message.
func TestSatisfy_Predicate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	positive := match.Satisfy(func(n int) error {
		if n <= 0 {
			return errors.New("must be positive")
		}

		return nil
	})

	ok, err := positive.Match(3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = positive.Match(-1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(positive.FailureMessage(-1)).To(ContainSubstring("must be positive"))
}

// TestSatisfy_TypeMismatch verifies a wrong-typed value errors rather than
// silently failing to match.
func TestSatisfy_TypeMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Satisfy(func(int) error { return nil })

	_, err := matcher.Match("not an int")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("type mismatch"))
}
