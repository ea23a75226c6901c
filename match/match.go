// Package match provides matchers for use with trial's ToMatch and with
// custom matchers registered through ExtendExpect. It is designed to be
// imported alongside gomega matchers, which satisfy the same interface:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/trialhq/trial/match"
//	)
//
//	trial.Expect(count).ToMatch(BeNumerically(">", 0))
//	trial.Expect(user).ToMatch(match.Satisfy(func(u User) error { ... }))
package match

import (
	"errors"
	"fmt"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching. Compatible with
// gomega.GomegaMatcher via duck typing - any type implementing Match and
// FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Anything is a matcher that matches any value. Useful for dataset entries
// where one field is irrelevant.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var Anything Matcher = anythingMatcher{}

// Satisfy returns a matcher that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not.
//
// Example:
//
//	trial.Expect(x).ToMatch(match.Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}))
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// anythingMatcher is the implementation of the Anything matcher.
type anythingMatcher struct{}

// FailureMessage returns an empty string since Anything always matches.
func (anythingMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anythingMatcher) Match(any) (bool, error) {
	return true, nil
}

// NegatedFailureMessage explains why a negated Anything can never pass.
func (anythingMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Anything matches every value, including %v", actual)
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

func (m *satisfyMatcher[T]) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("value %v satisfies the predicate, expected it not to", actual)
}
