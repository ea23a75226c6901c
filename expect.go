package trial

import (
	"github.com/trialhq/trial/internal/core"
)

// Expectation wraps a subject value and its negation state during assertion
// chaining.
type Expectation = core.Expectation

// MatchResult is what a matcher function reports back to the dispatcher.
type MatchResult = core.MatchResult

// MatcherFunc is a named predicate over an expectation's subject.
type MatcherFunc = core.MatcherFunc

// Matcher is the contract for external value matchers consumed by ToMatch.
// gomega matchers satisfy it via duck typing.
type Matcher = core.Matcher

// Registry maps matcher names to implementations.
type Registry = core.Registry

// NewRegistry creates a registry pre-seeded with the built-in matchers.
func NewRegistry() *Registry {
	return core.NewRegistry()
}

// DefaultRegistry returns the process-wide registry used by Expect and
// ExtendExpect.
func DefaultRegistry() *Registry {
	return core.DefaultRegistry()
}

// Expect wraps a value for assertion against the default registry. Use
// Runner.Expect to assert against an isolated registry instead.
func Expect(subject any) *Expectation {
	return core.NewExpectation(core.DefaultRegistry(), subject)
}

// ExtendExpect registers a custom matcher under name on the default
// registry, overwriting any previous entry. The implementation should report
// through Verify so it composes with Not() exactly like the built-ins:
//
//	trial.ExtendExpect("toBeEven", func(e *trial.Expectation, _ ...any) trial.MatchResult {
//	    n, _ := e.Subject().(int)
//	    return trial.Verify(e, n%2 == 0,
//	        fmt.Sprintf("expected %d to be even", n),
//	        fmt.Sprintf("expected %d not to be even", n))
//	})
func ExtendExpect(name string, fn MatcherFunc) {
	core.DefaultRegistry().Register(name, fn)
}

// Verify is the boolean-assert primitive shared by built-in and custom
// matchers.
func Verify(e *Expectation, condition bool, failureMessage, negatedFailureMessage string) MatchResult {
	return core.Verify(e, condition, failureMessage, negatedFailureMessage)
}
