package core

import "fmt"

// FailureKind classifies why a test (or hook) failed.
type FailureKind int

const (
	// FailureAssertion is an expected condition that was not met.
	FailureAssertion FailureKind = iota
	// FailureAuthoring is misuse of the framework itself: an unknown matcher
	// name, a declaration call during execution, a bad matcher argument.
	FailureAuthoring
	// FailureTimeout is a test body that did not complete within the limit.
	FailureTimeout
	// FailurePanic is a non-assertion panic escaping a test body or hook.
	FailurePanic
	// FailureHook is a failure inside beforeAll/afterAll/beforeEach/afterEach,
	// attributed to the test or suite the hook belongs to.
	FailureHook
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureAssertion:
		return "assertion"
	case FailureAuthoring:
		return "authoring"
	case FailureTimeout:
		return "timeout"
	case FailurePanic:
		return "panic"
	case FailureHook:
		return "hook"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Failure is the structured outcome of anything going wrong inside one test.
// Expectations panic with a *Failure; the engine recovers it at the test
// boundary and records it on the result node. It implements error so it reads
// sensibly if it ever escapes outside a run.
type Failure struct {
	Kind    FailureKind
	Matcher string // matcher name for assertion/authoring failures, else ""
	Message string
	// Expected and Actual are only meaningful when HasValues is true; nil is
	// a legitimate expected/actual value.
	Expected  any
	Actual    any
	HasValues bool
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Matcher != "" {
		return fmt.Sprintf("%s failure in %s: %s", f.Kind, f.Matcher, f.Message)
	}

	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

// authoringFailure builds and panics an authoring-kind failure. It never
// returns; the engine converts it into a failed result at the test boundary.
func authoringFailure(matcher, format string, args ...any) {
	panic(&Failure{
		Kind:    FailureAuthoring,
		Matcher: matcher,
		Message: fmt.Sprintf(format, args...),
	})
}

// panicMessage renders an arbitrary recovered value as a message.
func panicMessage(recovered any) string {
	if err, ok := recovered.(error); ok {
		return err.Error()
	}

	return fmt.Sprint(recovered)
}
