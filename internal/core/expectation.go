package core

// Expectation wraps a subject value during assertion chaining. It tracks the
// negation state for exactly the next terminal matcher call and dispatches
// matcher calls against its registry. Every terminal call returns the same
// *Expectation so calls chain.
type Expectation struct {
	registry *Registry
	subject  any
	negated  bool
}

// NewExpectation wraps subject for assertion against the given registry.
func NewExpectation(registry *Registry, subject any) *Expectation {
	return &Expectation{registry: registry, subject: subject}
}

// Subject returns the value under test. The framework never mutates it.
func (e *Expectation) Subject() any {
	return e.subject
}

// Not inverts the sense of the next terminal matcher call.
func (e *Expectation) Not() *Expectation {
	e.negated = true

	return e
}

// Never is an alias for Not.
func (e *Expectation) Never() *Expectation {
	return e.Not()
}

// To resolves name against the registry and evaluates the matcher with the
// call-site arguments. An unknown name is an authoring failure scoped to the
// enclosing test. A failed evaluation panics with a *Failure carrying the
// matcher name, the sense-appropriate diagnostic, and any expected/actual
// payloads; the engine recovers it at the test boundary. On success the same
// expectation is returned for chaining.
//
// Negation applies to exactly this evaluation: the flag is consumed before
// the matcher runs, so a chained follow-up call is positive again.
func (e *Expectation) To(name string, args ...any) *Expectation {
	fn, ok := e.registry.Resolve(name)
	if !ok {
		authoringFailure(name, "unknown matcher %q; register it with ExtendExpect before use", name)
	}

	negated := e.negated
	e.negated = false

	result := fn(e, args...)

	if result.Ok == negated {
		message := result.FailureMessage
		if negated {
			message = result.NegatedFailureMessage
		}

		failure := &Failure{
			Kind:    FailureAssertion,
			Matcher: name,
			Message: message,
		}
		if result.HasValues && !negated {
			failure.Expected = result.Expected
			failure.Actual = result.Actual
			failure.HasValues = true
		}

		panic(failure)
	}

	return e
}

// Verify is the boolean-assert primitive shared by built-in and user
// matchers: it packages a condition with its positive- and negated-sense
// diagnostics so custom matchers compose with Not() exactly like built-ins.
func Verify(_ *Expectation, condition bool, failureMessage, negatedFailureMessage string) MatchResult {
	return MatchResult{
		Ok:                    condition,
		FailureMessage:        failureMessage,
		NegatedFailureMessage: negatedFailureMessage,
	}
}

// Typed convenience terminals. Each routes through the registry by name, so
// rebinding a name with Register/ExtendExpect also rebinds the method.

// ToBe asserts shallow equality with expected.
func (e *Expectation) ToBe(expected any) *Expectation {
	return e.To("toBe", expected)
}

// ToEqual asserts deep equality with expected.
func (e *Expectation) ToEqual(expected any) *Expectation {
	return e.To("toEqual", expected)
}

// ToBeNil asserts the subject is nil (including typed nil pointers, slices,
// maps, channels, and funcs).
func (e *Expectation) ToBeNil() *Expectation {
	return e.To("toBeNil")
}

// ToBeTruthy asserts the subject is neither nil nor false.
func (e *Expectation) ToBeTruthy() *Expectation {
	return e.To("toBeTruthy")
}

// ToBeFalsy asserts the subject is nil or false.
func (e *Expectation) ToBeFalsy() *Expectation {
	return e.To("toBeFalsy")
}

// ToBeGreaterThan asserts the numeric subject is strictly greater than x.
func (e *Expectation) ToBeGreaterThan(x any) *Expectation {
	return e.To("toBeGreaterThan", x)
}

// ToBeLessThan asserts the numeric subject is strictly less than x.
func (e *Expectation) ToBeLessThan(x any) *Expectation {
	return e.To("toBeLessThan", x)
}

// ToBeCloseTo asserts |subject - x| < 0.5 * 10^-precision.
func (e *Expectation) ToBeCloseTo(x float64, precision int) *Expectation {
	return e.To("toBeCloseTo", x, precision)
}

// ToBeBetween asserts lo <= subject <= hi, inclusive on both ends.
func (e *Expectation) ToBeBetween(lo, hi float64) *Expectation {
	return e.To("toBeBetween", lo, hi)
}

// ToContain asserts a string subject contains a substring, or a slice/array
// subject contains a deep-equal element.
func (e *Expectation) ToContain(item any) *Expectation {
	return e.To("toContain", item)
}

// ToHaveLength asserts the subject's length.
func (e *Expectation) ToHaveLength(n int) *Expectation {
	return e.To("toHaveLength", n)
}

// ToThrow asserts the subject, a zero-argument callable, panics or returns a
// non-nil error. An optional substring argument must appear in the thrown
// message.
func (e *Expectation) ToThrow(substring ...string) *Expectation {
	args := make([]any, len(substring))
	for i, s := range substring {
		args[i] = s
	}

	return e.To("toThrow", args...)
}

// ToThrowError asserts the subject throws with a message containing substring.
func (e *Expectation) ToThrowError(substring string) *Expectation {
	return e.To("toThrowError", substring)
}

// ToMatch asserts the subject satisfies an external matcher such as one from
// the match package or gomega.
func (e *Expectation) ToMatch(m Matcher) *Expectation {
	return e.To("toMatch", m)
}
