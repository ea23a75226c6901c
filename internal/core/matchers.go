package core

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/akedrou/textdiff"
)

// Matcher is the contract for external value matchers consumed by ToMatch.
// Compatible with gomega.GomegaMatcher via duck typing: any type implementing
// Match and FailureMessage works.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// negatedMessager is implemented by matchers (gomega's included) that carry a
// dedicated negated-sense diagnostic.
type negatedMessager interface {
	NegatedFailureMessage(actual any) string
}

// registerBuiltins seeds a registry with the built-in matcher set. Built-ins
// go through Register like everything else, so user code can overwrite them.
func registerBuiltins(r *Registry) {
	r.Register("toBe", matchToBe)
	r.Register("toEqual", matchToEqual)
	r.Register("toBeNil", matchToBeNil)
	r.Register("toBeTruthy", matchToBeTruthy)
	r.Register("toBeFalsy", matchToBeFalsy)
	r.Register("toBeGreaterThan", matchToBeGreaterThan)
	r.Register("toBeLessThan", matchToBeLessThan)
	r.Register("toBeCloseTo", matchToBeCloseTo)
	r.Register("toBeBetween", matchToBeBetween)
	r.Register("toContain", matchToContain)
	r.Register("toHaveLength", matchToHaveLength)
	r.Register("toThrow", matchToThrow)
	r.Register("toThrowError", matchToThrowError)
	r.Register("toMatch", matchToMatch)
}

func matchToBe(e *Expectation, args ...any) MatchResult {
	wantArgs("toBe", args, 1)

	expected := args[0]
	result := Verify(e, shallowEqual(e.Subject(), expected),
		fmt.Sprintf("expected %s to be %s", formatValue(e.Subject()), formatValue(expected)),
		fmt.Sprintf("expected %s not to be %s", formatValue(e.Subject()), formatValue(expected)))
	result.Expected = expected
	result.Actual = e.Subject()
	result.HasValues = true

	return result
}

func matchToEqual(e *Expectation, args ...any) MatchResult {
	wantArgs("toEqual", args, 1)

	expected := args[0]
	result := Verify(e, reflect.DeepEqual(e.Subject(), expected),
		equalFailureMessage(expected, e.Subject()),
		fmt.Sprintf("expected %s not to equal %s", formatValue(e.Subject()), formatValue(expected)))
	result.Expected = expected
	result.Actual = e.Subject()
	result.HasValues = true

	return result
}

func matchToBeNil(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeNil", args, 0)

	return Verify(e, isNil(e.Subject()),
		fmt.Sprintf("expected %s to be nil", formatValue(e.Subject())),
		"expected value not to be nil")
}

func matchToBeTruthy(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeTruthy", args, 0)

	return Verify(e, isTruthy(e.Subject()),
		fmt.Sprintf("expected %s to be truthy", formatValue(e.Subject())),
		fmt.Sprintf("expected %s not to be truthy", formatValue(e.Subject())))
}

func matchToBeFalsy(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeFalsy", args, 0)

	return Verify(e, !isTruthy(e.Subject()),
		fmt.Sprintf("expected %s to be falsy", formatValue(e.Subject())),
		fmt.Sprintf("expected %s not to be falsy", formatValue(e.Subject())))
}

func matchToBeGreaterThan(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeGreaterThan", args, 1)

	subject := numericSubject("toBeGreaterThan", e)
	bound := numericArg("toBeGreaterThan", args[0])

	return Verify(e, subject > bound,
		fmt.Sprintf("expected %v to be greater than %v", subject, bound),
		fmt.Sprintf("expected %v not to be greater than %v", subject, bound))
}

func matchToBeLessThan(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeLessThan", args, 1)

	subject := numericSubject("toBeLessThan", e)
	bound := numericArg("toBeLessThan", args[0])

	return Verify(e, subject < bound,
		fmt.Sprintf("expected %v to be less than %v", subject, bound),
		fmt.Sprintf("expected %v not to be less than %v", subject, bound))
}

// defaultPrecision matches the common jest convention for toBeCloseTo.
const defaultPrecision = 2

func matchToBeCloseTo(e *Expectation, args ...any) MatchResult {
	if len(args) == 0 || len(args) > 2 {
		authoringFailure("toBeCloseTo", "toBeCloseTo takes a target and an optional precision, got %d arguments", len(args))
	}

	subject := numericSubject("toBeCloseTo", e)
	target := numericArg("toBeCloseTo", args[0])

	precision := defaultPrecision
	if len(args) == 2 {
		p, ok := args[1].(int)
		if !ok {
			authoringFailure("toBeCloseTo", "precision must be an int, got %T", args[1])
		}

		precision = p
	}

	tolerance := 0.5 * math.Pow(10, -float64(precision))

	return Verify(e, math.Abs(subject-target) < tolerance,
		fmt.Sprintf("expected %v to be within %v of %v", subject, tolerance, target),
		fmt.Sprintf("expected %v not to be within %v of %v", subject, tolerance, target))
}

func matchToBeBetween(e *Expectation, args ...any) MatchResult {
	wantArgs("toBeBetween", args, 2)

	subject := numericSubject("toBeBetween", e)
	lo := numericArg("toBeBetween", args[0])
	hi := numericArg("toBeBetween", args[1])

	// Inclusive on both ends.
	return Verify(e, subject >= lo && subject <= hi,
		fmt.Sprintf("expected %v to be between %v and %v", subject, lo, hi),
		fmt.Sprintf("expected %v not to be between %v and %v", subject, lo, hi))
}

func matchToContain(e *Expectation, args ...any) MatchResult {
	wantArgs("toContain", args, 1)

	item := args[0]
	subject := e.Subject()

	if s, ok := subject.(string); ok {
		sub, ok := item.(string)
		if !ok {
			authoringFailure("toContain", "cannot search a string for %T", item)
		}

		return Verify(e, strings.Contains(s, sub),
			fmt.Sprintf("expected %q to contain %q", s, sub),
			fmt.Sprintf("expected %q not to contain %q", s, sub))
	}

	val := reflect.ValueOf(subject)
	if !val.IsValid() || (val.Kind() != reflect.Slice && val.Kind() != reflect.Array) {
		authoringFailure("toContain", "toContain requires a string, slice, or array subject, got %T", subject)
	}

	found := false

	for i := range val.Len() {
		if reflect.DeepEqual(val.Index(i).Interface(), item) {
			found = true

			break
		}
	}

	return Verify(e, found,
		fmt.Sprintf("expected %s to contain %s", formatValue(subject), formatValue(item)),
		fmt.Sprintf("expected %s not to contain %s", formatValue(subject), formatValue(item)))
}

func matchToHaveLength(e *Expectation, args ...any) MatchResult {
	wantArgs("toHaveLength", args, 1)

	want, ok := args[0].(int)
	if !ok {
		authoringFailure("toHaveLength", "length must be an int, got %T", args[0])
	}

	val := reflect.ValueOf(e.Subject())
	if !val.IsValid() {
		authoringFailure("toHaveLength", "subject has no length: %s", formatValue(e.Subject()))
	}

	switch val.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
	default:
		authoringFailure("toHaveLength", "subject of type %T has no length", e.Subject())
	}

	got := val.Len()

	return Verify(e, got == want,
		fmt.Sprintf("expected %s to have length %d, got %d", formatValue(e.Subject()), want, got),
		fmt.Sprintf("expected %s not to have length %d", formatValue(e.Subject()), want))
}

func matchToThrow(e *Expectation, args ...any) MatchResult {
	if len(args) > 1 {
		authoringFailure("toThrow", "toThrow takes at most one expected substring, got %d arguments", len(args))
	}

	expected := ""
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			authoringFailure("toThrow", "expected substring must be a string, got %T", args[0])
		}

		expected = s
	}

	return checkThrow(e, "toThrow", expected)
}

func matchToThrowError(e *Expectation, args ...any) MatchResult {
	wantArgs("toThrowError", args, 1)

	expected, ok := args[0].(string)
	if !ok {
		authoringFailure("toThrowError", "expected substring must be a string, got %T", args[0])
	}

	return checkThrow(e, "toThrowError", expected)
}

// checkThrow invokes the callable subject in a failure-isolated scope and
// compares any thrown message against the expected substring ("" matches
// any throw).
func checkThrow(e *Expectation, name, expected string) MatchResult {
	threw, message := invokeThrower(name, e.Subject())

	if !threw {
		return Verify(e, false,
			"expected the callable to throw, but it completed",
			"expected the callable not to throw")
	}

	if expected == "" {
		return Verify(e, true,
			"expected the callable to throw",
			fmt.Sprintf("expected the callable not to throw, but it threw %q", message))
	}

	return Verify(e, strings.Contains(message, expected),
		fmt.Sprintf("expected thrown message %q to contain %q", message, expected),
		fmt.Sprintf("expected thrown message %q not to contain %q", message, expected))
}

// invokeThrower runs the subject and reports whether it threw. A panic and a
// non-nil error return both count as throwing.
func invokeThrower(name string, subject any) (threw bool, message string) {
	switch fn := subject.(type) {
	case func():
		return capturePanic(fn)
	case func() error:
		var err error

		threw, message = capturePanic(func() { err = fn() })
		if threw {
			return true, message
		}

		if err != nil {
			return true, err.Error()
		}

		return false, ""
	default:
		authoringFailure(name, "%s requires a zero-argument callable subject, got %T", name, subject)

		return false, "" // unreachable
	}
}

func capturePanic(fn func()) (threw bool, message string) {
	defer func() {
		if r := recover(); r != nil {
			threw = true
			message = panicMessage(r)
		}
	}()

	fn()

	return false, ""
}

func matchToMatch(e *Expectation, args ...any) MatchResult {
	wantArgs("toMatch", args, 1)

	m, ok := args[0].(Matcher)
	if !ok {
		authoringFailure("toMatch", "argument of type %T does not implement Match/FailureMessage", args[0])
	}

	success, err := m.Match(e.Subject())
	if err != nil {
		// A matcher error is invalid usage, not a mismatch: it must fail
		// regardless of negation.
		authoringFailure("toMatch", "matcher error: %s", err.Error())
	}

	negatedMessage := fmt.Sprintf("expected %s not to match", formatValue(e.Subject()))
	if nm, ok := m.(negatedMessager); ok {
		negatedMessage = nm.NegatedFailureMessage(e.Subject())
	}

	return Verify(e, success, m.FailureMessage(e.Subject()), negatedMessage)
}

// wantArgs enforces exact matcher arity; a mismatch is an authoring failure.
func wantArgs(name string, args []any, n int) {
	if len(args) != n {
		authoringFailure(name, "%s takes %d argument(s), got %d", name, n, len(args))
	}
}

// shallowEqual compares with == when both values are comparable, falling
// back to DeepEqual for uncomparable types.
func shallowEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return val.IsNil()
	default:
		return false
	}
}

// isTruthy follows the convention that only nil and false are falsy.
func isTruthy(v any) bool {
	if isNil(v) {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	return true
}

func numericSubject(name string, e *Expectation) float64 {
	f, ok := toFloat64(e.Subject())
	if !ok {
		authoringFailure(name, "%s requires a numeric subject, got %T", name, e.Subject())
	}

	return f
}

func numericArg(name string, arg any) float64 {
	f, ok := toFloat64(arg)
	if !ok {
		authoringFailure(name, "%s requires numeric arguments, got %T", name, arg)
	}

	return f
}

func toFloat64(v any) (float64, bool) {
	val := reflect.ValueOf(v)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	default:
		return 0, false
	}
}

// equalFailureMessage renders a mismatch; multi-line strings get a unified
// diff instead of two inlined blobs.
func equalFailureMessage(expected, actual any) string {
	expectedStr, expectedOK := expected.(string)
	actualStr, actualOK := actual.(string)

	if expectedOK && actualOK && (strings.Contains(expectedStr, "\n") || strings.Contains(actualStr, "\n")) {
		return "values differ:\n" + textdiff.Unified("expected", "actual", expectedStr, actualStr)
	}

	return fmt.Sprintf("expected %s to equal %s", formatValue(actual), formatValue(expected))
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	return fmt.Sprintf("%v", v)
}
