package core

import (
	"fmt"
)

type phase int

const (
	phaseDeclaring phase = iota
	phaseRunning
	phaseDone
)

// Runner owns one declaration pass and one execution of the resulting tree.
// Independent runners hold independent trees, so a process can build and run
// several in isolation (this package's own tests do exactly that).
type Runner struct {
	registry *Registry
	timer    Timer
	root     *Suite
	stack    []*Suite // declaration-time "current suite" stack; root at bottom
	phase    phase
	declErr  error // first declaration-time fatal, surfaced by Run
}

// NewRunner creates a runner over the process-wide default registry with the
// real clock.
func NewRunner() *Runner {
	return NewRunnerWith(DefaultRegistry(), realTimer{})
}

// NewRunnerWith creates a runner with its own registry and timer. Tests use
// this to inject a fake timer and an isolated matcher set. A nil timer means
// the real clock.
func NewRunnerWith(registry *Registry, timer Timer) *Runner {
	if timer == nil {
		timer = realTimer{}
	}

	root := &Suite{name: ""}

	return &Runner{
		registry: registry,
		timer:    timer,
		root:     root,
		stack:    []*Suite{root},
	}
}

// Expect wraps a value for assertion against this runner's registry.
func (r *Runner) Expect(subject any) *Expectation {
	return NewExpectation(r.registry, subject)
}

// Registry returns the matcher registry this runner dispatches against.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// current returns the suite declarations attach to.
func (r *Runner) current() *Suite {
	return r.stack[len(r.stack)-1]
}

// guard enforces that declaration calls happen during the declaration pass.
// A call during execution panics with an authoring failure, which the engine
// attributes to the running test; a call after Run escapes to the caller.
func (r *Runner) guard(operation string) {
	if r.phase != phaseDeclaring {
		authoringFailure("", "%s called outside the declaration pass; declare suites and tests before Run", operation)
	}
}

// setDeclErr records the first declaration-time fatal. The tree is unusable,
// so Run refuses to execute it.
func (r *Runner) setDeclErr(format string, args ...any) {
	if r.declErr == nil {
		r.declErr = fmt.Errorf(format, args...)
	}
}

// Describe declares a nested suite and runs body synchronously to collect
// its children.
func (r *Runner) Describe(name string, body func()) {
	r.describe(name, body, ModifierNone)
}

// DescribeSkip declares a suite whose tests are all skipped.
func (r *Runner) DescribeSkip(name string, body func()) {
	r.describe(name, body, ModifierSkip)
}

// DescribeOnly declares a focused suite; see ModifierOnly.
func (r *Runner) DescribeOnly(name string, body func()) {
	r.describe(name, body, ModifierOnly)
}

func (r *Runner) describe(name string, body func(), modifier Modifier) {
	r.guard("describe")

	if body == nil {
		r.setDeclErr("suite %q has no body", name)

		return
	}

	suite := &Suite{name: name, parent: r.current(), modifier: modifier}
	r.current().children = append(r.current().children, suite)

	r.stack = append(r.stack, suite)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]

		// A panic while declaring means the tree is malformed; convert it to
		// a declaration-time fatal instead of crashing the caller.
		if rec := recover(); rec != nil {
			r.setDeclErr("declaration of suite %q failed: %s", name, panicMessage(rec))
		}
	}()

	body()
}

// It declares a test under the current suite.
func (r *Runner) It(name string, body func()) {
	r.addTest(name, body, ModifierNone)
}

// Test is an alias for It.
func (r *Runner) Test(name string, body func()) {
	r.It(name, body)
}

// ItSkip declares a test that is recorded but never run.
func (r *Runner) ItSkip(name string, body func()) {
	r.addTest(name, body, ModifierSkip)
}

// ItOnly declares a focused test; see ModifierOnly.
func (r *Runner) ItOnly(name string, body func()) {
	r.addTest(name, body, ModifierOnly)
}

// ItTodo declares a planned test. Any supplied body is ignored and never
// invoked; the test always reports todo.
func (r *Runner) ItTodo(name string, body ...func()) {
	r.guard("it.todo")

	test := &Test{name: name, parent: r.current(), modifier: ModifierTodo}
	r.current().children = append(r.current().children, test)
}

func (r *Runner) addTest(name string, body func(), modifier Modifier) {
	r.guard("it")

	if body == nil {
		r.setDeclErr("test %q has no body", name)

		return
	}

	test := &Test{name: name, parent: r.current(), modifier: modifier, body: body}
	r.current().children = append(r.current().children, test)
}

// Each declares one dataset-driven test: at execution time it expands into
// one leaf per entry, each invoking body with that entry. Entries name their
// leaf via CaseNamer, or get an index-suffixed name.
func Each[T any](r *Runner, dataset []T, name string, body func(T)) {
	r.guard("it.each")

	if body == nil {
		r.setDeclErr("test %q has no body", name)

		return
	}

	if len(dataset) == 0 {
		r.setDeclErr("dataset for %q is empty", name)

		return
	}

	cases := make([]Case, len(dataset))

	for i, entry := range dataset {
		caseName := fmt.Sprintf("%s [%d]", name, i)
		if namer, ok := any(entry).(CaseNamer); ok {
			caseName = namer.CaseName()
		}

		cases[i] = Case{Name: caseName, Body: func() { body(entry) }}
	}

	test := &Test{name: name, parent: r.current(), dataset: cases}
	r.current().children = append(r.current().children, test)
}

// BeforeEach registers a hook run before every test in the current suite and
// its descendants, parent hooks first.
func (r *Runner) BeforeEach(body func()) {
	r.addHook("beforeEach", &r.current().beforeEach, body)
}

// AfterEach registers a hook run after every test in the current suite and
// its descendants, child hooks first.
func (r *Runner) AfterEach(body func()) {
	r.addHook("afterEach", &r.current().afterEach, body)
}

// BeforeAll registers a hook run once before the current suite's children.
func (r *Runner) BeforeAll(body func()) {
	r.addHook("beforeAll", &r.current().beforeAll, body)
}

// AfterAll registers a hook run once after the current suite's children.
func (r *Runner) AfterAll(body func()) {
	r.addHook("afterAll", &r.current().afterAll, body)
}

func (r *Runner) addHook(kind string, list *[]func(), body func()) {
	r.guard(kind)

	if body == nil {
		r.setDeclErr("%s hook has no body", kind)

		return
	}

	*list = append(*list, body)
}
