package core

import (
	"errors"
	"fmt"
	"time"
)

// Timer abstracts time-based waits so timeouts are testable without sleeping.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// DefaultTimeout is the per-test timeout applied when no option overrides it.
const DefaultTimeout = 5 * time.Second

// Options configure one run. Verbose and Colors are carried for reporters
// and never change engine behavior.
type Options struct {
	StopOnFirstFailure bool
	Verbose            bool
	Colors             bool
	Timeout            time.Duration
}

// Option mutates run Options.
type Option func(*Options)

// WithStopOnFirstFailure halts the run at the first failed test, marking the
// remaining tests skipped with reason "aborted".
func WithStopOnFirstFailure() Option {
	return func(o *Options) { o.StopOnFirstFailure = true }
}

// WithVerbose asks reporters for per-test detail.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithColors asks reporters for colored output.
func WithColors() Option {
	return func(o *Options) { o.Colors = true }
}

// WithTimeout sets the per-test timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// ErrAlreadyRun is returned when Run is called twice on one runner.
var ErrAlreadyRun = errors.New("runner has already executed; declare a new runner for another run")

// skipReasonAborted marks tests never started after a stop-on-first-failure
// halt.
const skipReasonAborted = "aborted"

// Run finalizes the declared tree and executes it: modifiers resolved, hooks
// scheduled around each test, failures isolated to their test, results
// aggregated bottom-up. Nothing escapes Run except declaration-time fatals
// and internal engine errors; every test-scoped problem lands in the tree.
func (r *Runner) Run(opts ...Option) (tree *ResultTree, err error) {
	if r.phase != phaseDeclaring {
		return nil, ErrAlreadyRun
	}

	if r.declErr != nil {
		return nil, fmt.Errorf("declaration failed: %w", r.declErr)
	}

	options := Options{Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	r.phase = phaseRunning
	defer func() { r.phase = phaseDone }()

	// An escaped panic here is a bug in the engine itself; it is the one
	// class of error that aborts the whole run.
	defer func() {
		if rec := recover(); rec != nil {
			tree = nil
			err = fmt.Errorf("internal engine error: %s", panicMessage(rec))
		}
	}()

	eng := &engine{
		opts:    options,
		timer:   r.timer,
		focused: hasFocus(r.root),
	}

	return buildTree(eng.runSuite(r.root)), nil
}

// engine walks a frozen tree depth-first in declaration order. It is
// single-writer over the result tree; the only goroutine it starts is the
// body runner used for the cancellable timeout wait.
type engine struct {
	opts    Options
	timer   Timer
	focused bool // tree-wide only filter, computed once before execution
	aborted bool
}

func (e *engine) runSuite(s *Suite) *ResultNode {
	result := &ResultNode{Name: s.name, IsSuite: true}
	start := time.Now()

	// Suite hooks belong to the tests they set up: a suite none of whose
	// tests will execute (skip, focus filter, todo, or a stop-on-first-failure
	// halt) runs neither beforeAll nor afterAll.
	hooked := !e.aborted && e.hasRunnableTest(s)

	if hooked {
		if failure := e.runHooks("beforeAll", s.beforeAll); failure != nil {
			// Fatal to the subtree: every test that would have run fails
			// without starting; excluded tests keep their skip or todo status.
			e.failSubtree(s, result, failure)
			result.Status = StatusFailed
			result.Duration = time.Since(start)

			return result
		}
	}

	for _, child := range s.children {
		switch c := child.(type) {
		case *Suite:
			result.Children = append(result.Children, e.runSuite(c))
		case *Test:
			result.Children = append(result.Children, e.runTest(c))
		}
	}

	// An afterAll failure is reported on the suite but never rewrites
	// already-recorded child statuses.
	var afterFailure *Failure
	if hooked {
		afterFailure = e.runHooks("afterAll", s.afterAll)
	}

	result.Duration = time.Since(start)
	result.Status = aggregate(result.Children)

	if afterFailure != nil {
		result.Status = StatusFailed
		result.Failure = afterFailure
		e.noteFailure()
	}

	return result
}

// hasRunnableTest reports whether any test in the subtree would reach
// execution under the current modifiers and focus filter.
func (e *engine) hasRunnableTest(s *Suite) bool {
	for _, child := range s.children {
		switch c := child.(type) {
		case *Suite:
			if e.hasRunnableTest(c) {
				return true
			}
		case *Test:
			if e.excludedLeaf(c.name, c) == nil {
				return true
			}
		}
	}

	return false
}

// excludedLeaf returns the result a test receives when modifiers or the
// focus filter keep it from executing, or nil if it would execute.
func (e *engine) excludedLeaf(name string, t *Test) *ResultNode {
	switch {
	case e.focused && !isFocused(t):
		return &ResultNode{Name: name, Status: StatusSkipped, SkipReason: "only filter"}
	case isSkipped(t):
		return &ResultNode{Name: name, Status: StatusSkipped}
	case t.modifier == ModifierTodo:
		return &ResultNode{Name: name, Status: StatusTodo}
	default:
		return nil
	}
}

// failSubtree records a beforeAll failure on the suite and marks every
// contained test that would have run failed without starting it. Tests the
// modifiers or focus filter already excluded keep their skip or todo status.
func (e *engine) failSubtree(s *Suite, result *ResultNode, failure *Failure) {
	result.Failure = failure
	e.noteFailure()

	blame := &Failure{
		Kind:    FailureHook,
		Message: fmt.Sprintf("not run: beforeAll hook of suite %q failed: %s", s.name, failure.Message),
	}

	var mark func(s *Suite, result *ResultNode)
	mark = func(s *Suite, result *ResultNode) {
		for _, child := range s.children {
			switch c := child.(type) {
			case *Suite:
				childResult := &ResultNode{Name: c.name, IsSuite: true}
				mark(c, childResult)
				childResult.Status = aggregate(childResult.Children)
				result.Children = append(result.Children, childResult)
			case *Test:
				leaf := e.excludedLeaf(c.name, c)
				if leaf == nil {
					leaf = &ResultNode{Name: c.name, Status: StatusFailed, Failure: blame}
				}

				result.Children = append(result.Children, leaf)
			}
		}
	}

	mark(s, result)
}

func (e *engine) runTest(t *Test) *ResultNode {
	if t.dataset == nil {
		return e.runLeaf(t.name, t, t.body)
	}

	// A dataset-driven test expands into one leaf per entry, each wrapped in
	// the full hook chain.
	result := &ResultNode{Name: t.name, IsSuite: true}
	start := time.Now()

	for _, c := range t.dataset {
		result.Children = append(result.Children, e.runLeaf(c.Name, t, c.Body))
	}

	result.Duration = time.Since(start)
	result.Status = aggregate(result.Children)

	return result
}

func (e *engine) runLeaf(name string, t *Test, body func()) *ResultNode {
	if e.aborted {
		return &ResultNode{Name: name, Status: StatusSkipped, SkipReason: skipReasonAborted}
	}

	if excluded := e.excludedLeaf(name, t); excluded != nil {
		return excluded
	}

	result := &ResultNode{Name: name}
	e.executeLeaf(t, body, result)

	return result
}

// executeLeaf runs one test body with its hook chain: beforeEach root to
// leaf, the body under timeout, afterEach leaf to root. A failing beforeEach
// fails the test and skips the body and remaining beforeEach hooks, but the
// afterEach chain still runs so suites can clean up observable side effects.
func (e *engine) executeLeaf(t *Test, body func(), result *ResultNode) {
	var failure *Failure

	for _, hook := range collectBeforeEach(t.parent) {
		if f := capture(hook); f != nil {
			failure = hookFailure("beforeEach", f)

			break
		}
	}

	if failure == nil {
		failure, result.Duration = e.runBody(body)
	}

	for _, hook := range collectAfterEach(t.parent) {
		if f := capture(hook); f != nil && failure == nil {
			failure = hookFailure("afterEach", f)
		}
	}

	if failure != nil {
		result.Status = StatusFailed
		result.Failure = failure
		e.noteFailure()

		return
	}

	result.Status = StatusPassed
}

// runBody invokes the body in its own goroutine and waits on whichever comes
// first: completion or the timer. The timeout is best-effort: an
// uncooperative body cannot be preempted, but the engine always regains
// control when the timer fires.
func (e *engine) runBody(body func()) (*Failure, time.Duration) {
	done := make(chan *Failure, 1)
	start := time.Now()

	go func() {
		done <- capture(body)
	}()

	var timeoutChan <-chan time.Time
	if e.opts.Timeout > 0 {
		timeoutChan = e.timer.After(e.opts.Timeout)
	}

	select {
	case failure := <-done:
		return failure, time.Since(start)
	case <-timeoutChan:
		elapsed := time.Since(start)

		return &Failure{
			Kind:    FailureTimeout,
			Message: fmt.Sprintf("test did not complete within %v (elapsed %v)", e.opts.Timeout, elapsed.Round(time.Millisecond)),
		}, elapsed
	}
}

// runHooks executes suite-level hooks in order, stopping at the first
// failure.
func (e *engine) runHooks(kind string, hooks []func()) *Failure {
	for _, hook := range hooks {
		if f := capture(hook); f != nil {
			return hookFailure(kind, f)
		}
	}

	return nil
}

// hookFailure attributes an inner failure to the hook it happened in.
func hookFailure(kind string, inner *Failure) *Failure {
	return &Failure{
		Kind:    FailureHook,
		Matcher: inner.Matcher,
		Message: fmt.Sprintf("%s hook failed: %s", kind, inner.Message),
	}
}

// capture runs fn in a failure-isolated scope: a *Failure panic comes back
// as-is, any other panic becomes a FailurePanic, and nothing propagates.
func capture(fn func()) (failure *Failure) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if f, ok := rec.(*Failure); ok {
			failure = f

			return
		}

		failure = &Failure{Kind: FailurePanic, Message: "panic: " + panicMessage(rec)}
	}()

	fn()

	return nil
}

func (e *engine) noteFailure() {
	if e.opts.StopOnFirstFailure {
		e.aborted = true
	}
}
