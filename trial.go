// Package trial is a test-authoring and execution framework: declare
// hierarchical suites with Describe/It, run them, and assert on values
// through a chainable matcher API.
//
// This is the public API entry point. Implementation lives in internal/core.
package trial

import (
	"sync"
	"time"

	"github.com/trialhq/trial/internal/core"
)

// Runner owns one declaration pass and one execution of the resulting tree.
type Runner = core.Runner

// NewRunner creates a runner over the shared default matcher registry.
func NewRunner() *Runner {
	return core.NewRunner()
}

// NewRunnerWith creates a runner with its own registry and timer.
func NewRunnerWith(registry *Registry, timer Timer) *Runner {
	return core.NewRunnerWith(registry, timer)
}

// Timer abstracts time-based waits for testable timeouts.
type Timer = core.Timer

// Modifier alters whether and how a test runs.
type Modifier = core.Modifier

// Modifiers re-exported from internal/core.
const (
	ModifierNone = core.ModifierNone
	ModifierSkip = core.ModifierSkip
	ModifierOnly = core.ModifierOnly
	ModifierTodo = core.ModifierTodo
)

// CaseNamer lets a dataset entry name its own case.
type CaseNamer = core.CaseNamer

// Options configure one run.
type Options = core.Options

// Option mutates run Options.
type Option = core.Option

// DefaultTimeout is the per-test timeout applied when no option overrides it.
const DefaultTimeout = core.DefaultTimeout

// WithStopOnFirstFailure halts the run at the first failed test.
func WithStopOnFirstFailure() Option {
	return core.WithStopOnFirstFailure()
}

// WithVerbose asks reporters for per-test detail.
func WithVerbose() Option {
	return core.WithVerbose()
}

// WithColors asks reporters for colored output.
func WithColors() Option {
	return core.WithColors()
}

// WithTimeout sets the per-test timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return core.WithTimeout(d)
}

// Status is the terminal state of a result node.
type Status = core.Status

// Statuses re-exported from internal/core.
const (
	StatusPassed  = core.StatusPassed
	StatusFailed  = core.StatusFailed
	StatusSkipped = core.StatusSkipped
	StatusTodo    = core.StatusTodo
)

// ResultNode mirrors the shape of the test tree for one run.
type ResultNode = core.ResultNode

// ResultTree is the contract handed to reporters.
type ResultTree = core.ResultTree

// Summary counts leaf outcomes for one run.
type Summary = core.Summary

// Reporter consumes a finished result tree.
type Reporter = core.Reporter

// Failure is the structured outcome of anything going wrong inside one test.
type Failure = core.Failure

// FailureKind classifies why a test failed.
type FailureKind = core.FailureKind

// Failure kinds re-exported from internal/core.
const (
	FailureAssertion = core.FailureAssertion
	FailureAuthoring = core.FailureAuthoring
	FailureTimeout   = core.FailureTimeout
	FailurePanic     = core.FailurePanic
	FailureHook      = core.FailureHook
)

// ErrAlreadyRun is returned when Run is called twice on one runner.
var ErrAlreadyRun = core.ErrAlreadyRun

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level default runner is intentional
	defaultRunner = core.NewRunner()
	//nolint:gochecknoglobals // Guards the default runner swap in Run
	defaultMu sync.Mutex
)

// Default returns the runner the package-level declaration surface builds
// into. Run swaps in a fresh one, so each declaration pass starts clean.
func Default() *Runner {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return defaultRunner
}

// Describe declares a suite on the default runner.
func Describe(name string, body func()) {
	Default().Describe(name, body)
}

// DescribeSkip declares a suite whose tests are all skipped.
func DescribeSkip(name string, body func()) {
	Default().DescribeSkip(name, body)
}

// DescribeOnly declares a focused suite.
func DescribeOnly(name string, body func()) {
	Default().DescribeOnly(name, body)
}

// It declares a test on the default runner.
func It(name string, body func()) {
	Default().It(name, body)
}

// Test is an alias for It.
func Test(name string, body func()) {
	Default().It(name, body)
}

// ItSkip declares a test that is recorded but never run.
func ItSkip(name string, body func()) {
	Default().ItSkip(name, body)
}

// ItOnly declares a focused test.
func ItOnly(name string, body func()) {
	Default().ItOnly(name, body)
}

// ItTodo declares a planned test; any supplied body is ignored.
func ItTodo(name string, body ...func()) {
	Default().ItTodo(name, body...)
}

// Each declares a dataset-driven test on the runner: one leaf per entry.
func Each[T any](r *Runner, dataset []T, name string, body func(T)) {
	core.Each(r, dataset, name, body)
}

// EachIt declares a dataset-driven test on the default runner.
func EachIt[T any](dataset []T, name string, body func(T)) {
	core.Each(Default(), dataset, name, body)
}

// BeforeEach registers a per-test setup hook on the current suite.
func BeforeEach(body func()) {
	Default().BeforeEach(body)
}

// AfterEach registers a per-test teardown hook on the current suite.
func AfterEach(body func()) {
	Default().AfterEach(body)
}

// BeforeAll registers a once-per-suite setup hook on the current suite.
func BeforeAll(body func()) {
	Default().BeforeAll(body)
}

// AfterAll registers a once-per-suite teardown hook on the current suite.
func AfterAll(body func()) {
	Default().AfterAll(body)
}

// Run executes the default runner's declared tree, then installs a fresh
// default runner for the next declaration pass. The swap happens after the
// run so a package-level declaration made from inside a test body reaches
// the running runner and fails that test as a framework-misuse error.
func Run(opts ...Option) (*ResultTree, error) {
	defaultMu.Lock()
	runner := defaultRunner
	defaultMu.Unlock()

	tree, err := runner.Run(opts...)

	defaultMu.Lock()
	if defaultRunner == runner {
		defaultRunner = core.NewRunner()
	}
	defaultMu.Unlock()

	return tree, err
}
