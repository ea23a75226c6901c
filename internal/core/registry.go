// Package core provides the internal implementation of trial's suite tree,
// expectation dispatch, and execution engine.
package core

import "sync"

// MatchResult is what a matcher function reports back to the dispatcher.
// FailureMessage is used when the positive sense fails, NegatedFailureMessage
// when the negated sense fails, so one implementation serves both
// Expect(x).ToBe(y) and Expect(x).Not().ToBe(y).
type MatchResult struct {
	Ok                    bool
	FailureMessage        string
	NegatedFailureMessage string
	// Expected and Actual are optional diagnostic payloads; set HasValues
	// when they are meaningful.
	Expected  any
	Actual    any
	HasValues bool
}

// MatcherFunc is a named predicate over an expectation's subject. Arguments
// are the call-site arguments of the terminal matcher call.
type MatcherFunc func(e *Expectation, args ...any) MatchResult

// Registry maps matcher names to implementations. Names are case-sensitive
// and unique; re-registering a name overwrites the previous entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]MatcherFunc
}

// NewRegistry creates a registry pre-seeded with the built-in matchers.
func NewRegistry() *Registry {
	reg := &Registry{entries: make(map[string]MatcherFunc)}
	registerBuiltins(reg)

	return reg
}

// Register stores fn under name, overwriting any previous entry. Last write
// wins; this is what lets user code rebind a built-in.
func (r *Registry) Register(name string, fn MatcherFunc) {
	r.mu.Lock()
	r.entries[name] = fn
	r.mu.Unlock()
}

// Resolve looks up the matcher registered under name.
func (r *Registry) Resolve(name string) (MatcherFunc, bool) {
	r.mu.RLock()
	fn, ok := r.entries[name]
	r.mu.RUnlock()

	return fn, ok
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Process-wide default registry is intentional
	defaultRegistry *Registry
	//nolint:gochecknoglobals // Guards lazy init of the default registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by the package-level
// Expect and ExtendExpect surfaces and by runners that don't bring their own.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}
