package core

// Modifier alters whether and how a test or suite runs.
type Modifier int

const (
	// ModifierNone runs the node normally.
	ModifierNone Modifier = iota
	// ModifierSkip excludes the node from execution.
	ModifierSkip
	// ModifierOnly focuses execution on this node; once any node in the tree
	// carries it, every test outside a focused subtree is skipped.
	ModifierOnly
	// ModifierTodo marks a test as planned but unimplemented; its body, if
	// any, never runs.
	ModifierTodo
)

// String returns the declaration-surface name of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierSkip:
		return "skip"
	case ModifierOnly:
		return "only"
	case ModifierTodo:
		return "todo"
	default:
		return "unknown"
	}
}

// node is either a *Suite or a *Test.
type node interface {
	nodeName() string
}

// Suite is a named grouping of tests and nested suites with lifecycle hooks.
// The tree is built during the declaration pass and frozen by Run.
type Suite struct {
	name     string
	parent   *Suite // back-reference for hook-chain resolution, not ownership
	modifier Modifier
	children []node

	beforeAll  []func()
	afterAll   []func()
	beforeEach []func()
	afterEach  []func()
}

func (s *Suite) nodeName() string { return s.name }

// Test is a single runnable leaf, or a dataset-driven group of leaves.
type Test struct {
	name     string
	parent   *Suite
	modifier Modifier
	body     func()
	dataset  []Case // nil unless declared via Each
}

func (t *Test) nodeName() string { return t.name }

// Case is one expansion of a dataset-driven test. Body closes over the typed
// dataset entry; Name is the leaf's display name.
type Case struct {
	Name string
	Body func()
}

// CaseNamer lets a dataset entry name its own case; entries that don't
// implement it get an index-suffixed name.
type CaseNamer interface {
	CaseName() string
}

// hasFocus reports whether any node in the subtree carries ModifierOnly.
func hasFocus(s *Suite) bool {
	if s.modifier == ModifierOnly {
		return true
	}

	for _, child := range s.children {
		switch c := child.(type) {
		case *Suite:
			if hasFocus(c) {
				return true
			}
		case *Test:
			if c.modifier == ModifierOnly {
				return true
			}
		}
	}

	return false
}

// isFocused reports whether the test or one of its ancestors carries only.
func isFocused(t *Test) bool {
	if t.modifier == ModifierOnly {
		return true
	}

	for s := t.parent; s != nil; s = s.parent {
		if s.modifier == ModifierOnly {
			return true
		}
	}

	return false
}

// isSkipped reports whether the test or one of its ancestors carries skip.
// An ancestor skip wins over a local only.
func isSkipped(t *Test) bool {
	if t.modifier == ModifierSkip {
		return true
	}

	for s := t.parent; s != nil; s = s.parent {
		if s.modifier == ModifierSkip {
			return true
		}
	}

	return false
}

// collectBeforeEach returns the beforeEach chain for a suite, root to leaf.
func collectBeforeEach(s *Suite) []func() {
	if s == nil {
		return nil
	}

	return append(collectBeforeEach(s.parent), s.beforeEach...)
}

// collectAfterEach returns the afterEach chain for a suite, leaf to root.
func collectAfterEach(s *Suite) []func() {
	var hooks []func()

	for ; s != nil; s = s.parent {
		hooks = append(hooks, s.afterEach...)
	}

	return hooks
}
