package core

import "time"

// Status is the terminal state of a result node.
type Status int

const (
	// StatusPassed means the test ran and every assertion held.
	StatusPassed Status = iota
	// StatusFailed means an assertion, hook, timeout, or panic failed it.
	StatusFailed
	// StatusSkipped means the test never ran: skip modifier, only filter,
	// or an aborted run.
	StatusSkipped
	// StatusTodo means the test is declared but unimplemented.
	StatusTodo
)

// String returns the reporting name of the status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusTodo:
		return "todo"
	default:
		return "unknown"
	}
}

// ResultNode mirrors the shape of the test tree for one run. Suites (and
// dataset-driven tests, which expand into one leaf per entry) carry children;
// leaves carry the outcome of a single test body.
//
// Durations follow the suite-inclusive convention: a suite's duration is the
// wall clock over its whole activation, hooks included; a leaf's duration
// covers its body only.
type ResultNode struct {
	Name     string
	IsSuite  bool
	Status   Status
	Duration time.Duration
	// Failure is set when Status is StatusFailed.
	Failure *Failure
	// SkipReason distinguishes why a skipped test never ran ("aborted" after
	// a stop-on-first-failure halt, "only filter", ...).
	SkipReason string
	Children   []*ResultNode
}

// Summary counts leaf outcomes for one run.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
	Todo    int
}

// Total returns the number of leaves counted.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped + s.Todo
}

// ResultTree is the contract handed to reporters: the root result, leaf
// counts, and total duration. Reporters are consumers only and must not
// mutate it.
type ResultTree struct {
	Root     *ResultNode
	Summary  Summary
	Duration time.Duration
}

// Reporter consumes a finished result tree. Rendering lives outside the
// engine; the report package provides a console implementation.
type Reporter interface {
	Report(tree *ResultTree)
}

// aggregate folds child statuses into a suite status: failed if any child
// failed, else passed. An empty suite passes trivially, and a suite of only
// skipped or todo children counts as passed.
func aggregate(children []*ResultNode) Status {
	for _, child := range children {
		if child.Status == StatusFailed {
			return StatusFailed
		}
	}

	return StatusPassed
}

// buildTree assembles the reporter contract from a finished root node.
func buildTree(root *ResultNode) *ResultTree {
	tree := &ResultTree{Root: root, Duration: root.Duration}
	countLeaves(root, &tree.Summary)

	return tree
}

func countLeaves(node *ResultNode, summary *Summary) {
	if node.IsSuite {
		for _, child := range node.Children {
			countLeaves(child, summary)
		}

		return
	}

	switch node.Status {
	case StatusPassed:
		summary.Passed++
	case StatusFailed:
		summary.Failed++
	case StatusSkipped:
		summary.Skipped++
	case StatusTodo:
		summary.Todo++
	}
}
