package report_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/trialhq/trial"
	"github.com/trialhq/trial/report"
)

func runSample(t *testing.T) *trial.ResultTree {
	t.Helper()

	runner := trial.NewRunnerWith(trial.NewRegistry(), nil)
	runner.Describe("Math", func() {
		runner.It("adds", func() { runner.Expect(2 + 2).ToBe(4) })
		runner.It("subtracts", func() { runner.Expect(5 - 3).ToBe(1) })
		runner.ItSkip("divides", func() {})
	})

	tree, err := runner.Run()
	if err != nil {
		t.Fatalf("sample run failed: %v", err)
	}

	return tree
}

// TestConsole_Verbose verifies every node and the summary line are rendered.
func TestConsole_Verbose(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tree := runSample(t)

	var buf bytes.Buffer
	report.NewConsole(&buf, true, false).Report(tree)

	out := buf.String()
	g.Expect(out).To(ContainSubstring("Math"))
	g.Expect(out).To(ContainSubstring("PASS adds"))
	g.Expect(out).To(ContainSubstring("FAIL subtracts"))
	g.Expect(out).To(ContainSubstring("SKIP divides"))
	g.Expect(out).To(ContainSubstring("expected 2 to be 1"))
	g.Expect(out).To(ContainSubstring("1 passed, 1 failed, 1 skipped, 0 todo (3 total)"))
}

// TestConsole_QuietShowsOnlyFailures verifies the default mode lists failing
// tests and the summary, nothing else.
func TestConsole_QuietShowsOnlyFailures(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tree := runSample(t)

	var buf bytes.Buffer
	report.NewConsole(&buf, false, false).Report(tree)

	out := buf.String()
	g.Expect(out).To(ContainSubstring("FAIL subtracts"))
	g.Expect(out).NotTo(ContainSubstring("adds"))
	g.Expect(out).NotTo(ContainSubstring("divides"))
	g.Expect(out).To(ContainSubstring("1 passed, 1 failed"))
}

// TestConsole_DoesNotMutateTree verifies the reporter is a pure consumer.
func TestConsole_DoesNotMutateTree(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tree := runSample(t)
	before := *tree
	beforeSummary := tree.Summary

	var buf bytes.Buffer
	report.NewConsole(&buf, true, false).Report(tree)

	g.Expect(tree.Summary).To(Equal(beforeSummary))
	g.Expect(tree.Root).To(BeIdenticalTo(before.Root))
}
