package core_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/trialhq/trial"
)

// TestResult_SummaryCounts verifies leaf counting across every status.
func TestResult_SummaryCounts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.Describe("mixed", func() {
		runner.It("passes", func() {})
		runner.It("fails", func() { runner.Expect(1).ToBe(2) })
		runner.ItSkip("skipped", func() {})
		runner.ItTodo("todo")
	})

	tree, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Summary).To(Equal(trial.Summary{Passed: 1, Failed: 1, Skipped: 1, Todo: 1}))
	g.Expect(tree.Summary.Total()).To(Equal(4))
}

// TestResult_SuiteAggregation verifies a suite fails if any descendant
// failed, and a suite of only skipped and todo leaves passes.
func TestResult_SuiteAggregation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.Describe("quiet", func() {
		runner.ItSkip("skipped", func() {})
		runner.ItTodo("todo")
	})
	runner.Describe("deep failure", func() {
		runner.Describe("nested", func() {
			runner.It("fails", func() { runner.Expect(true).ToBe(false) })
		})
	})

	tree, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Root.Children[0].Status).To(Equal(trial.StatusPassed))
	g.Expect(tree.Root.Children[1].Status).To(Equal(trial.StatusFailed))
	g.Expect(tree.Root.Status).To(Equal(trial.StatusFailed))
}

// TestResult_StatusStrings pins the reporting names of statuses.
func TestResult_StatusStrings(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(trial.StatusPassed.String()).To(Equal("passed"))
	g.Expect(trial.StatusFailed.String()).To(Equal("failed"))
	g.Expect(trial.StatusSkipped.String()).To(Equal("skipped"))
	g.Expect(trial.StatusTodo.String()).To(Equal("todo"))
}

// TestResult_DurationConvention verifies hook time lands in the suite's
// duration, not the test's.
func TestResult_DurationConvention(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.Describe("timed", func() {
		runner.BeforeEach(func() { busyWork() })
		runner.It("quick", func() {})
	})

	tree, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())

	suite := tree.Root.Children[0]
	g.Expect(suite.Duration).To(BeNumerically(">", suite.Children[0].Duration))
}

// busyWork burns a little real time so duration comparisons have signal.
func busyWork() {
	total := 0
	for i := range 100000 {
		total += i
	}

	if total < 0 {
		panic("unreachable")
	}
}
