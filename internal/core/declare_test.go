package core_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/trialhq/trial"
)

// TestDeclare_OrderPreserved verifies children run and report in declaration
// order.
func TestDeclare_OrderPreserved(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.Describe("alpha", func() {
		runner.It("a1", func() {})
		runner.Describe("beta", func() {
			runner.It("b1", func() {})
		})
		runner.It("a2", func() {})
	})

	tree, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())

	alpha := tree.Root.Children[0]
	g.Expect(alpha.Children).To(HaveLen(3))
	g.Expect(alpha.Children[0].Name).To(Equal("a1"))
	g.Expect(alpha.Children[1].Name).To(Equal("beta"))
	g.Expect(alpha.Children[1].IsSuite).To(BeTrue())
	g.Expect(alpha.Children[2].Name).To(Equal("a2"))
}

// TestDeclare_TopLevelTests verifies tests outside any Describe land in an
// implicit root suite.
func TestDeclare_TopLevelTests(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.It("rootless", func() {})

	tree, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Root.IsSuite).To(BeTrue())
	g.Expect(tree.Root.Children[0].Name).To(Equal("rootless"))
	g.Expect(tree.Root.Children[0].Status).To(Equal(trial.StatusPassed))
}

// TestDeclare_NilBodyIsFatal verifies a bodyless test is a declaration-time
// fatal surfaced by Run, since the tree is unusable.
func TestDeclare_NilBodyIsFatal(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.It("empty", nil)

	_, err := runner.Run()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring(`test "empty" has no body`))
}

// TestDeclare_EmptyDatasetIsFatal verifies an it.each with nothing to expand
// is rejected at declaration time.
func TestDeclare_EmptyDatasetIsFatal(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	trial.Each(runner, []int{}, "vacuous", func(int) {})

	_, err := runner.Run()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring(`dataset for "vacuous" is empty`))
}

// TestDeclare_PanicDuringDeclaration verifies a panic while declaring a
// suite aborts the run as a declaration fatal instead of crashing.
func TestDeclare_PanicDuringDeclaration(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	runner := newRunner()
	runner.Describe("malformed", func() {
		panic("bad declaration")
	})

	_, err := runner.Run()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("bad declaration"))
}

// TestDeclare_HooksAttachToCurrentSuite verifies hooks registered inside a
// Describe only wrap that suite's tests.
func TestDeclare_HooksAttachToCurrentSuite(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var order []string

	runner := newRunner()
	runner.Describe("with hooks", func() {
		runner.BeforeEach(func() { order = append(order, "setup") })
		runner.It("inside", func() { order = append(order, "inside") })
	})
	runner.It("outside", func() { order = append(order, "outside") })

	_, err := runner.Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(order).To(Equal([]string{"setup", "inside", "outside"}))
}
