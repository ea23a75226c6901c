package trial_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/trialhq/trial"
)

// TestDefaultRunner_Scenario exercises the package-level declaration surface
// end to end. It is the only test that touches the default runner, so it
// can't interleave with parallel declaration from other tests.
func TestDefaultRunner_Scenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var order []string

	trial.Describe("Math", func() {
		trial.BeforeEach(func() { order = append(order, "setup") })
		trial.It("adds", func() {
			order = append(order, "adds")
			trial.Expect(2 + 2).ToBe(4)
		})
		trial.ItTodo("multiplies")
	})
	trial.EachIt([]int{2, 4}, "evens", func(n int) {
		trial.Expect(n % 2).ToBe(0)
	})

	tree, err := trial.Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(order).To(Equal([]string{"setup", "adds"}))
	g.Expect(tree.Summary).To(Equal(trial.Summary{Passed: 3, Todo: 1}))
	g.Expect(tree.Duration).To(BeNumerically(">", 0))

	// Run installed a fresh declaration pass: declaring again is legal and
	// the old tree is gone.
	trial.It("new pass", func() {})

	tree, err = trial.Run()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Summary.Total()).To(Equal(1))

	// Declaring through the package-level surface from inside a running test
	// fails that test instead of leaking into the next declaration pass.
	trial.It("declares too late", func() {
		trial.It("stowaway", func() {})
	})

	tree, err = trial.Run()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Root.Children).To(HaveLen(1))
	g.Expect(tree.Root.Children[0].Status).To(Equal(trial.StatusFailed))
	g.Expect(tree.Root.Children[0].Failure.Kind).To(Equal(trial.FailureAuthoring))

	// The stowaway never reached the following pass.
	tree, err = trial.Run()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tree.Summary.Total()).To(Equal(0))
}
