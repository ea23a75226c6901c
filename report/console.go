// Package report renders finished result trees. The engine only produces the
// tree; this package is one consumer of it and never mutates it.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/trialhq/trial"
)

// Console renders a result tree as an indented text listing with a summary
// line. With verbose off, only failed tests and their enclosing suites are
// listed; with verbose on, every node is.
type Console struct {
	out     io.Writer
	verbose bool
	styles  styles
}

type styles struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	skip    lipgloss.Style
	todo    lipgloss.Style
	suite   lipgloss.Style
	detail  lipgloss.Style
	summary lipgloss.Style
}

// NewConsole creates a console reporter writing to out.
func NewConsole(out io.Writer, verbose, colors bool) *Console {
	c := &Console{out: out, verbose: verbose}

	if colors {
		c.styles = styles{
			pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			skip:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Faint(true),
			todo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			suite:   lipgloss.NewStyle().Bold(true),
			detail:  lipgloss.NewStyle().Faint(true),
			summary: lipgloss.NewStyle().Bold(true),
		}
	}

	return c
}

// Report renders the tree. It implements trial.Reporter.
func (c *Console) Report(tree *trial.ResultTree) {
	for _, child := range tree.Root.Children {
		c.renderNode(child, 0)
	}

	s := tree.Summary
	line := fmt.Sprintf("%d passed, %d failed, %d skipped, %d todo (%d total) in %v",
		s.Passed, s.Failed, s.Skipped, s.Todo, s.Total(), tree.Duration.Round(time.Millisecond))

	fmt.Fprintln(c.out, c.styles.summary.Render(line))
}

func (c *Console) renderNode(node *trial.ResultNode, depth int) {
	if !c.verbose && !containsFailure(node) {
		return
	}

	indent := strings.Repeat("  ", depth)

	if node.IsSuite {
		fmt.Fprintf(c.out, "%s%s\n", indent, c.styles.suite.Render(node.Name))

		if node.Failure != nil {
			c.renderFailure(node.Failure, depth+1)
		}

		for _, child := range node.Children {
			c.renderNode(child, depth+1)
		}

		return
	}

	fmt.Fprintf(c.out, "%s%s %s\n", indent, c.glyph(node), node.Name)

	if node.Failure != nil {
		c.renderFailure(node.Failure, depth+1)
	}

	if node.SkipReason != "" && c.verbose {
		fmt.Fprintf(c.out, "%s  %s\n", indent, c.styles.detail.Render("("+node.SkipReason+")"))
	}
}

func (c *Console) renderFailure(failure *trial.Failure, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, line := range strings.Split(failure.Message, "\n") {
		fmt.Fprintf(c.out, "%s%s\n", indent, c.styles.fail.Render(line))
	}

	if failure.HasValues {
		fmt.Fprintf(c.out, "%s%s\n", indent, c.styles.detail.Render(fmt.Sprintf("expected: %v", failure.Expected)))
		fmt.Fprintf(c.out, "%s%s\n", indent, c.styles.detail.Render(fmt.Sprintf("actual:   %v", failure.Actual)))
	}
}

func (c *Console) glyph(node *trial.ResultNode) string {
	switch node.Status {
	case trial.StatusPassed:
		return c.styles.pass.Render("PASS")
	case trial.StatusFailed:
		return c.styles.fail.Render("FAIL")
	case trial.StatusSkipped:
		return c.styles.skip.Render("SKIP")
	case trial.StatusTodo:
		return c.styles.todo.Render("TODO")
	default:
		return "????"
	}
}

// containsFailure reports whether the node or any descendant failed.
func containsFailure(node *trial.ResultNode) bool {
	if node.Status == trial.StatusFailed {
		return true
	}

	for _, child := range node.Children {
		if containsFailure(child) {
			return true
		}
	}

	return false
}
