//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Run all checks on the code.
func Check(c context.Context) error {
	fmt.Println("Checking...")

	mg.SerialCtxDeps(c, Tidy, Test, Lint, Mutate)

	return nil
}

// Tidy tidies up go.mod.
func Tidy(c context.Context) error {
	fmt.Println("Tidying go.mod...")

	return run(c, "go", "mod", "tidy")
}

// Test runs the unit tests with coverage.
func Test(c context.Context) error {
	fmt.Println("Running unit tests...")

	return run(
		c,
		"go",
		"test",
		"-timeout=60s",
		"-race",
		"-coverprofile=coverage.out",
		"-coverpkg=.,./internal/core,./match,./report",
		"-covermode=atomic",
		"./...",
	)
}

// Lint lints the codebase.
func Lint(c context.Context) error {
	fmt.Println("Linting...")

	return run(c, "golangci-lint", "run")
}

// Mutate runs the mutation tests.
func Mutate(c context.Context) error {
	fmt.Println("Running mutation tests...")

	return run(
		c,
		"go",
		"test",
		"-tags=mutation",
		"./...",
		"-run=TestMutation",
	)
}

// Cover prints the per-function coverage from the last Test run.
func Cover(c context.Context) error {
	fmt.Println("Reporting coverage...")

	return run(c, "go", "tool", "cover", "-func=coverage.out")
}

func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
