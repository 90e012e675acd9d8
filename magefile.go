//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir      = "bin"
	coverFile   = "coverage.out"
	versionPkg  = "github.com/dkoosis/ut/internal/version"
	exampleMain = "./cmd/example"
)

// Default target - build the example binary
var Default = Build

// Build builds the example binary with version metadata.
func Build() error {
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	if commit == "" {
		commit = "unknown"
	}
	ldflags := fmt.Sprintf("-X %s.CommitHash=%s", versionPkg, commit)
	if v := os.Getenv("UT_VERSION"); v != "" {
		ldflags += fmt.Sprintf(" -X %s.Version=%s", versionPkg, v)
	}
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binDir+"/ut-example", exampleMain)
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	return sh.Rm(coverFile)
}

// Example runs the demonstration tree. It fails on purpose.
func Example() error {
	err := sh.RunV("go", "run", exampleMain, "--summary")
	if sh.ExitStatus(err) == 1 {
		fmt.Println("example finished with its expected failures")
		return nil
	}
	return err
}

// QA runs formatting, vet, lint and the race-enabled test suite.
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci, Test.Race)
}

type Lint mg.Namespace

// All runs every linter
func (Lint) All() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci)
}

// Format checks gofmt
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint when installed
func (Lint) Golangci() error {
	err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		fmt.Println("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}

type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage writes coverage.out and prints per-function coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverFile)
}

// Race runs tests with the race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Property runs the rapid property tests with more checks
func (Test) Property() error {
	return sh.RunV("go", "test", "./pkg/suite/", "-run", "Random|Twice", "-rapid.checks=1000")
}
