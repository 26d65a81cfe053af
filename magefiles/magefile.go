//go:build mage

// Package main contains Mage build targets for freidok developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "freidok"
	cmdPkg  = "./cmd/freidok"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the CLI binary into bin/. The version comes from
// FREIDOK_VERSION or `git describe`.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + buildVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

func buildVersion() string {
	if v := os.Getenv("FREIDOK_VERSION"); v != "" {
		return v
	}
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		return v
	}
	return "dev"
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs lint and tests.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Golden regenerates the exporter golden files.
func Golden() error {
	return sh.RunV("go", "test", "./internal/export/", "-update")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints project metrics: Go production/test LOC and template line count.
func Stats() error {
	prodLines, err := countLines(".", isProdGo)
	if err != nil {
		return err
	}
	testLines, err := countLines(".", isTestGo)
	if err != nil {
		return err
	}
	tmplLines, err := countLines("internal/export/templates", isTemplate)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines (built-in templates):     %d\n", tmplLines)
	return nil
}

func isTestGo(path string) bool { return strings.HasSuffix(path, "_test.go") }

func isProdGo(path string) bool { return filepath.Ext(path) == ".go" && !isTestGo(path) }

func isTemplate(path string) bool { return filepath.Ext(path) == ".tmpl" }

// countLines walks root and counts non-blank lines in files accepted by
// match. Directories starting with "_" or "." are skipped.
func countLines(root string, match func(string) bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !match(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}
