//go:build mage

// Package main contains Mage build targets for tracker-embed developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "tracker-embed"
	cmdPkg  = "./cmd/tracker-embed"
)

// Default target to run when none is specified.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from $VERSION.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + envOr("VERSION", "dev")
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. CGO is required by the SQLite catalog.
func Test() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "./...")
}

// manifestPath is where Embed records the headers it generated ($MANIFEST overrides).
func manifestPath() string {
	return envOr("MANIFEST", filepath.Join(binDir, "music-manifest.yaml"))
}

// Embed converts the modules in $MUSIC_DIR (default assets/music) into
// headers in $INCLUDE_DIR (default: alongside the modules) and writes a
// manifest for Verify.
func Embed() error {
	mg.Deps(Build)

	args := []string{"convert", envOr("MUSIC_DIR", filepath.Join("assets", "music")), "--manifest", manifestPath()}
	if dir := os.Getenv("INCLUDE_DIR"); dir != "" {
		args = append(args, "--out-dir", dir)
	}
	if exts := os.Getenv("MODULE_EXTS"); exts != "" {
		args = append(args, "--ext", exts)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Verify fails when a header generated by Embed is stale or missing.
func Verify() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "verify", manifestPath())
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints Go production and test line counts.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines walks root and counts non-blank lines in Go files, split
// between _test.go files and the rest. Underscore-prefixed directories are
// skipped, as the go tool does.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return sc.Err()
	})
	return prod, test, err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
