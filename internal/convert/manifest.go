// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tracker-embed/pkg/types"
)

// Manifest is the on-disk record of one batch run. It lists what was
// generated so a build system can depend on the headers without rescanning.
type Manifest struct {
	InputDir  string             `yaml:"input_dir"`
	OutputDir string             `yaml:"output_dir"`
	Summary   ManifestSummary    `yaml:"summary"`
	Entries   []types.Conversion `yaml:"entries"`
}

// ManifestSummary stores batch counts and a timestamp.
type ManifestSummary struct {
	Converted int       `yaml:"converted"`
	Skipped   int       `yaml:"skipped"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteManifest saves the batch result as YAML at path, creating parent
// directories as needed.
func WriteManifest(path string, cfg types.ConvertConfig, result BatchResult) error {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = cfg.InputDir
	}
	m := Manifest{
		InputDir:  cfg.InputDir,
		OutputDir: outDir,
		Summary: ManifestSummary{
			Converted: result.Converted,
			Skipped:   result.Skipped,
			Timestamp: time.Now().UTC(),
		},
		Entries: result.Conversions,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest previously written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// VerifyResult holds the outcome of checking a manifest against disk.
type VerifyResult struct {
	OK      int
	Stale   int
	Missing int
}

// HasProblems reports whether any entry is stale or missing.
func (r VerifyResult) HasProblems() bool {
	return r.Stale > 0 || r.Missing > 0
}

// VerifyManifest checks every manifest entry against the filesystem: the
// module must still hash to the recorded SHA-256 and the header must still
// declare the recorded size. Per-entry status goes to w.
func VerifyManifest(m *Manifest, w io.Writer) VerifyResult {
	var result VerifyResult
	for _, e := range m.Entries {
		data, err := os.ReadFile(e.SourcePath)
		if err != nil {
			fmt.Fprintf(w, "missing: %s (%v)\n", e.SourcePath, err)
			result.Missing++
			continue
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != e.SHA256 {
			fmt.Fprintf(w, "stale:   %s (module changed since %s)\n", e.Name, e.ConvertedAt.Format(time.RFC3339))
			result.Stale++
			continue
		}

		text, err := os.ReadFile(e.HeaderPath)
		if err != nil {
			fmt.Fprintf(w, "missing: %s (%v)\n", e.HeaderPath, err)
			result.Missing++
			continue
		}
		decl := fmt.Sprintf("const uint32_t %s_size = %d;", e.Symbol, e.Size)
		if !strings.Contains(string(text), decl) {
			fmt.Fprintf(w, "stale:   %s (header does not declare %d bytes)\n", e.Name, e.Size)
			result.Stale++
			continue
		}

		fmt.Fprintf(w, "ok:      %s\n", e.Name)
		result.OK++
	}
	fmt.Fprintf(w, "\nVerify summary: %d ok, %d stale, %d missing\n", result.OK, result.Stale, result.Missing)
	return result
}
