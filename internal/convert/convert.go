// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a directory of tracker modules into C headers, one
// <name>.h per module, declaring <name>_size and <name>[].
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/tracker-embed/internal/header"
	"github.com/pdiddy/tracker-embed/pkg/types"
)

// headerExt is the extension of generated files.
const headerExt = ".h"

// ErrNoInputDir is returned when no input directory is configured.
var ErrNoInputDir = errors.New("input directory required")

// Recorder receives every successful conversion. The catalog implements it.
type Recorder interface {
	Record(ctx context.Context, c types.Conversion) error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Skipped   int

	// Conversions lists converted modules in processing order.
	Conversions []types.Conversion
}

// Total returns the number of candidate files seen.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped
}

// Candidate is a directory entry whose extension matched. Err is set when
// the filename could not be split into a base name and an extension.
type Candidate struct {
	File types.ModuleFile
	Err  error
}

// Scan lists the regular files in dir whose name ends in one of exts
// (compared case-insensitively), in lexical order.
func Scan(dir string, exts []string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	if len(exts) == 0 {
		exts = []string{types.DefaultExtension}
	}

	var out []Candidate
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		filename := entry.Name()
		if !hasExt(filename, exts) {
			continue
		}
		path := filepath.Join(dir, filename)
		name, ext, err := header.ParseName(filename)
		out = append(out, Candidate{
			File: types.ModuleFile{Path: path, Name: name, Ext: ext},
			Err:  err,
		})
	}
	return out, nil
}

func hasExt(filename string, exts []string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" && strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

func headerPath(outDir, name string) string {
	return filepath.Join(outDir, name+headerExt)
}

// ConvertModule reads the module, renders its header and writes it to
// outDir/<name>.h, replacing any existing file.
func ConvertModule(mf types.ModuleFile, outDir string, cfg types.ConvertConfig) (types.Conversion, error) {
	data, err := os.ReadFile(mf.Path)
	if err != nil {
		return types.Conversion{}, fmt.Errorf("reading module %s: %w", mf.Path, err)
	}

	symbol := mf.Name
	if cfg.Sanitize {
		symbol = header.Symbol(mf.Name)
	}
	h := header.Render(symbol, data, cfg.PerLine)

	outPath := headerPath(outDir, mf.Name)
	if err := os.WriteFile(outPath, []byte(h.Text), 0o644); err != nil {
		return types.Conversion{}, fmt.Errorf("writing header %s: %w", outPath, err)
	}

	sum := sha256.Sum256(data)
	return types.Conversion{
		Name:        mf.Name,
		Symbol:      h.Symbol,
		SourcePath:  mf.Path,
		HeaderPath:  outPath,
		Size:        h.Size,
		SHA256:      hex.EncodeToString(sum[:]),
		ConvertedAt: time.Now().UTC(),
	}, nil
}

// ConvertBatch converts every matching module in cfg.InputDir, printing
// per-file status to w. Malformed filenames are reported and skipped, as
// are modules whose header was already generated by an earlier module in
// the same batch (song.mod and song.xm both map to song.h). The
// first read, write or record failure stops the batch; the result up to
// that point is returned alongside the error. rec may be nil.
func ConvertBatch(ctx context.Context, cfg types.ConvertConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	var result BatchResult
	if cfg.InputDir == "" {
		return result, ErrNoInputDir
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = cfg.InputDir
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	candidates, err := Scan(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return result, err
	}

	// Header path -> module that produced it in this batch. A header written
	// earlier in the run is never replaced by a later module.
	generated := make(map[string]string)

	for _, c := range candidates {
		base := filepath.Base(c.File.Path)
		if c.Err != nil {
			fmt.Fprintf(w, "skipped: %s (%v)\n", base, header.ErrMalformedName)
			result.Skipped++
			continue
		}

		outPath := headerPath(outDir, c.File.Name)
		if prev, ok := generated[outPath]; ok {
			fmt.Fprintf(w, "skipped: %s (header %s already generated from %s)\n", base, filepath.Base(outPath), prev)
			result.Skipped++
			continue
		}

		conv, err := ConvertModule(c.File, outDir, cfg)
		if err != nil {
			return result, err
		}
		if rec != nil {
			if err := rec.Record(ctx, conv); err != nil {
				return result, fmt.Errorf("recording %s: %w", base, err)
			}
		}

		fmt.Fprintf(w, "converted: %s -> %s (%d bytes)\n", base, filepath.Base(conv.HeaderPath), conv.Size)
		generated[outPath] = base
		result.Converted++
		result.Conversions = append(result.Conversions, conv)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped (total: %d)\n",
		result.Converted, result.Skipped, result.Total())
	return result, nil
}
