// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/tracker-embed/pkg/types"
)

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "song.xm", []byte{0, 255, 7})
	writeModule(t, dir, "theme.xm", []byte{1})

	cfg := types.ConvertConfig{InputDir: dir}
	var log bytes.Buffer
	result, err := ConvertBatch(context.Background(), cfg, nil, &log)
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}

	path := filepath.Join(dir, "build", "manifest.yaml")
	if err := WriteManifest(path, cfg, result); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if !strings.Contains(string(data), "sha256:") {
		t.Error("manifest should record checksums")
	}

	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.OutputDir != dir {
		t.Errorf("output_dir = %q, want %q", m.OutputDir, dir)
	}
	if m.Summary.Converted != 2 {
		t.Errorf("converted = %d, want 2", m.Summary.Converted)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.Entries))
	}
	if m.Entries[0].Name != "song" || m.Entries[0].Size != 3 {
		t.Errorf("first entry = %+v, want song with 3 bytes", m.Entries[0])
	}
	if m.Entries[1].HeaderPath != filepath.Join(dir, "theme.h") {
		t.Errorf("header = %q", m.Entries[1].HeaderPath)
	}
}

func TestReadManifestMissing(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestVerifyManifest(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "song.xm", []byte{0, 255, 7})
	writeModule(t, dir, "theme.xm", []byte{1})
	writeModule(t, dir, "intro.xm", []byte{2, 2})

	cfg := types.ConvertConfig{InputDir: dir}
	var log bytes.Buffer
	result, err := ConvertBatch(context.Background(), cfg, nil, &log)
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}
	path := filepath.Join(dir, "manifest.yaml")
	if err := WriteManifest(path, cfg, result); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}

	var out bytes.Buffer
	if vr := VerifyManifest(m, &out); vr.HasProblems() || vr.OK != 3 {
		t.Fatalf("fresh manifest: %+v\n%s", vr, out.String())
	}

	// Change one module, delete one header.
	writeModule(t, dir, "theme.xm", []byte{1, 1})
	if err := os.Remove(filepath.Join(dir, "intro.h")); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	vr := VerifyManifest(m, &out)
	if vr.OK != 1 || vr.Stale != 1 || vr.Missing != 1 {
		t.Errorf("result = %+v, want 1 ok, 1 stale, 1 missing", vr)
	}
	if !vr.HasProblems() {
		t.Error("HasProblems should be true")
	}
	if !strings.Contains(out.String(), "stale:   theme") {
		t.Errorf("output %q should report theme as stale", out.String())
	}
	if !strings.Contains(out.String(), "intro.h") {
		t.Errorf("output %q should name the missing header", out.String())
	}
}
