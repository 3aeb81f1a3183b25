// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its output. Flag
// values persist on the package-level commands between runs, so every
// test resets the ones it relies on.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(resetFlag)
	cmd.PersistentFlags().VisitAll(resetFlag)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func resetFlag(f *pflag.Flag) {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		def := strings.Trim(f.DefValue, "[]")
		if def == "" {
			sv.Replace([]string{})
		} else {
			sv.Replace(strings.Split(def, ","))
		}
	} else {
		f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.xm"), []byte{0, 255, 7}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "songxm"), []byte{1}, 0o644))

	out, err := execute(t, "", "convert", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "converted: song.xm -> song.h (3 bytes)")

	data, err := os.ReadFile(filepath.Join(dir, "song.h"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "const uint32_t song_size = 3;")
	assert.NoFileExists(t, filepath.Join(dir, "songxm.h"))
}

func TestConvertCommandRequiresInputDir(t *testing.T) {
	_, err := execute(t, "", "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input directory required")
}

func TestConvertCommandRejectsBadPerLine(t *testing.T) {
	_, err := execute(t, "", "convert", t.TempDir(), "--per-line", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-line")
}

func TestConvertCommandEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tune.mod"), []byte{1, 2}, 0o644))
	t.Setenv("TRACKER_EMBED_CONVERT_EXTENSIONS", "mod")

	out, err := execute(t, "", "convert", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "converted: tune.mod -> tune.h (2 bytes)")
}

func TestConvertCommandEnvExtensionList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xm"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mod"), []byte{2, 3}, 0o644))
	t.Setenv("TRACKER_EMBED_CONVERT_EXTENSIONS", "xm, mod")

	out, err := execute(t, "", "convert", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "converted: a.xm -> a.h (1 bytes)")
	assert.Contains(t, out, "converted: b.mod -> b.h (2 bytes)")
	assert.Contains(t, out, "Batch summary: 2 converted, 0 skipped (total: 2)")
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{in: []string{"xm,mod"}, want: []string{"xm", "mod"}},
		{in: []string{"xm", "mod,it"}, want: []string{"xm", "mod", "it"}},
		{in: []string{" xm , ,s3m "}, want: []string{"xm", "s3m"}},
		{in: nil, want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitList(tt.in), "splitList(%q)", tt.in)
	}
}

func TestConvertCommandPause(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "\n", "convert", dir, "--pause")
	require.NoError(t, err)
	assert.Contains(t, out, "Press enter to exit")
}

func TestConvertThenCatalog(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "catalog.db")
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.xm"), []byte{0, 255, 7}, 0o644))

	_, err := execute(t, "", "convert", dir, "--catalog", db, "--manifest", manifest)
	require.NoError(t, err)
	assert.FileExists(t, manifest)

	out, err := execute(t, "", "catalog", "list", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "song")
	assert.Contains(t, out, "1 conversions")

	out, err = execute(t, "", "catalog", "export", "--catalog", db, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "export.json")
	assert.FileExists(t, filepath.Join(filepath.Dir(db), "export.json"))

	_, err = execute(t, "", "catalog", "export", "--catalog", db, "--format", "csv")
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.xm"), []byte{0, 255, 7}, 0o644))

	_, err := execute(t, "", "convert", dir, "--manifest", manifest)
	require.NoError(t, err)

	out, err := execute(t, "", "verify", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "Verify summary: 1 ok, 0 stale, 0 missing")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.xm"), []byte{1}, 0o644))
	_, err = execute(t, "", "verify", manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 stale")
}

func TestCatalogRequiresPath(t *testing.T) {
	_, err := execute(t, "", "catalog", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog path required")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tracker-embed dev\n", out)
}
