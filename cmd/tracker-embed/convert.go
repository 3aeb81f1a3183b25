// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tracker-embed/internal/catalog"
	"github.com/pdiddy/tracker-embed/internal/convert"
	"github.com/pdiddy/tracker-embed/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir>",
	Short: "Generate a byte-array header for every module in a directory",
	Long: `Convert reads every module file in the input directory whose extension
matches --ext and writes <name>.h next to it (or into --out-dir). Each header
declares <name>_size and <name>[]. Existing headers are overwritten.

Files whose name has no base name before the extension are skipped. Any read
or write failure stops the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out-dir", "", "directory for generated headers (default: the input directory)")
	convertCmd.Flags().StringSlice("ext", []string{types.DefaultExtension}, "module file extensions to convert")
	convertCmd.Flags().Int("per-line", types.DefaultPerLine, "byte values per line in the array body")
	convertCmd.Flags().Bool("sanitize", false, "map base names to valid C identifiers for the declared symbols")
	convertCmd.Flags().String("manifest", "", "write a YAML manifest of the batch to this path")
	convertCmd.Flags().String("catalog", "", "record conversions in this SQLite catalog")
	convertCmd.Flags().Bool("pause", false, "wait for Enter before exiting")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := context.Background()

	var rec convert.Recorder
	catCfg := types.CatalogConfig{Path: stringSetting(cmd, "catalog", "catalog.path")}
	if catCfg.Enabled() {
		store, err := catalog.NewStore(catCfg)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	result, err := convert.ConvertBatch(ctx, cfg, rec, out)
	if err != nil {
		return err
	}

	if cfg.ManifestPath != "" {
		if err := convert.WriteManifest(cfg.ManifestPath, cfg, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote manifest %s\n", cfg.ManifestPath)
	}

	if boolSetting(cmd, "pause", "convert.pause") {
		fmt.Fprint(out, "\nPress enter to exit")
		// Any input, EOF included, ends the wait.
		_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	}
	return nil
}

func convertConfig(cmd *cobra.Command, args []string) (types.ConvertConfig, error) {
	inputDir := stringSettingArg(args, "convert.input_dir")
	if inputDir == "" {
		return types.ConvertConfig{}, convert.ErrNoInputDir
	}
	if info, err := os.Stat(inputDir); err != nil {
		return types.ConvertConfig{}, fmt.Errorf("input directory: %w", err)
	} else if !info.IsDir() {
		return types.ConvertConfig{}, fmt.Errorf("input directory %s is not a directory", inputDir)
	}

	perLine := intSetting(cmd, "per-line", "convert.per_line")
	if perLine < 1 {
		return types.ConvertConfig{}, fmt.Errorf("per-line must be at least 1, got %d", perLine)
	}

	return types.ConvertConfig{
		InputDir:     inputDir,
		OutputDir:    stringSetting(cmd, "out-dir", "convert.output_dir"),
		Extensions:   sliceSetting(cmd, "ext", "convert.extensions"),
		PerLine:      perLine,
		Sanitize:     boolSetting(cmd, "sanitize", "convert.sanitize"),
		ManifestPath: stringSetting(cmd, "manifest", "convert.manifest"),
	}, nil
}
