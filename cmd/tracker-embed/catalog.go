// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tracker-embed/internal/catalog"
	"github.com/pdiddy/tracker-embed/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the history of generated headers",
	Long: `Catalog reads the SQLite database that convert --catalog writes. Each row
records a module, the header generated from it, the byte count, the SHA-256 of
the module, and the conversion time.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-20s  %-20s  %10s  %-12s  %s\n", "Name", "Symbol", "Bytes", "SHA-256", "Converted")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, c := range results {
		fmt.Fprintf(out, "%-20s  %-20s  %10d  %-12s  %s\n",
			truncate(c.Name, 20), truncate(c.Symbol, 20), c.Size, truncate(c.SHA256, 12),
			c.ConvertedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "\n%d conversions\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded conversions to YAML or JSON",
	Long: `Export writes the catalog (or the subset selected by --name and --latest)
to export.yaml or export.json next to the catalog database, or to --out.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd)
	ctx := context.Background()

	switch format {
	case "yaml", "":
		if outPath == "" {
			outPath = filepath.Join(filepath.Dir(store.Path()), "export.yaml")
		}
		if err := store.ExportYAML(ctx, outPath, opts); err != nil {
			return err
		}
	case "json":
		if outPath == "" {
			outPath = filepath.Join(filepath.Dir(store.Path()), "export.json")
		}
		if err := store.ExportJSON(ctx, outPath, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg := types.CatalogConfig{Path: stringSetting(cmd, "catalog", "catalog.path")}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("catalog path required: pass --catalog or set catalog.path")
	}
	return catalog.NewStore(cfg)
}

func listOptsFromFlags(cmd *cobra.Command) catalog.ListOptions {
	name, _ := cmd.Flags().GetString("name")
	latest, _ := cmd.Flags().GetBool("latest")
	limit, _ := cmd.Flags().GetInt("limit")
	return catalog.ListOptions{Name: name, Latest: latest, Limit: limit}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog", "", "SQLite catalog written by convert --catalog")
	catalogCmd.PersistentFlags().String("name", "", "filter by module base name")
	catalogCmd.PersistentFlags().Bool("latest", false, "keep only the newest conversion of each module")

	catalogListCmd.Flags().Int("limit", 0, "maximum results (0 = 100)")
	catalogListCmd.Flags().Bool("json", false, "output results as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("out", "", "export file path")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
