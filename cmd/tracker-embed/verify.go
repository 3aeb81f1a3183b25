// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tracker-embed/internal/convert"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <manifest>",
	Short: "Check that headers listed in a manifest are up to date",
	Long: `Verify reads a manifest written by convert --manifest and checks each entry:
the module must still match its recorded SHA-256 and the header must still
exist and declare the recorded size. It exits non-zero when anything is stale
or missing, so a build can re-run convert.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	m, err := convert.ReadManifest(args[0])
	if err != nil {
		return err
	}

	result := convert.VerifyManifest(m, cmd.OutOrStdout())
	if result.HasProblems() {
		return fmt.Errorf("%d stale and %d missing header(s)", result.Stale, result.Missing)
	}
	return nil
}
