// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tracker-embed CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tracker-embed CLI.
var rootCmd = &cobra.Command{
	Use:   "tracker-embed",
	Short: "Embed tracker modules in C/C++ programs as byte-array headers",
	Long: `tracker-embed converts tracker-module files (XM, MOD, S3M, IT) into
header files that declare the module as a const byte array plus a size
constant, so firmware and native programs can link music statically.

Use convert to generate headers for a directory of modules and catalog to
inspect the history of generated headers.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tracker-embed.yaml or ~/.config/tracker-embed/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tracker-embed")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tracker-embed"))
		}
	}

	viper.SetEnvPrefix("TRACKER_EMBED")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
