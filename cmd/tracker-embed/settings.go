// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys such as convert.per_line to
// TRACKER_EMBED_CONVERT_PER_LINE.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Settings resolve in order: explicit flag, environment or config file
// (through viper), then the flag default. Flags are not bound with
// viper.BindPFlag because convert and catalog share the catalog.path key.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}

func sliceSetting(cmd *cobra.Command, flag, key string) []string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetStringSlice(flag)
		return v
	}
	return splitList(viper.GetStringSlice(key))
}

// splitList splits every element on commas and drops empty entries, so an
// environment value of "xm,mod" reads the same as --ext xm,mod.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// stringSettingArg prefers the first positional argument over key.
func stringSettingArg(args []string, key string) string {
	if len(args) > 0 {
		return args[0]
	}
	return viper.GetString(key)
}
