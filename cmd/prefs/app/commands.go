// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the prefs command-line application.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/prefs/pkg/logger"
)

// Viper keys shared by the persistent flags.
const (
	keyDebug       = "debug"
	keyStore       = "store"
	keyStorePath   = "store-path"
	keyHost        = "host"
	keyHostVersion = "host-version"
	keyOS          = "os"
)

// NewRootCmd creates a new root command for the prefs CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "prefs",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "prefs manages the settings of the cookie cleaning extension",
		Long: `prefs reads, validates and changes the settings of the cookie cleaning extension.

Settings are stored locally (a YAML file by default, or an SQLite database) and can be
exported to and imported from the portable JSON format used by the extension itself.
Which settings apply depends on the browser the extension runs in; pass --host,
--host-version and --os, or set PREFS_HOST_KIND, PREFS_HOST_VERSION and PREFS_OS.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// flags are parsed now, so --debug can take effect
			logger.Initialize()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool(keyDebug, false, "Enable debug mode")
	flags.String(keyStore, storeFile, "Settings store (file, sqlite or memory)")
	flags.String(keyStorePath, "", "Path of the settings store (defaults to the XDG location)")
	flags.String(keyHost, "", "Browser hosting the extension (firefox or chrome); probed from the environment when empty")
	flags.String(keyHostVersion, "", "Version of the browser hosting the extension")
	flags.String(keyOS, "", "Operating system of the browser (defaults to the current one)")

	for _, key := range []string{keyDebug, keyStore, keyStorePath, keyHost, keyHostVersion, keyOS} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			logger.Errorf("Error binding flag %s: %v", key, err)
		}
	}
	viper.SetEnvPrefix("PREFS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
