// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Change a setting",
		Long: `Change a setting. The value is parsed according to the kind of the setting:
true or false for toggles, a whole number for numeric settings.

Examples:
  prefs set activeMode true
  prefs set delayBeforeClean 30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			return outcome(cmd, s, s.Update(cmd.Context(), args[0], args[1]))
		},
	}
}
