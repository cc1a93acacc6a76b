// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import settings from the portable JSON format",
		Long: `Import settings from a document produced by 'prefs export' or by the extension.

The whole document is rejected if it cannot be parsed or names a setting that does
not exist. Otherwise each setting is applied on its own; a value that is out of
range is reported and skipped without undoing the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			_, err = s.Import(cmd.Context(), args[0])
			return outcome(cmd, s, err)
		},
	}
}
