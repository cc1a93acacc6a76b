// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stacklok/prefs/pkg/fileutils"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export settings to the portable JSON format",
		Long: `Export every setting to the portable JSON format understood by the extension's
import button. Without a path the document is written to stdout.

Examples:
  # Export to a file
  prefs export ./CoreSettings.json

  # Print to stdout
  prefs export`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if len(args) == 0 {
				return s.Export(cmd.OutOrStdout())
			}

			var buf bytes.Buffer
			if err := s.Export(&buf); err != nil {
				return outcome(cmd, s, err)
			}

			outputPath := args[0]
			if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := fileutils.AtomicWriteFile(outputPath, buf.Bytes(), 0600); err != nil {
				return fmt.Errorf("failed to write settings export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully exported settings to '%s'\n", outputPath)
			return nil
		},
	}
}
