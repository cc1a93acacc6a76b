// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <extension id>",
		Short: "Print the URL of the extension's debug console",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			url := s.InspectURL(args[0])
			if url == "" {
				return fmt.Errorf("%s has no extension debug console", s.Host())
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
