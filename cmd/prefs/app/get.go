// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/prefs/pkg/feedback"
	"github.com/stacklok/prefs/pkg/settings"
)

func newGetCmd() *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "get <setting>",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			spec, ok := s.Registry().Spec(name)
			if !ok {
				return errors.New(feedback.Message(&settings.UnknownSettingError{Name: name}))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.Snapshot()[name].Value.String())
			if !explain {
				return nil
			}

			decision, _ := s.View().Get(name)
			fmt.Fprintf(out, "\n%s (%s)\n", spec.DisplayName, spec.Group)
			if spec.HelpText != "" {
				fmt.Fprintln(out, spec.HelpText)
			}
			fmt.Fprintf(out, "Default: %s\n", spec.Default)
			if spec.Bounded() {
				fmt.Fprintf(out, "Range: %d to %d\n", *spec.Min, *spec.Max)
			}
			if !decision.Applicable {
				fmt.Fprintf(out, "Not applicable to %s\n", s.Host())
			}
			for _, w := range decision.Warnings {
				fmt.Fprintf(out, "%s: %s\n", w.Severity(), w.Description())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "Also describe the setting, its bounds and any warnings")

	return cmd
}
