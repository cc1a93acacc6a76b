// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stacklok/prefs/cmd/prefs/app/ui"
	"github.com/stacklok/prefs/pkg/session"
	"github.com/stacklok/prefs/pkg/settings"
)

func newListCmd() *cobra.Command {
	var (
		listAll    bool
		listFormat string
		listGroup  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settings",
		Long: `List the current value of every setting that applies to the browser the extension runs in,
together with any warnings the current combination of values raises.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			rows := settingRows(s, listAll, settings.Group(listGroup))

			switch listFormat {
			case FormatJSON:
				return printJSONOutput(cmd.OutOrStdout(), rows)
			case FormatText:
				return ui.RenderSettingsTable(cmd.OutOrStdout(), rows)
			default:
				return fmt.Errorf("unknown format %q (valid values: %s, %s)", listFormat, FormatText, FormatJSON)
			}
		},
	}

	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show settings that do not apply to the current browser")
	cmd.Flags().StringVar(&listFormat, "format", FormatText, "Output format (json or text)")
	cmd.Flags().StringVar(&listGroup, "group", "", "Only show settings of this group")

	return cmd
}

// settingRows joins the registry, the current values and the visibility
// report into table rows, in registry order.
func settingRows(s *session.Session, all bool, group settings.Group) []ui.SettingRow {
	snap := s.Snapshot()
	report := s.View()

	var rows []ui.SettingRow
	for _, spec := range s.Registry().Specs() {
		if group != "" && spec.Group != group {
			continue
		}
		decision, _ := report.Get(spec.Name)
		if !decision.Applicable && !all {
			continue
		}

		current := snap[spec.Name].Value
		row := ui.SettingRow{
			Name:       spec.Name,
			Title:      spec.DisplayName,
			Group:      string(spec.Group),
			Value:      current.Interface(),
			Default:    current.Equal(spec.Default),
			Applicable: decision.Applicable,
		}
		for _, w := range decision.Warnings {
			row.Warnings = append(row.Warnings, w.String())
		}
		rows = append(rows, row)
	}
	return rows
}

// printJSONOutput prints v as indented JSON
func printJSONOutput(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
