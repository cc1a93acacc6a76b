// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package ui renders settings for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// SettingRow is one line of the settings table.
type SettingRow struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Group      string   `json:"group"`
	Value      any      `json:"value"`
	Default    bool     `json:"default"`
	Applicable bool     `json:"applicable"`
	Warnings   []string `json:"warnings,omitempty"`
}

// RenderSettingsTable renders rows to w.
func RenderSettingsTable(w io.Writer, rows []SettingRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No settings found.")
		return nil
	}

	headers := []string{"Setting", "Group", "Value", "Applicable", "Warnings"}
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)

	for _, row := range rows {
		value := fmt.Sprint(row.Value)
		if row.Default {
			value += " (default)"
		}
		applicable := "✅ Yes"
		if !row.Applicable {
			applicable = "❌ No"
		}
		if err := table.Append([]string{
			row.Name,
			row.Group,
			value,
			applicable,
			strings.Join(row.Warnings, ", "),
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
