// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package feedback

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stacklok/prefs/pkg/coordinator"
	"github.com/stacklok/prefs/pkg/portable"
	"github.com/stacklok/prefs/pkg/settings"
)

func TestBoard(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	assert.Equal(t, State{}, b.Current())

	b.ReportError("first error")
	b.ReportSuccess("saved")
	b.ReportError("second error")
	assert.Equal(t, State{Error: "second error", Success: "saved"}, b.Current())

	b.DismissError()
	state := b.Current()
	assert.False(t, state.HasError())
	assert.True(t, state.HasSuccess())

	b.DismissSuccess()
	assert.Equal(t, State{}, b.Current())
}

func TestBoard_Concurrent(t *testing.T) {
	t.Parallel()
	b := NewBoard()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.ReportError(fmt.Sprintf("error %d", i))
			_ = b.Current()
		}()
	}
	wg.Wait()
	assert.True(t, b.Current().HasError())
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"unknown keys",
			&portable.UnknownKeysError{Keys: []string{"bogusSetting", "other"}},
			"The import was rejected because it contains unknown settings: bogusSetting, other.",
		},
		{
			"malformed",
			&portable.MalformedPayloadError{Reason: "invalid JSON"},
			"The import was rejected because the file is not a valid settings export.",
		},
		{
			"unreadable",
			&portable.SourceReadError{Path: "/tmp/CoreSettings.json", Err: os.ErrNotExist},
			"The file /tmp/CoreSettings.json could not be read.",
		},
		{
			"unknown setting",
			&settings.UnknownSettingError{Name: "bogusSetting"},
			`"bogusSetting" is not a known setting.`,
		},
		{
			"type mismatch",
			&settings.TypeMismatchError{Name: "activeMode", Want: settings.KindBool, Got: settings.KindString},
			`"activeMode" expects a bool value.`,
		},
		{
			"out of range wrapped",
			fmt.Errorf("import: %w", &settings.RangeError{Name: "delayBeforeClean", Min: 1, Max: 2147483, Value: 0}),
			`"delayBeforeClean" must be between 1 and 2147483.`,
		},
		{
			"store put",
			&coordinator.StoreError{Op: "put", Name: "activeMode", Err: errors.New("disk full")},
			`The change to "activeMode" could not be saved.`,
		},
		{
			"store replace",
			&coordinator.StoreError{Op: "replace", Err: errors.New("disk full")},
			"Settings were reset to their defaults but could not be saved.",
		},
		{"other", errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
