// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package coordinator

import (
	"errors"
	"fmt"
)

// ErrStore is returned when the store rejects an accepted setting.
var ErrStore = errors.New("failed to persist settings")

// StoreError reports a store failure during an update or reset.
type StoreError struct {
	// Op is the store operation that failed: "put" or "replace".
	Op string
	// Name is the setting being persisted; empty for "replace".
	Name string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v (%s %s): %v", ErrStore, e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", ErrStore, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}
