// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package feedback holds the user-visible outcome of settings operations.
package feedback

import (
	"sync"
)

// State is what the presentation layer should currently show.
type State struct {
	Error   string
	Success string
}

// HasError reports whether an error message is active.
func (s State) HasError() bool { return s.Error != "" }

// HasSuccess reports whether a success message is active.
func (s State) HasSuccess() bool { return s.Success != "" }

// Board keeps at most one error and one success message. A new report replaces
// the previous message of the same kind; the two are dismissed independently.
type Board struct {
	mu    sync.RWMutex
	state State
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// ReportError makes msg the active error message.
func (b *Board) ReportError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Error = msg
}

// ReportSuccess makes msg the active success message.
func (b *Board) ReportSuccess(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Success = msg
}

// DismissError clears the error message.
func (b *Board) DismissError() {
	b.ReportError("")
}

// DismissSuccess clears the success message.
func (b *Board) DismissSuccess() {
	b.ReportSuccess("")
}

// Current returns the active messages.
func (b *Board) Current() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}
