// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/stacklok/prefs/pkg/settings"
)

// Memory is an in-process Store. Nothing survives the process; it backs
// ephemeral sessions and tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]settings.Setting
	closed bool
}

var _ Store = (*Memory)(nil)

// NewMemory creates a Memory store seeded with initial.
func NewMemory(initial ...settings.Setting) *Memory {
	m := &Memory{values: make(map[string]settings.Setting, len(initial))}
	for _, s := range initial {
		m.values[s.Name] = s
	}
	return m
}

// Load returns the stored settings sorted by name.
func (m *Memory) Load(_ context.Context) ([]settings.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	out := make([]settings.Setting, 0, len(m.values))
	for _, name := range slices.Sorted(maps.Keys(m.values)) {
		out = append(out, m.values[name])
	}
	return out, nil
}

// Put stores setting.
func (m *Memory) Put(_ context.Context, setting settings.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[setting.Name] = setting
	return nil
}

// Replace swaps the stored settings for a copy of snap.
func (m *Memory) Replace(_ context.Context, snap settings.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values = maps.Clone(map[string]settings.Setting(snap))
	if m.values == nil {
		m.values = make(map[string]settings.Setting)
	}
	return nil
}

// Close marks the store closed. Closing twice is a no-op.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
