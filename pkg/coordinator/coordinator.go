// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package coordinator owns the live settings snapshot and is the only place it
// is mutated. Every change is validated against the registry and persisted
// before it becomes visible.
package coordinator

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/settings"
	"github.com/stacklok/prefs/pkg/storage"
)

// Coordinator serializes all snapshot mutations.
type Coordinator struct {
	registry *settings.Registry
	store    storage.Store

	mu       sync.Mutex
	snapshot settings.Snapshot

	registerer prometheus.Registerer
	metrics    *metrics
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRegisterer registers the coordinator's counters on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Coordinator) {
		c.registerer = reg
	}
}

// New creates a coordinator starting from initial. Entries of initial that the
// registry rejects are replaced by defaults, and missing entries are filled in.
func New(reg *settings.Registry, st storage.Store, initial settings.Snapshot, opts ...Option) *Coordinator {
	c := &Coordinator{
		registry: reg,
		store:    st,
		snapshot: reg.Restore(slices.Collect(maps.Values(initial))),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.registerer)
	return c
}

// Snapshot returns a copy of the current snapshot.
func (c *Coordinator) Snapshot() settings.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Clone()
}

// Get returns the current value of name.
func (c *Coordinator) Get(name string) (settings.Setting, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.snapshot[name]
	return s, ok
}

// ApplyOne validates s, persists it and commits it to the snapshot. On any
// error the snapshot is left exactly as it was.
func (c *Coordinator) ApplyOne(ctx context.Context, s settings.Setting) error {
	err := c.applyOne(ctx, s)
	c.metrics.observeUpdate(err)
	return err
}

func (c *Coordinator) applyOne(ctx context.Context, s settings.Setting) error {
	if err := c.registry.Validate(s); err != nil {
		logger.Debugw("rejected setting update", "setting", s.Name, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Put(ctx, s); err != nil {
		logger.Warnw("failed to persist setting", "setting", s.Name, "error", err)
		return &StoreError{Op: "put", Name: s.Name, Err: err}
	}
	c.snapshot[s.Name] = s
	logger.Debugw("setting updated", "setting", s.Name, "value", s.Value.String())
	return nil
}

// ApplyMany applies each setting independently, in order. A failure does not
// stop later items and earlier commits are not rolled back. The result has one
// entry per input; nil means the item was committed.
func (c *Coordinator) ApplyMany(ctx context.Context, items []settings.Setting) []error {
	results := make([]error, len(items))
	for i, s := range items {
		results[i] = c.ApplyOne(ctx, s)
	}
	return results
}

// Reset replaces the snapshot with the registry defaults and asks the store to
// replace everything it holds. The reset stands even when the store fails; the
// store error is returned alongside the new snapshot.
func (c *Coordinator) Reset(ctx context.Context) (settings.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = c.registry.Defaults()
	c.metrics.observeReset()

	if err := c.store.Replace(ctx, c.snapshot.Clone()); err != nil {
		logger.Warnw("failed to persist settings reset", "error", err)
		return c.snapshot.Clone(), &StoreError{Op: "replace", Err: err}
	}
	logger.Debugf("settings reset to defaults")
	return c.snapshot.Clone(), nil
}
