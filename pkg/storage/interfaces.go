// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package storage provides the persistence interface for settings snapshots and
// the helpers shared by its implementations.
package storage

import (
	"context"

	"github.com/stacklok/prefs/pkg/settings"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=interfaces.go Store

// Store persists accepted settings. Implementations only ever receive settings
// that already passed registry validation.
type Store interface {
	// Load returns every persisted setting. A store that has never been written
	// returns an empty slice and no error.
	Load(ctx context.Context) ([]settings.Setting, error)
	// Put persists a single setting, replacing any previous value.
	Put(ctx context.Context, setting settings.Setting) error
	// Replace overwrites everything persisted with snap.
	Replace(ctx context.Context, snap settings.Snapshot) error
	// Close releases any resources held by the store.
	Close() error
}
