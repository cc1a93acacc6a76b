// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"

	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/settings"
)

// LoadSnapshot builds the startup snapshot: registry defaults overlaid with
// whatever st holds. A store that cannot be read yields the defaults; the
// failure is logged, never returned.
func LoadSnapshot(ctx context.Context, st Store, reg *settings.Registry) settings.Snapshot {
	persisted, err := st.Load(ctx)
	if err != nil {
		logger.Warnf("unable to load persisted settings, using defaults: %v", err)
		return reg.Defaults()
	}
	return reg.Restore(persisted)
}
