// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/prefs/pkg/settings"
	"github.com/stacklok/prefs/pkg/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "prefs", "settings.yaml"))
	require.NoError(t, err)
	return store
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Empty(t, loaded)

	_, err = os.Stat(store.Path())
	assert.ErrorIs(t, err, os.ErrNotExist, "loading must not create the document")
}

func TestStore_PutPreservesKinds(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	put := []settings.Setting{
		{Name: settings.ActiveMode, Value: settings.BoolValue(true)},
		{Name: settings.DelayBeforeClean, Value: settings.IntValue(2147483)},
		{Name: "label", Value: settings.StringValue("15")},
		{Name: "flag", Value: settings.StringValue("true")},
	}
	for _, s := range put {
		require.NoError(t, store.Put(t.Context(), s))
	}

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.ElementsMatch(t, put, loaded)
}

func TestStore_PutOverwrites(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	require.NoError(t, store.Put(t.Context(), settings.Setting{Name: settings.NotificationOnScreen, Value: settings.IntValue(2)}))
	require.NoError(t, store.Put(t.Context(), settings.Setting{Name: settings.NotificationOnScreen, Value: settings.IntValue(4)}))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []settings.Setting{{Name: settings.NotificationOnScreen, Value: settings.IntValue(4)}}, loaded)
}

func TestStore_Replace(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	reg := settings.Default()

	require.NoError(t, store.Put(t.Context(), settings.Setting{Name: "obsolete", Value: settings.BoolValue(true)}))
	require.NoError(t, store.Replace(t.Context(), reg.Defaults()))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, loaded, len(reg.KnownNames()))
	assert.True(t, reg.Restore(loaded).Equal(reg.Defaults()))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var doc document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, documentVersion, doc.Version)
	assert.NotContains(t, doc.Settings, "obsolete")
}

func TestStore_LoadSkipsNonScalars(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`version: 1
settings:
  activeMode: true
  delayBeforeClean: 1.5
  nested:
    key: value
  notificationOnScreen: 4
`), 0600))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []settings.Setting{
		{Name: settings.ActiveMode, Value: settings.BoolValue(true)},
		{Name: settings.NotificationOnScreen, Value: settings.IntValue(4)},
	}, loaded)
}

func TestStore_LoadInvalidYAML(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("settings: [unterminated"), 0600))

	_, err := store.Load(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings file yaml")
}

func TestStore_ReplaceRecoversCorruptDocument(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	reg := settings.Default()
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("settings: [unterminated"), 0600))

	// a single entry cannot be merged into a document that does not parse
	err := store.Put(t.Context(), settings.Setting{Name: settings.ActiveMode, Value: settings.BoolValue(true)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings file yaml")

	require.NoError(t, store.Replace(t.Context(), reg.Defaults()))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.True(t, reg.Restore(loaded).Equal(reg.Defaults()))

	require.NoError(t, store.Put(t.Context(), settings.Setting{Name: settings.ActiveMode, Value: settings.BoolValue(true)}))
	loaded, err = store.Load(t.Context())
	require.NoError(t, err)
	assert.True(t, reg.Restore(loaded).Bool(settings.ActiveMode))
}

func TestStore_ConcurrentPuts(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	names := []string{settings.ActiveMode, settings.DebugMode, settings.StatLogging, settings.KeepDefaultIcon}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Put(context.Background(), settings.Setting{Name: name, Value: settings.BoolValue(true)}))
		}()
	}
	wg.Wait()

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, loaded, len(names))
}

func TestStore_LockTimeout(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))

	held := flock.New(store.Path() + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	t.Cleanup(func() { _ = held.Unlock() })

	ctx, cancel := context.WithTimeout(t.Context(), 2*lockTimeout)
	defer cancel()
	err = store.Put(ctx, settings.Setting{Name: settings.ActiveMode, Value: settings.BoolValue(true)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire lock")
	assert.ErrorIs(t, err, storage.ErrLocked)

	_, statErr := os.Stat(store.Path())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
