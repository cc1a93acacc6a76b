// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fileutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsDocument = `version: 1
settings:
  activeMode: true
  delayBeforeClean: 15
`

const exportDocument = `{
  "activeMode": {"name": "activeMode", "value": true}
}
`

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			names = append(names, entry.Name())
		}
	}
	return names
}

func TestAtomicWriteFile_SettingsFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "settings document", file: "settings.yaml", data: settingsDocument},
		{name: "settings export", file: "export.json", data: exportDocument},
		{name: "empty document", file: "empty.yaml", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)

			require.NoError(t, AtomicWriteFile(path, []byte(tt.data), 0600))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(content))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
			assert.Empty(t, tempFiles(t, dir))
		})
	}
}

func TestAtomicWriteFile_ReplacesLongerDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, AtomicWriteFile(path, []byte(settingsDocument), 0600))
	require.NoError(t, AtomicWriteFile(path, []byte("version: 1\nsettings: {}\n"), 0600))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\nsettings: {}\n", string(content))
}

func TestAtomicWriteFile_TightensExistingPermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	require.NoError(t, AtomicWriteFile(path, []byte(exportDocument), 0600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAtomicWriteFile_FailedRenameRemovesTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// renaming a file over a non-empty directory fails
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0750))

	err := AtomicWriteFile(path, []byte(settingsDocument), 0600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to rename temp file")
	assert.Empty(t, tempFiles(t, dir))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "settings.yaml")
	err := AtomicWriteFile(path, []byte(settingsDocument), 0600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temp file")
}
