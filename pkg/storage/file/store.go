// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package file implements storage.Store as a YAML document on the local file system.
package file

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/prefs/pkg/fileutils"
	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/settings"
	"github.com/stacklok/prefs/pkg/storage"
)

// lockTimeout is the maximum time to wait for the file lock
const lockTimeout = 1 * time.Second

// documentVersion is written into every document.
const documentVersion = 1

// DefaultPath returns the default location of the settings document.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("prefs/settings.yaml")
}

type document struct {
	Version  int            `yaml:"version"`
	Settings map[string]any `yaml:"settings"`
}

// Store persists settings to a YAML file. Writes are serialized across
// processes through a lock file next to the document.
type Store struct {
	path string
}

var _ storage.Store = (*Store)(nil)

// New creates a store for the document at path. An empty path selects DefaultPath.
func New(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("unable to fetch settings path: %w", err)
		}
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the location of the document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing document loads as empty. Entries whose
// value is not a scalar are skipped with a warning.
func (s *Store) Load(_ context.Context) ([]settings.Setting, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	out := make([]settings.Setting, 0, len(doc.Settings))
	for _, name := range slices.Sorted(maps.Keys(doc.Settings)) {
		value, err := settings.ValueOf(doc.Settings[name])
		if err != nil {
			logger.Warnw("skipping persisted setting", "setting", name, "path", s.path, "error", err)
			continue
		}
		out = append(out, settings.Setting{Name: name, Value: value})
	}
	return out, nil
}

// Put updates a single entry of the document. A document that cannot be
// parsed is left untouched and the error is returned.
func (s *Store) Put(ctx context.Context, setting settings.Setting) error {
	return s.withLock(ctx, func() error {
		// read under the lock so concurrent writers never lose each other's entries
		doc, err := s.read()
		if err != nil {
			return err
		}
		doc.Settings[setting.Name] = setting.Value.Interface()
		return s.write(doc)
	})
}

// Replace rewrites the document with snap. The previous contents are never
// read, so a corrupt document can always be replaced.
func (s *Store) Replace(ctx context.Context, snap settings.Snapshot) error {
	return s.withLock(ctx, func() error {
		doc := document{Settings: make(map[string]any, len(snap))}
		for name, setting := range snap {
			doc.Settings[name] = setting.Value.Interface()
		}
		return s.write(doc)
	})
}

// Close is a no-op; the store holds no open handles between calls.
func (*Store) Close() error { return nil }

func (s *Store) read() (document, error) {
	doc := document{Version: documentVersion, Settings: map[string]any{}}

	// #nosec G304: the path comes from the user's own configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("unable to read settings file %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse settings file yaml: %w", err)
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	return doc, nil
}

// withLock runs fn while holding the document's lock file.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Use a separate lock file for cross-platform compatibility
	fileLock := flock.New(s.path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w: %w", storage.ErrLocked, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock: timeout after %v: %w", lockTimeout, storage.ErrLocked)
	}
	defer func() { _ = fileLock.Unlock() }()

	return fn()
}

// write serializes doc over the document. The caller holds the lock.
func (s *Store) write(doc document) error {
	doc.Version = documentVersion

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("error serializing settings file: %w", err)
	}
	if err := fileutils.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}
	logger.Debugw("settings file written", "path", s.path, "entries", len(doc.Settings))
	return nil
}
