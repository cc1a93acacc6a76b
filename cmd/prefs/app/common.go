// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/session"
	"github.com/stacklok/prefs/pkg/storage"
	"github.com/stacklok/prefs/pkg/storage/file"
	"github.com/stacklok/prefs/pkg/storage/sqlite"
)

// Supported values of --store.
const (
	storeFile   = "file"
	storeSQLite = "sqlite"
	storeMemory = "memory"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// newStore opens the store selected by kind. An empty path selects the
// store's default location.
func newStore(ctx context.Context, kind, path string) (storage.Store, error) {
	switch kind {
	case storeFile, "":
		return file.New(path)
	case storeSQLite:
		return sqlite.NewSettingsStoreFromPath(ctx, path)
	case storeMemory:
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (valid values: %s, %s, %s)", kind, storeFile, storeSQLite, storeMemory)
	}
}

// newProbe returns a fixed probe when --host is given and reads the
// environment otherwise.
func newProbe() capability.Probe {
	host := viper.GetString(keyHost)
	if host == "" {
		return capability.NewEnvProbe()
	}
	return capability.StaticProbe{Context: capability.Context{
		HostKind:        capability.ParseHostKind(host),
		HostVersion:     viper.GetString(keyHostVersion),
		OperatingSystem: osOrCurrent(viper.GetString(keyOS)),
	}}
}

func osOrCurrent(name string) string {
	if name == "" {
		return runtime.GOOS
	}
	return name
}

// openSession opens a session configured from the persistent flags. The
// caller must close it.
func openSession(cmd *cobra.Command) (*session.Session, error) {
	ctx := cmd.Context()

	st, err := newStore(ctx, viper.GetString(keyStore), viper.GetString(keyStorePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	s, err := session.Open(ctx, session.Options{Store: st, Probe: newProbe()})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return s, nil
}

// outcome prints the session's success message, or turns its error message
// into the command error.
func outcome(cmd *cobra.Command, s *session.Session, err error) error {
	state := s.Feedback().Current()
	if err != nil {
		if state.HasError() {
			return errors.New(state.Error)
		}
		return err
	}
	if state.HasSuccess() {
		fmt.Fprintln(cmd.OutOrStdout(), state.Success)
	}
	return nil
}
