// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package session wires the settings engine together for one user session:
// the capability context is probed once, the snapshot is loaded from the
// store, and every operation reports its outcome to a feedback board.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/coordinator"
	"github.com/stacklok/prefs/pkg/feedback"
	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/portable"
	"github.com/stacklok/prefs/pkg/settings"
	"github.com/stacklok/prefs/pkg/storage"
	"github.com/stacklok/prefs/pkg/visibility"
)

// Options configures Open. Zero fields select the built-in defaults.
type Options struct {
	// Registry defaults to settings.Default().
	Registry *settings.Registry
	// Rules default to visibility.DefaultRules() for the built-in registry and
	// to no rules for any other registry.
	Rules *visibility.Rules
	// Store defaults to an in-memory store.
	Store storage.Store
	// Probe defaults to capability.NewEnvProbe().
	Probe capability.Probe
	// Registerer receives the coordinator metrics when set.
	Registerer prometheus.Registerer
}

// Session is a single user's view of the settings engine.
type Session struct {
	registry    *settings.Registry
	store       storage.Store
	host        capability.Context
	coordinator *coordinator.Coordinator
	codec       *portable.Codec
	engine      *visibility.Engine
	board       *feedback.Board
}

// Open probes the environment, loads the persisted snapshot and builds the
// session. A store that cannot be read starts the session from defaults.
func Open(ctx context.Context, opts Options) (*Session, error) {
	reg := opts.Registry
	if reg == nil {
		reg = settings.Default()
	}
	rules := opts.Rules
	if rules == nil {
		if reg == settings.Default() {
			defaults := visibility.DefaultRules()
			rules = &defaults
		} else {
			rules = &visibility.Rules{}
		}
	}
	st := opts.Store
	if st == nil {
		st = storage.NewMemory()
	}
	probe := opts.Probe
	if probe == nil {
		probe = capability.NewEnvProbe()
	}

	host, err := probe.Probe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect host capabilities: %w", err)
	}
	engine, err := visibility.NewEngine(reg, *rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build visibility rules: %w", err)
	}
	codec, err := portable.NewCodec(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to build settings codec: %w", err)
	}

	var coordOpts []coordinator.Option
	if opts.Registerer != nil {
		coordOpts = append(coordOpts, coordinator.WithRegisterer(opts.Registerer))
	}
	initial := storage.LoadSnapshot(ctx, st, reg)

	logger.Debugw("settings session opened", "host", host.String())
	return &Session{
		registry:    reg,
		store:       st,
		host:        host,
		coordinator: coordinator.New(reg, st, initial, coordOpts...),
		codec:       codec,
		engine:      engine,
		board:       feedback.NewBoard(),
	}, nil
}

// Registry returns the session's registry.
func (s *Session) Registry() *settings.Registry { return s.registry }

// Host returns the capability context probed at Open.
func (s *Session) Host() capability.Context { return s.host }

// Feedback returns the board holding the latest outcome messages.
func (s *Session) Feedback() *feedback.Board { return s.board }

// Snapshot returns a copy of the current settings.
func (s *Session) Snapshot() settings.Snapshot { return s.coordinator.Snapshot() }

// View evaluates applicability and warnings for the current settings.
func (s *Session) View() visibility.Report {
	return s.engine.Evaluate(s.host, s.coordinator.Snapshot())
}

// InspectURL returns the host's debugging page for extensionID, or "" when
// the host has none.
func (s *Session) InspectURL(extensionID string) string {
	return visibility.InspectURL(s.host, extensionID)
}

// Update parses text as the registered kind of name and applies it.
func (s *Session) Update(ctx context.Context, name, text string) error {
	err := s.update(ctx, name, text)
	if err != nil {
		s.board.ReportError(feedback.Message(err))
		return err
	}
	spec, _ := s.registry.Spec(name)
	s.board.ReportSuccess(fmt.Sprintf("%s saved.", spec.DisplayName))
	return nil
}

func (s *Session) update(ctx context.Context, name, text string) error {
	kind, err := s.registry.TypeOf(name)
	if err != nil {
		return err
	}
	value, err := settings.ParseValue(kind, text)
	if err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	return s.coordinator.ApplyOne(ctx, settings.Setting{Name: name, Value: value})
}

// ImportResult describes a completed import.
type ImportResult struct {
	// Applied lists the settings that were committed, in document order.
	Applied []string
	// Failed maps each rejected setting to its error.
	Failed map[string]error
}

// Import reads a portable document from path. The document is rejected as a
// whole when it cannot be parsed or names unknown settings. Otherwise every
// entry is applied on its own: entries that fail do not undo the others, and
// their errors are joined into the returned error.
func (s *Session) Import(ctx context.Context, path string) (ImportResult, error) {
	parsed, err := s.codec.ImportFile(ctx, path)
	if err != nil {
		s.board.ReportError(feedback.Message(err))
		return ImportResult{}, err
	}
	return s.apply(ctx, parsed)
}

// ImportBytes is Import for a document already in memory.
func (s *Session) ImportBytes(ctx context.Context, raw []byte) (ImportResult, error) {
	parsed, err := s.codec.Parse(raw)
	if err != nil {
		s.board.ReportError(feedback.Message(err))
		return ImportResult{}, err
	}
	return s.apply(ctx, parsed)
}

func (s *Session) apply(ctx context.Context, parsed []settings.Setting) (ImportResult, error) {
	result := ImportResult{Failed: map[string]error{}}
	var (
		errs     []error
		messages []string
	)
	for i, err := range s.coordinator.ApplyMany(ctx, parsed) {
		name := parsed[i].Name
		if err != nil {
			result.Failed[name] = err
			errs = append(errs, err)
			messages = append(messages, feedback.Message(err))
			continue
		}
		result.Applied = append(result.Applied, name)
	}

	if len(errs) > 0 {
		s.board.ReportError(fmt.Sprintf("Imported %d of %d settings. %s",
			len(result.Applied), len(parsed), strings.Join(messages, " ")))
		return result, errors.Join(errs...)
	}
	s.board.ReportSuccess(fmt.Sprintf("Imported %d settings.", len(result.Applied)))
	return result, nil
}

// Export writes the current settings as a portable document.
func (s *Session) Export(w io.Writer) error {
	if err := s.codec.Export(w, s.coordinator.Snapshot()); err != nil {
		s.board.ReportError(feedback.Message(err))
		return err
	}
	s.board.ReportSuccess("Settings exported.")
	return nil
}

// Reset restores every setting to its default. The returned snapshot is the
// new state even when err reports that the store could not be updated.
func (s *Session) Reset(ctx context.Context) (settings.Snapshot, error) {
	snap, err := s.coordinator.Reset(ctx)
	if err != nil {
		s.board.ReportError(feedback.Message(err))
		return snap, err
	}
	s.board.ReportSuccess("Settings reset to defaults.")
	return snap, nil
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}
