// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"context"
	"runtime"

	"github.com/stacklok/toolhive-core/env"
)

// Environment variables read by EnvProbe.
const (
	HostKindEnvVar    = "PREFS_HOST_KIND"
	HostVersionEnvVar = "PREFS_HOST_VERSION"
	OSEnvVar          = "PREFS_OS"
)

// Probe discovers the capability context. It is called once per session.
type Probe interface {
	Probe(ctx context.Context) (Context, error)
}

// StaticProbe returns a fixed context.
type StaticProbe struct {
	Context Context
}

var _ Probe = StaticProbe{}

// Probe validates and returns the fixed context.
func (p StaticProbe) Probe(_ context.Context) (Context, error) {
	return New(p.Context.HostKind, p.Context.HostVersion, p.Context.OperatingSystem)
}

// EnvProbe reads the context from environment variables. The operating system
// falls back to the one the process runs on.
type EnvProbe struct {
	env env.Reader
}

var _ Probe = (*EnvProbe)(nil)

// NewEnvProbe creates a probe reading the process environment.
func NewEnvProbe() *EnvProbe {
	return NewEnvProbeWithReader(&env.OSReader{})
}

// NewEnvProbeWithReader creates a probe reading from envReader.
func NewEnvProbeWithReader(envReader env.Reader) *EnvProbe {
	return &EnvProbe{env: envReader}
}

// Probe reads and validates the context.
func (p *EnvProbe) Probe(_ context.Context) (Context, error) {
	operatingSystem := p.env.Getenv(OSEnvVar)
	if operatingSystem == "" {
		operatingSystem = runtime.GOOS
	}
	return New(
		ParseHostKind(p.env.Getenv(HostKindEnvVar)),
		p.env.Getenv(HostVersionEnvVar),
		operatingSystem,
	)
}
