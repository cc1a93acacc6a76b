// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package capability describes the host environment the settings are used in
// and the probes that discover it.
package capability

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// HostKind identifies the host application.
type HostKind string

const (
	// HostFirefox is Mozilla Firefox and its forks
	HostFirefox HostKind = "firefox"
	// HostChrome is Google Chrome and Chromium based browsers
	HostChrome HostKind = "chrome"
	// HostUnknown is any other host
	HostUnknown HostKind = "unknown"
)

// OSAndroid is the operating system name reported by Android hosts.
const OSAndroid = "android"

// ParseHostKind maps a host name as reported by a browser to a HostKind.
func ParseHostKind(name string) HostKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "firefox", "fennec":
		return HostFirefox
	case "chrome", "chromium":
		return HostChrome
	default:
		return HostUnknown
	}
}

// Context holds the facts about the host that gate which settings apply.
// It is a value type and is not modified after it is created.
type Context struct {
	HostKind        HostKind `validate:"required,oneof=firefox chrome unknown"`
	HostVersion     string   `validate:"omitempty,host_version"`
	OperatingSystem string   `validate:"required"`
}

var contextValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("host_version", func(fl validator.FieldLevel) bool {
		_, err := ParseVersion(fl.Field().String())
		return err == nil
	})
	return v
})

// New builds a validated Context. The operating system is lower-cased.
func New(host HostKind, version, operatingSystem string) (Context, error) {
	c := Context{
		HostKind:        host,
		HostVersion:     strings.TrimSpace(version),
		OperatingSystem: strings.ToLower(strings.TrimSpace(operatingSystem)),
	}
	if err := c.Validate(); err != nil {
		return Context{}, err
	}
	return c, nil
}

// Validate checks the context fields.
func (c Context) Validate() error {
	if err := contextValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid capability context: %w", err)
	}
	return nil
}

// Version returns the parsed host version, or a zero Version when it is
// missing or unparsable.
func (c Context) Version() Version {
	v, err := ParseVersion(c.HostVersion)
	if err != nil {
		return Version{}
	}
	return v
}

// IsHost reports whether the host is of the given kind.
func (c Context) IsHost(kind HostKind) bool {
	return c.HostKind == kind
}

// IsOS reports whether the host runs on the named operating system.
func (c Context) IsOS(name string) bool {
	return strings.EqualFold(c.OperatingSystem, name)
}

func (c Context) String() string {
	if c.HostVersion == "" {
		return fmt.Sprintf("%s on %s", c.HostKind, c.OperatingSystem)
	}
	return fmt.Sprintf("%s %s on %s", c.HostKind, c.HostVersion, c.OperatingSystem)
}
