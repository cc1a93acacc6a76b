// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/settings"
)

// Facts are the inputs every condition is evaluated against.
type Facts struct {
	Host     capability.Context
	Snapshot settings.Snapshot
}

// Condition is a predicate over capability fields and raw snapshot values.
// Conditions must not depend on the outcome of other rules.
type Condition func(Facts) bool

// Always holds for every input.
func Always() Condition {
	return func(Facts) bool { return true }
}

// HostIs holds when the host is of the given kind.
func HostIs(kind capability.HostKind) Condition {
	return func(f Facts) bool { return f.Host.IsHost(kind) }
}

// OSIs holds when the host runs on the named operating system.
func OSIs(name string) Condition {
	return func(f Facts) bool { return f.Host.IsOS(name) }
}

// NotOS holds when the host does not run on the named operating system.
func NotOS(name string) Condition {
	return Not(OSIs(name))
}

// MinHostVersion holds when the host version is at least minimum. It panics if
// minimum is not a valid version, since rule tables are fixed at build time.
func MinHostVersion(minimum string) Condition {
	v := capability.MustParseVersion(minimum)
	return func(f Facts) bool { return f.Host.Version().AtLeast(v) }
}

// Enabled holds when the boolean setting is on.
func Enabled(name string) Condition {
	return func(f Facts) bool { return f.Snapshot.Bool(name) }
}

// Disabled holds when the boolean setting is off.
func Disabled(name string) Condition {
	return Not(Enabled(name))
}

// Not negates c.
func Not(c Condition) Condition {
	return func(f Facts) bool { return !c(f) }
}

// AllOf holds when every condition holds.
func AllOf(conds ...Condition) Condition {
	return func(f Facts) bool {
		for _, c := range conds {
			if !c(f) {
				return false
			}
		}
		return true
	}
}

// AnyOf holds when at least one condition holds.
func AnyOf(conds ...Condition) Condition {
	return func(f Facts) bool {
		for _, c := range conds {
			if c(f) {
				return true
			}
		}
		return false
	}
}
