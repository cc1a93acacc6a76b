// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import "maps"

// Setting is one named user preference.
type Setting struct {
	Name  string
	Value Value
}

// Snapshot maps setting names to their current values. A snapshot produced by a
// Registry holds exactly one entry per known name.
type Snapshot map[string]Setting

// Clone returns a shallow copy; Setting values are immutable so this is a full copy.
func (s Snapshot) Clone() Snapshot {
	return maps.Clone(s)
}

// Get returns the value stored for name.
func (s Snapshot) Get(name string) (Value, bool) {
	setting, ok := s[name]
	if !ok {
		return Value{}, false
	}
	return setting.Value, true
}

// Bool returns the boolean value of name, false when absent or not a boolean.
func (s Snapshot) Bool(name string) bool {
	return s[name].Value.AsBool()
}

// Int returns the integer value of name, 0 when absent or not an integer.
func (s Snapshot) Int(name string) int64 {
	return s[name].Value.AsInt()
}

// Equal reports whether both snapshots hold the same names and values.
func (s Snapshot) Equal(o Snapshot) bool {
	return maps.Equal(s, o)
}
