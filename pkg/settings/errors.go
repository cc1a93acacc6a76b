// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSetting is returned when a name is not in the registry
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrTypeMismatch is returned when a value kind differs from the registered kind
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange is returned when a numeric value is outside its declared bounds
	ErrOutOfRange = errors.New("value out of range")
)

// UnknownSettingError reports a setting name that the registry does not know.
type UnknownSettingError struct {
	Name string
}

func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("unknown setting %q", e.Name)
}

func (*UnknownSettingError) Unwrap() error {
	return ErrUnknownSetting
}

// TypeMismatchError reports a value whose kind differs from the registered kind.
type TypeMismatchError struct {
	Name string
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	got := string(e.Got)
	if got == "" {
		got = "no value"
	}
	return fmt.Sprintf("setting %q expects a %s value, got %s", e.Name, e.Want, got)
}

func (*TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// RangeError reports a numeric value outside the inclusive [Min, Max] bounds.
type RangeError struct {
	Name  string
	Min   int64
	Max   int64
	Value int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("setting %q must be between %d and %d, got %d", e.Name, e.Min, e.Max, e.Value)
}

func (*RangeError) Unwrap() error {
	return ErrOutOfRange
}
