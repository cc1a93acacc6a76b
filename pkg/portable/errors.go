// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKeys is returned when an import names settings the registry does not know
	ErrUnknownKeys = errors.New("unknown settings in import")

	// ErrMalformedPayload is returned when an import is not a well-formed settings mapping
	ErrMalformedPayload = errors.New("malformed settings payload")

	// ErrSourceRead is returned when the import source cannot be read
	ErrSourceRead = errors.New("unable to read settings source")
)

// UnknownKeysError lists every key of an import that the registry does not know.
// The whole import is rejected.
type UnknownKeysError struct {
	Keys []string
}

func (e *UnknownKeysError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownKeys, strings.Join(e.Keys, ", "))
}

func (*UnknownKeysError) Unwrap() error {
	return ErrUnknownKeys
}

// MalformedPayloadError reports an import that could not be parsed or does not
// have the expected shape.
type MalformedPayloadError struct {
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrMalformedPayload, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedPayload, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *MalformedPayloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedPayload}
	}
	return []error{ErrMalformedPayload, e.Err}
}

// SourceReadError reports a failure to read an import source.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrSourceRead, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *SourceReadError) Unwrap() []error {
	return []error{ErrSourceRead, e.Err}
}
