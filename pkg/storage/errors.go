// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
)

var (
	// ErrClosed is returned by operations on a store that has been closed.
	ErrClosed = errors.New("store is closed")

	// ErrLocked is returned when another writer holds the store.
	ErrLocked = errors.New("store is locked by another writer")
)
