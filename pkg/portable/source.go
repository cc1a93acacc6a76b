// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"context"
	"os"
	"path/filepath"
)

type readResult struct {
	data []byte
	err  error
}

// ReadFile reads the whole import source. The read runs in its own goroutine;
// when ctx ends first the caller stops waiting, but the read itself runs to
// completion and its result is discarded.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	done := make(chan readResult, 1)

	go func() {
		// #nosec G304: the path is chosen by the user importing the file
		data, err := os.ReadFile(cleanPath)
		done <- readResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, &SourceReadError{Path: cleanPath, Err: res.err}
		}
		return res.data, nil
	case <-ctx.Done():
		return nil, &SourceReadError{Path: cleanPath, Err: ctx.Err()}
	}
}
