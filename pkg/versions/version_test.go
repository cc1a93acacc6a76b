// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"encoding/json"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, version, commit, buildDate string) {
	t.Helper()
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})
	Version, Commit, BuildDate = version, commit, buildDate
}

func TestGetVersionInfo_Naming(t *testing.T) { //nolint:paralleltest // Modifies package build variables
	tests := []struct {
		name        string
		version     string
		commit      string
		wantVersion string
	}{
		{name: "dev build uses first eight commit characters", version: "dev", commit: "0f3c9a71b2e4d5c6", wantVersion: "build-0f3c9a71"},
		{name: "dev build with eight character commit", version: "dev", commit: "0f3c9a71", wantVersion: "build-0f3c9a71"},
		{name: "dev build with short commit", version: "dev", commit: "0f3c", wantVersion: "build-0f3c"},
		{name: "dev build without commit", version: "dev", commit: unknownStr, wantVersion: "build-unknown"},
		{name: "tagged release keeps its version", version: "v0.4.1", commit: "0f3c9a71b2e4d5c6", wantVersion: "v0.4.1"},
	}

	for _, tt := range tests { //nolint:paralleltest // Modifies package build variables
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, unknownStr)

			info := GetVersionInfo()
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.commit, info.Commit, "commit is reported in full")
		})
	}
}

func TestGetVersionInfo_BuildDate(t *testing.T) { //nolint:paralleltest // Modifies package build variables
	tests := []struct {
		name      string
		buildDate string
		want      string
	}{
		{name: "utc timestamp", buildDate: "2025-06-02T08:15:00Z", want: "2025-06-02 08:15:00 UTC"},
		{name: "offset timestamp is converted to utc", buildDate: "2025-06-02T10:15:00+02:00", want: "2025-06-02 08:15:00 UTC"},
		{name: "date without time is kept", buildDate: "2025-06-02", want: "2025-06-02"},
		{name: "unknown is kept", buildDate: unknownStr, want: unknownStr},
	}

	for _, tt := range tests { //nolint:paralleltest // Modifies package build variables
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, "v0.4.1", "0f3c9a71", tt.buildDate)
			assert.Equal(t, tt.want, GetVersionInfo().BuildDate)
		})
	}
}

func TestGetVersionInfo_JSON(t *testing.T) { //nolint:paralleltest // Modifies package build variables
	withBuildInfo(t, "v0.4.1", "0f3c9a71", "2025-06-02T08:15:00Z")

	data, err := json.Marshal(GetVersionInfo())
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]string{
		"version":    "v0.4.1",
		"commit":     "0f3c9a71",
		"build_date": "2025-06-02 08:15:00 UTC",
		"go_version": runtime.Version(),
		"platform":   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}, got)
}
