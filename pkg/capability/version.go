// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// versionPattern accepts browser style versions such as "58", "74.0.3729.169"
// and "128.0b3". Components past the third are accepted and ignored.
var versionPattern = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.\d+)*(?:-?([a-zA-Z][0-9a-zA-Z]*))?$`)

// Version is a parsed host version. Versions are ordered numerically field by
// field; a pre-release suffix orders before the release it belongs to.
type Version struct {
	raw       string
	canonical string
}

// ParseVersion parses a host version string.
func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	m := versionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("invalid host version %q", raw)
	}

	parts := make([]string, 3)
	for i := range parts {
		field := m[i+1]
		if field == "" {
			parts[i] = "0"
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid host version %q: %w", raw, err)
		}
		parts[i] = strconv.FormatUint(n, 10)
	}

	canonical := "v" + strings.Join(parts, ".")
	if pre := m[4]; pre != "" {
		canonical += "-" + pre
	}
	if !semver.IsValid(canonical) {
		return Version{}, fmt.Errorf("invalid host version %q", raw)
	}
	return Version{raw: trimmed, canonical: canonical}, nil
}

// MustParseVersion is like ParseVersion but panics on invalid input. It is meant
// for version literals in rule tables.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.canonical == ""
}

// Compare returns -1, 0 or +1 as v is lower than, equal to or greater than o.
// A zero Version orders before every parsed version.
func (v Version) Compare(o Version) int {
	return semver.Compare(v.canonical, o.canonical)
}

// AtLeast reports whether v >= minimum. A zero Version is never at least anything.
func (v Version) AtLeast(minimum Version) bool {
	if v.IsZero() {
		return false
	}
	return v.Compare(minimum) >= 0
}

func (v Version) String() string {
	return v.raw
}
