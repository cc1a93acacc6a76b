// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package visibility

// WarningKind identifies an advisory shown next to a setting. Warnings are
// derived from current values on every evaluation and never stored.
type WarningKind int

const (
	// LocalStorageUnsupportedWithoutOptIn: localStorage is left untouched
	// unless localStorage cleanup is turned on.
	LocalStorageUnsupportedWithoutOptIn WarningKind = iota + 1
	// LocalStorageConflictsWithIsolatedIdentities: localStorage cleanup clears
	// every container's storage at once when containers are enabled.
	LocalStorageConflictsWithIsolatedIdentities
	// LoggingMayCaptureSensitiveData: the cleanup log records domains,
	// including those visited in private windows.
	LoggingMayCaptureSensitiveData
	// DebugConsoleAvailable: debug output can be read in the extension console.
	DebugConsoleAvailable
)

// Severity tells the presentation layer how to render a warning.
type Severity string

const (
	// SeverityWarning marks an unsafe or surprising combination
	SeverityWarning Severity = "warning"
	// SeverityInfo marks purely informational advice
	SeverityInfo Severity = "info"
)

var warningNames = map[WarningKind]string{
	LocalStorageUnsupportedWithoutOptIn:         "LocalStorageUnsupportedWithoutOptIn",
	LocalStorageConflictsWithIsolatedIdentities: "LocalStorageConflictsWithIsolatedIdentities",
	LoggingMayCaptureSensitiveData:              "LoggingMayCaptureSensitiveData",
	DebugConsoleAvailable:                       "DebugConsoleAvailable",
}

func (k WarningKind) String() string {
	if name, ok := warningNames[k]; ok {
		return name
	}
	return "UnknownWarning"
}

// Severity returns how serious the warning is.
func (k WarningKind) Severity() Severity {
	if k == DebugConsoleAvailable {
		return SeverityInfo
	}
	return SeverityWarning
}

// Description is the English advisory text for the warning.
func (k WarningKind) Description() string {
	switch k {
	case LocalStorageUnsupportedWithoutOptIn:
		return "localStorage is not cleaned unless localStorage cleanup is enabled"
	case LocalStorageConflictsWithIsolatedIdentities:
		return "localStorage cleanup removes localStorage for every container at once"
	case LoggingMayCaptureSensitiveData:
		return "the cleanup log also records domains cleaned from private browsing"
	case DebugConsoleAvailable:
		return "debug output is written to the extension console; filter on CAD_"
	default:
		return ""
	}
}
