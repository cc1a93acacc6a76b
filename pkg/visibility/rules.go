// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/settings"
)

// Applicability restricts when a setting is meaningful. All applicability rules
// for one setting must hold; a setting without rules is always applicable.
type Applicability struct {
	Setting string
	When    Condition
}

// Advisory attaches a warning to a setting whenever its condition holds.
type Advisory struct {
	Setting string
	Warning WarningKind
	When    Condition
}

// Rules is a complete rule table.
type Rules struct {
	Applicability []Applicability
	Advisories    []Advisory
}

// localStorageMinFirefox is the first Firefox release able to clear
// localStorage per domain.
const localStorageMinFirefox = "58"

// DefaultRules returns the rules for the built-in settings.
func DefaultRules() Rules {
	firefoxDesktop := AllOf(HostIs(capability.HostFirefox), NotOS(capability.OSAndroid))
	notFirefoxAndroid := Not(AllOf(HostIs(capability.HostFirefox), OSIs(capability.OSAndroid)))

	return Rules{
		Applicability: []Applicability{
			{
				Setting: settings.ContextualIdentities,
				When:    firefoxDesktop,
			},
			{
				Setting: settings.LocalstorageCleanup,
				When: AnyOf(
					AllOf(firefoxDesktop, MinHostVersion(localStorageMinFirefox)),
					HostIs(capability.HostChrome),
				),
			},
			{
				Setting: settings.ShowNumOfCookiesInIcon,
				When:    notFirefoxAndroid,
			},
			{
				Setting: settings.KeepDefaultIcon,
				When:    AllOf(notFirefoxAndroid, Enabled(settings.ShowNumOfCookiesInIcon)),
			},
			{
				Setting: settings.DebugMode,
				When:    AnyOf(firefoxDesktop, HostIs(capability.HostChrome)),
			},
		},
		Advisories: []Advisory{
			{
				Setting: settings.LocalstorageCleanup,
				Warning: LocalStorageUnsupportedWithoutOptIn,
				When:    Disabled(settings.LocalstorageCleanup),
			},
			{
				Setting: settings.LocalstorageCleanup,
				Warning: LocalStorageConflictsWithIsolatedIdentities,
				When:    AllOf(Enabled(settings.ContextualIdentities), Enabled(settings.LocalstorageCleanup)),
			},
			{
				Setting: settings.StatLogging,
				Warning: LoggingMayCaptureSensitiveData,
				When:    Enabled(settings.StatLogging),
			},
			{
				Setting: settings.DebugMode,
				Warning: DebugConsoleAvailable,
				When:    Enabled(settings.DebugMode),
			},
		},
	}
}
