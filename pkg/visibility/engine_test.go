// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/settings"
)

func host(t *testing.T, kind capability.HostKind, version, os string) capability.Context {
	t.Helper()
	c, err := capability.New(kind, version, os)
	require.NoError(t, err)
	return c
}

func with(snap settings.Snapshot, name string, v settings.Value) settings.Snapshot {
	out := snap.Clone()
	out[name] = settings.Setting{Name: name, Value: v}
	return out
}

func TestEvaluate_LocalStorageApplicability(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	defaults := settings.Default().Defaults()

	tests := []struct {
		name string
		host capability.Context
		want bool
	}{
		{"firefox 58 android", host(t, capability.HostFirefox, "58", "android"), false},
		{"firefox 58 linux", host(t, capability.HostFirefox, "58", "linux"), true},
		{"firefox 57 linux", host(t, capability.HostFirefox, "57.0.4", "linux"), false},
		// lexically "100" < "58"
		{"firefox 100 windows", host(t, capability.HostFirefox, "100", "win"), true},
		{"firefox without version", host(t, capability.HostFirefox, "", "linux"), false},
		{"chrome any version", host(t, capability.HostChrome, "", "linux"), true},
		{"chrome android", host(t, capability.HostChrome, "74", "android"), true},
		{"unknown host", host(t, capability.HostUnknown, "90", "linux"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := engine.Evaluate(tt.host, defaults)
			assert.Equal(t, tt.want, report.Applicable(settings.LocalstorageCleanup))
		})
	}
}

func TestEvaluate_HostGates(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	defaults := settings.Default().Defaults()

	firefoxAndroid := engine.Evaluate(host(t, capability.HostFirefox, "68", "android"), defaults)
	assert.False(t, firefoxAndroid.Applicable(settings.ContextualIdentities))
	assert.False(t, firefoxAndroid.Applicable(settings.ShowNumOfCookiesInIcon))
	assert.False(t, firefoxAndroid.Applicable(settings.KeepDefaultIcon))
	assert.False(t, firefoxAndroid.Applicable(settings.DebugMode))
	assert.True(t, firefoxAndroid.Applicable(settings.ActiveMode))

	firefoxDesktop := engine.Evaluate(host(t, capability.HostFirefox, "68", "linux"), defaults)
	assert.True(t, firefoxDesktop.Applicable(settings.ContextualIdentities))
	assert.True(t, firefoxDesktop.Applicable(settings.ShowNumOfCookiesInIcon))
	assert.True(t, firefoxDesktop.Applicable(settings.KeepDefaultIcon))
	assert.True(t, firefoxDesktop.Applicable(settings.DebugMode))

	chrome := engine.Evaluate(host(t, capability.HostChrome, "80", "mac"), defaults)
	assert.False(t, chrome.Applicable(settings.ContextualIdentities))
	assert.True(t, chrome.Applicable(settings.DebugMode))

	unknown := engine.Evaluate(host(t, capability.HostUnknown, "", "linux"), defaults)
	assert.False(t, unknown.Applicable(settings.DebugMode))
	assert.True(t, unknown.Applicable(settings.ShowNumOfCookiesInIcon))

	assert.False(t, chrome.Applicable("bogusSetting"))
}

func TestEvaluate_KeepDefaultIconFollowsPeer(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	h := host(t, capability.HostChrome, "80", "linux")
	defaults := settings.Default().Defaults()

	assert.True(t, engine.Evaluate(h, defaults).Applicable(settings.KeepDefaultIcon))

	hidden := with(defaults, settings.ShowNumOfCookiesInIcon, settings.BoolValue(false))
	assert.False(t, engine.Evaluate(h, hidden).Applicable(settings.KeepDefaultIcon))
}

func TestEvaluate_Warnings(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	h := host(t, capability.HostFirefox, "70", "linux")
	defaults := settings.Default().Defaults()

	t.Run("localStorage off warns about opt-in", func(t *testing.T) {
		t.Parallel()
		report := engine.Evaluate(h, defaults)
		assert.Equal(t, []WarningKind{LocalStorageUnsupportedWithoutOptIn}, report.Warnings(settings.LocalstorageCleanup))
	})

	t.Run("localStorage on alone has no warning", func(t *testing.T) {
		t.Parallel()
		snap := with(defaults, settings.LocalstorageCleanup, settings.BoolValue(true))
		assert.Empty(t, engine.Evaluate(h, snap).Warnings(settings.LocalstorageCleanup))
	})

	t.Run("localStorage with containers conflicts", func(t *testing.T) {
		t.Parallel()
		snap := with(defaults, settings.LocalstorageCleanup, settings.BoolValue(true))
		snap = with(snap, settings.ContextualIdentities, settings.BoolValue(true))
		report := engine.Evaluate(h, snap)
		assert.Equal(t,
			[]WarningKind{LocalStorageConflictsWithIsolatedIdentities},
			report.Warnings(settings.LocalstorageCleanup))
		assert.Empty(t, report.Warnings(settings.ContextualIdentities))
	})

	t.Run("stat logging on warns", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]WarningKind{LoggingMayCaptureSensitiveData},
			engine.Evaluate(h, defaults).Warnings(settings.StatLogging))

		off := with(defaults, settings.StatLogging, settings.BoolValue(false))
		assert.Empty(t, engine.Evaluate(h, off).Warnings(settings.StatLogging))
	})

	t.Run("debug mode adds info advisory", func(t *testing.T) {
		t.Parallel()
		snap := with(defaults, settings.DebugMode, settings.BoolValue(true))
		warnings := engine.Evaluate(h, snap).Warnings(settings.DebugMode)
		require.Equal(t, []WarningKind{DebugConsoleAvailable}, warnings)
		assert.Equal(t, SeverityInfo, warnings[0].Severity())
	})

	t.Run("warnings are independent of applicability", func(t *testing.T) {
		t.Parallel()
		android := host(t, capability.HostFirefox, "58", "android")
		snap := with(defaults, settings.LocalstorageCleanup, settings.BoolValue(true))
		snap = with(snap, settings.ContextualIdentities, settings.BoolValue(true))
		d, ok := engine.Evaluate(android, snap).Get(settings.LocalstorageCleanup)
		require.True(t, ok)
		assert.False(t, d.Applicable)
		assert.Equal(t, []WarningKind{LocalStorageConflictsWithIsolatedIdentities}, d.Warnings)
	})
}

func TestEvaluate_ReflectsCurrentValuesEveryCall(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	h := host(t, capability.HostChrome, "80", "linux")
	snap := settings.Default().Defaults()

	assert.NotEmpty(t, engine.Evaluate(h, snap).Warnings(settings.LocalstorageCleanup))
	snap = with(snap, settings.LocalstorageCleanup, settings.BoolValue(true))
	assert.Empty(t, engine.Evaluate(h, snap).Warnings(settings.LocalstorageCleanup))
	snap = with(snap, settings.LocalstorageCleanup, settings.BoolValue(false))
	assert.NotEmpty(t, engine.Evaluate(h, snap).Warnings(settings.LocalstorageCleanup))
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	h := host(t, capability.HostFirefox, "58", "linux")
	snap := with(settings.Default().Defaults(), settings.ContextualIdentities, settings.BoolValue(true))
	snap = with(snap, settings.LocalstorageCleanup, settings.BoolValue(true))

	first := engine.Evaluate(h, snap)

	var wg sync.WaitGroup
	reports := make([]Report, 8)
	for i := range reports {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reports[i] = engine.Evaluate(h, snap)
		}()
	}
	wg.Wait()

	for _, r := range reports {
		assert.Equal(t, first.Decisions(), r.Decisions())
	}

	names := settings.Default().KnownNames()
	decisions := first.Decisions()
	require.Len(t, decisions, len(names))
	for i, d := range decisions {
		assert.Equal(t, names[i], d.Name)
	}
}

func TestEvaluate_RuleOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	reversed := Rules{}
	for i := len(rules.Applicability) - 1; i >= 0; i-- {
		reversed.Applicability = append(reversed.Applicability, rules.Applicability[i])
	}
	for i := len(rules.Advisories) - 1; i >= 0; i-- {
		reversed.Advisories = append(reversed.Advisories, rules.Advisories[i])
	}
	// a second copy of a rule must not duplicate its warning
	reversed.Advisories = append(reversed.Advisories, rules.Advisories...)

	forward, err := NewEngine(settings.Default(), rules)
	require.NoError(t, err)
	backward, err := NewEngine(settings.Default(), reversed)
	require.NoError(t, err)

	h := host(t, capability.HostFirefox, "60", "linux")
	snap := with(settings.Default().Defaults(), settings.DebugMode, settings.BoolValue(true))
	snap = with(snap, settings.ContextualIdentities, settings.BoolValue(true))
	snap = with(snap, settings.LocalstorageCleanup, settings.BoolValue(true))

	assert.Equal(t, forward.Evaluate(h, snap).Decisions(), backward.Evaluate(h, snap).Decisions())
}

func TestNewEngine_InvalidRules(t *testing.T) {
	t.Parallel()

	reg := settings.Default()

	tests := []struct {
		name  string
		rules Rules
	}{
		{"unknown applicability setting", Rules{Applicability: []Applicability{{Setting: "nope", When: Always()}}}},
		{"nil applicability condition", Rules{Applicability: []Applicability{{Setting: settings.DebugMode}}}},
		{"unknown advisory setting", Rules{Advisories: []Advisory{{Setting: "nope", Warning: DebugConsoleAvailable, When: Always()}}}},
		{"nil advisory condition", Rules{Advisories: []Advisory{{Setting: settings.DebugMode, Warning: DebugConsoleAvailable}}}},
		{"unknown warning kind", Rules{Advisories: []Advisory{{Setting: settings.DebugMode, Warning: 99, When: Always()}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEngine(reg, tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestReport_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Report
	_, ok := r.Get(settings.ActiveMode)
	assert.False(t, ok)
	assert.Empty(t, r.Decisions())
	assert.Empty(t, r.Warnings(settings.ActiveMode))
}

func TestWarningKind(t *testing.T) {
	t.Parallel()

	for kind := range warningNames {
		assert.NotEqual(t, "UnknownWarning", kind.String())
		assert.NotEmpty(t, kind.Description())
	}
	assert.Equal(t, SeverityWarning, LocalStorageConflictsWithIsolatedIdentities.Severity())
	assert.Equal(t, "UnknownWarning", WarningKind(0).String())
	assert.Empty(t, WarningKind(0).Description())
}

func TestInspectURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"about:devtools-toolbox?type=extension&id=CookieAutoDelete%40kennydo.com",
		InspectURL(host(t, capability.HostFirefox, "70", "linux"), "CookieAutoDelete@kennydo.com"))
	assert.Equal(t,
		"chrome://extensions/?id=fhhjdecojnenilkdnlcomciaedmllcbc",
		InspectURL(host(t, capability.HostChrome, "80", "linux"), "fhhjdecojnenilkdnlcomciaedmllcbc"))
	assert.Empty(t, InspectURL(host(t, capability.HostUnknown, "", "linux"), "x"))

	firefox := host(t, capability.HostFirefox, "70", "linux")
	tests := []struct {
		id   string
		want string
	}{
		{"my extension", "my%20extension"},
		{"a+b", "a%2Bb"},
		{"{6f1c}", "%7B6f1c%7D"},
		{"it's(ok)!*~", "it's(ok)!*~"},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
	}
	for _, tt := range tests {
		assert.Equal(t, "about:devtools-toolbox?type=extension&id="+tt.want, InspectURL(firefox, tt.id), tt.id)
	}
}
