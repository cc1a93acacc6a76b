// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import "sync"

// Names of the built-in settings.
const (
	ActiveMode                        = "activeMode"
	DelayBeforeClean                  = "delayBeforeClean"
	DomainChangeCleanup               = "domainChangeCleanup"
	EnableGreyListCleanup             = "enableGreyListCleanup"
	CleanCookiesFromOpenTabsOnStartup = "cleanCookiesFromOpenTabsOnStartup"
	GreyCleanLocalstorage             = "greyCleanLocalstorage"
	WhiteCleanLocalstorage            = "whiteCleanLocalstorage"
	ContextualIdentities              = "contextualIdentities"
	LocalstorageCleanup               = "localstorageCleanup"
	StatLogging                       = "statLogging"
	ShowNumOfCookiesInIcon            = "showNumOfCookiesInIcon"
	KeepDefaultIcon                   = "keepDefaultIcon"
	ShowNotificationAfterCleanup      = "showNotificationAfterCleanup"
	NotificationOnScreen              = "notificationOnScreen"
	EnableNewVersionPopup             = "enableNewVersionPopup"
	DebugMode                         = "debugMode"
)

// Bounds of the built-in numeric settings, in seconds.
const (
	MinDelayBeforeClean     int64 = 1
	MaxDelayBeforeClean     int64 = 2147483
	MinNotificationOnScreen int64 = 1
	MaxNotificationOnScreen int64 = 5
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(builtinFields()...)
})

// Default returns the registry of built-in settings.
func Default() *Registry {
	return defaultRegistry()
}

func bounds(minimum, maximum int64) (*int64, *int64) {
	return &minimum, &maximum
}

func builtinFields() []FieldSpec {
	delayMin, delayMax := bounds(MinDelayBeforeClean, MaxDelayBeforeClean)
	notifyMin, notifyMax := bounds(MinNotificationOnScreen, MaxNotificationOnScreen)

	return []FieldSpec{
		{
			Name:        ActiveMode,
			Default:     BoolValue(false),
			Group:       GroupAutoClean,
			DisplayName: "Automatic cleaning",
			HelpText:    "Clean cookies automatically after a tab is closed",
			HelpAnchor:  "#enable-automatic-cleaning",
		},
		{
			Name:        DelayBeforeClean,
			Default:     IntValue(15),
			Min:         delayMin,
			Max:         delayMax,
			Group:       GroupAutoClean,
			DisplayName: "Delay before cleaning",
			HelpText:    "Seconds to wait before automatic cleaning starts",
			HelpAnchor:  "#delay-before-automatic-cleaning",
		},
		{
			Name:        DomainChangeCleanup,
			Default:     BoolValue(false),
			Group:       GroupAutoClean,
			DisplayName: "Clean on domain change",
			HelpText:    "Clean when a tab navigates to a different domain",
			HelpAnchor:  "#enable-cleanup-on-domain-change",
		},
		{
			Name:        EnableGreyListCleanup,
			Default:     BoolValue(true),
			Group:       GroupAutoClean,
			DisplayName: "Greylist cleanup on restart",
			HelpText:    "Clean greylisted sites when the browser restarts",
			HelpAnchor:  "#enable-greylist-cleanup-on-browser-restart",
		},
		{
			Name:        CleanCookiesFromOpenTabsOnStartup,
			Default:     BoolValue(false),
			Group:       GroupAutoClean,
			DisplayName: "Clean open tabs on startup",
			HelpText:    "Clean cookies of tabs that are open when the browser starts",
			HelpAnchor:  "#clean-cookies-from-open-tabs-on-startup",
		},
		{
			Name:        GreyCleanLocalstorage,
			Default:     BoolValue(true),
			Group:       GroupExpression,
			DisplayName: "Clean localStorage for new greylist expressions",
			HelpText:    "New greylist expressions do not keep localStorage",
			HelpAnchor:  "#uncheck-keep-localstorage-on-new-greylist-expressions",
		},
		{
			Name:        WhiteCleanLocalstorage,
			Default:     BoolValue(false),
			Group:       GroupExpression,
			DisplayName: "Clean localStorage for new whitelist expressions",
			HelpText:    "New whitelist expressions do not keep localStorage",
			HelpAnchor:  "#uncheck-keep-localstorage-on-new-whitelist-expressions",
		},
		{
			Name:        ContextualIdentities,
			Default:     BoolValue(false),
			Group:       GroupOtherBrowsing,
			DisplayName: "Container tabs support",
			HelpText:    "Keep separate lists for each isolated identity container",
			HelpAnchor:  "#enable-support-for-firefoxs-container-tabs-firefox-only",
		},
		{
			Name:        LocalstorageCleanup,
			Default:     BoolValue(false),
			Group:       GroupOtherBrowsing,
			DisplayName: "localStorage cleanup",
			HelpText:    "Clean localStorage along with cookies",
			HelpAnchor:  "#enable-localstorage-support",
		},
		{
			Name:        StatLogging,
			Default:     BoolValue(true),
			Group:       GroupExtension,
			DisplayName: "Cleanup log and counter",
			HelpText:    "Keep a log and a counter of cleaned cookies",
			HelpAnchor:  "#enable-cleanup-log-and-counter",
		},
		{
			Name:        ShowNumOfCookiesInIcon,
			Default:     BoolValue(true),
			Group:       GroupExtension,
			DisplayName: "Cookie count in icon",
			HelpText:    "Show the number of cookies for the current domain on the icon",
			HelpAnchor:  "#show-number-of-cookies-for-that-domain",
		},
		{
			Name:        KeepDefaultIcon,
			Default:     BoolValue(false),
			Group:       GroupExtension,
			DisplayName: "Keep default icon",
			HelpText:    "Keep the default icon while showing the cookie count",
			HelpAnchor:  "#keep-default-icon",
		},
		{
			Name:        ShowNotificationAfterCleanup,
			Default:     BoolValue(true),
			Group:       GroupExtension,
			DisplayName: "Cleanup notification",
			HelpText:    "Show a notification after cookies are cleaned",
			HelpAnchor:  "#show-notification-after-cookie-cleanup",
		},
		{
			Name:        NotificationOnScreen,
			Default:     IntValue(3),
			Min:         notifyMin,
			Max:         notifyMax,
			Group:       GroupExtension,
			DisplayName: "Notification duration",
			HelpText:    "Seconds the cleanup notification stays on screen",
			HelpAnchor:  "#show-notification-after-cookie-cleanup",
		},
		{
			Name:        EnableNewVersionPopup,
			Default:     BoolValue(false),
			Group:       GroupExtension,
			DisplayName: "New version popup",
			HelpText:    "Open the release notes when a new version is installed",
			HelpAnchor:  "#enable-popup-when-new-version-is-released",
		},
		{
			Name:        DebugMode,
			Default:     BoolValue(false),
			Group:       GroupExtension,
			DisplayName: "Debug mode",
			HelpText:    "Write detailed diagnostics to the extension console",
			HelpAnchor:  "#debug-mode",
		},
	}
}
