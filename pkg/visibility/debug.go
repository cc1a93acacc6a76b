// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"net/url"
	"strings"

	"github.com/stacklok/prefs/pkg/capability"
)

// componentEscaper turns query escaping into URI component escaping: spaces
// become %20 and the marks !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// InspectURL returns the page where the host shows the extension's debug
// console, or "" when the host has none.
func InspectURL(host capability.Context, extensionID string) string {
	id := componentEscaper.Replace(url.QueryEscape(extensionID))
	switch host.HostKind {
	case capability.HostFirefox:
		return "about:devtools-toolbox?type=extension&id=" + id
	case capability.HostChrome:
		return "chrome://extensions/?id=" + id
	default:
		return ""
	}
}
