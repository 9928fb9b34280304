// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides the ultivm version.
package version

import "runtime/debug"

// Version is set at build time:
//
//	go build -ldflags "-X github.com/ultivm/ultivm/internal/version.Version=v0.1.0"
//
// If unset, the module version from the build info is used.
var Version = ""

// fallback is used for builds without version information.
const fallback = "0.0.1"

// String returns the running version.
func String() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		v := info.Main.Version
		if v != "" && v != "(devel)" {
			return v
		}
	}

	return fallback
}
