// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package qemu

// KVMAvailable always returns false on non-linux systems.
func KVMAvailable() bool {
	return false
}
