// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package qemu

// CheckBridge does nothing on non-linux systems. QEMU reports missing bridges
// itself.
func CheckBridge(_ string) error {
	return nil
}
