// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "golang.org/x/sys/unix"

const kvmDevice = "/dev/kvm"

// KVMAvailable checks if the KVM device is present and writable for the
// current user.
func KVMAvailable() bool {
	return unix.Access(kvmDevice, unix.W_OK) == nil
}
