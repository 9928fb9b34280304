// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for checking user supplied QEMU arguments
// and composing and running QEMU system virtualization commands as needed by
// ultivm. It expects the required QEMU binary to be present on the system.
//
// User supplied arguments are never handed to a shell. They are checked
// against an [AllowList] with [ValidateArgs], stripped of tokens carrying
// shell control characters with [SanitizeArgs] and appended as discrete
// arguments to the ones built from the [CommandSpec] by [NewCommand].
package qemu
