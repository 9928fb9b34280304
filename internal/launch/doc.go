// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launch runs a single QEMU launch from user supplied arguments to the
// exit of the hypervisor.
//
// A [Launcher] walks through the [State]s of a launch exactly once and
// reports failures of the hypervisor to the log and to a best-effort
// [Notifier]. [Start] runs a launch on a background [Worker] that can be
// joined explicitly.
package launch
