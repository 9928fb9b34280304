// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !unix

package main

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}
