// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ultivm/ultivm/internal/cmd"
	"github.com/ultivm/ultivm/internal/crash"
)

func installCrashOutput() {
	dir, err := os.UserCacheDir()
	if err != nil {
		return
	}

	err = crash.Install(filepath.Join(dir, "ultivm"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no crash log: %v\n", err)
	}
}

func main() {
	defer crash.Handle(os.Stderr, os.Exit)

	installCrashOutput()

	ctx, cancel := signal.NotifyContext(context.Background(), shutdownSignals...)

	exitCode := cmd.Run(
		ctx,
		os.Args[1:],
		cmd.IO{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	)

	cancel()
	os.Exit(exitCode)
}
