// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package crash reports unrecovered panics.
//
// [Handle] is deferred at the top of every goroutine that may panic. [Install]
// additionally records fatal runtime errors and panics in goroutines without
// [Handle] to a file.
package crash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
)

// ExitCode is the exit code used after a crash.
const ExitCode = 2

// FileName is the name of the crash output file created by [Install].
const FileName = "crash.log"

// Install registers the file [FileName] in the given directory as process wide
// crash output.
func Install(dir string) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create crash dir: %w", err)
	}

	file, err := os.OpenFile(
		filepath.Join(dir, FileName),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("open crash file: %w", err)
	}

	// SetCrashOutput duplicates the file descriptor.
	defer file.Close()

	err = debug.SetCrashOutput(file, debug.CrashOptions{})
	if err != nil {
		return fmt.Errorf("set crash output: %w", err)
	}

	return nil
}

// Handle recovers a panic, writes a crash report to w and calls exit with
// [ExitCode]. It does nothing if there is no panic.
//
// It must be called directly by defer:
//
//	defer crash.Handle(os.Stderr, os.Exit)
func Handle(w io.Writer, exit func(int)) {
	r := recover()
	if r == nil {
		return
	}

	fmt.Fprintln(w, "Application crashed!")

	if file, line, ok := panicLocation(); ok {
		fmt.Fprintf(w, "Crash occurred at file '%s' line %d\n", file, line)
	}

	fmt.Fprintf(w, "UltiVM ran into an unknown error and can not show an error window!\n%v\n", r)

	exit(ExitCode)
}

// panicLocation finds the first non-runtime frame below the panic.
func panicLocation() (string, int, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	panicking := false

	for {
		frame, more := frames.Next()

		switch {
		case frame.Function == "runtime.gopanic":
			panicking = true
		case panicking && !isRuntime(frame.Function):
			return frame.File, frame.Line, true
		}

		if !more {
			return "", 0, false
		}
	}
}

func isRuntime(function string) bool {
	return strings.HasPrefix(function, "runtime.") ||
		strings.HasPrefix(function, "internal/runtime/")
}
