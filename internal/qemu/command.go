// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// waitDelay is the time QEMU has for shutting down after it has been asked to
// terminate, before it is killed.
const waitDelay = 10 * time.Second

// Command is a single QEMU command that can be run.
type Command struct {
	executable string
	args       []string
}

// NewCommand builds a new [Command] from the given [CommandSpec] and the user
// supplied argument tail.
//
// The tail must have passed [ValidateArgs] and [SanitizeArgs]. Its tokens are
// appended as they are, after the arguments built from the spec and before
// the VM name.
func NewCommand(spec CommandSpec, tail string) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	args, err := BuildArgumentStrings(spec.arguments())
	if err != nil {
		return nil, err
	}

	args = append(args, strings.Fields(tail)...)

	if spec.Name != "" {
		args = append(args, "-name", escapeOptionValue(spec.Name))
	}

	return &Command{
		executable: spec.Executable,
		args:       args,
	}, nil
}

// Executable returns the QEMU binary the command runs.
func (c *Command) Executable() string {
	return c.executable
}

// Args returns a copy of the arguments passed to the QEMU binary.
func (c *Command) Args() []string {
	return slices.Clone(c.args)
}

// String returns the command line with arguments quoted as necessary. It is
// meant for humans only, the command never runs through a shell.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.args)+1)

	for _, part := range append([]string{c.executable}, c.args...) {
		if part == "" || strings.ContainsAny(part, " \t\n\"'\\$") {
			part = strconv.Quote(part)
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, " ")
}

// Run runs the command and waits for QEMU to exit.
//
// The error output of QEMU is written to stderr and captured at the same
// time. If QEMU can not be started or exits with non-zero exit code, a
// [*CommandError] carrying the exit code and the captured error output is
// returned.
//
// Once the given context is done, QEMU is asked to terminate by SIGTERM and
// killed if it does not exit in time.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	captured := &limitedBuffer{limit: captureLimit}

	errWriter := io.Writer(captured)
	if stderr != nil {
		errWriter = io.MultiWriter(stderr, captured)
	}

	cmd := exec.CommandContext(ctx, c.executable, c.args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = errWriter
	cmd.WaitDelay = waitDelay
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}

	err := cmd.Run()
	if err != nil {
		exitCode := -1

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return &CommandError{
			Err:      fmt.Errorf("run: %w", err),
			ExitCode: exitCode,
			Stderr:   captured.String(),
		}
	}

	return nil
}

// captureLimit is the maximum number of bytes of error output kept for
// error reporting.
const captureLimit = 64 << 10

// limitedBuffer keeps the first limit bytes written to it and discards the
// rest.
type limitedBuffer struct {
	buf   []byte
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if free := b.limit - len(b.buf); free > 0 {
		b.buf = append(b.buf, p[:min(free, len(p))]...)
	}

	return len(p), nil
}

func (b *limitedBuffer) String() string {
	return string(b.buf)
}

// escapeOptionValue escapes the value for use in a QEMU option list, where
// "," separates suboptions and ",," is a literal comma.
func escapeOptionValue(value string) string {
	return strings.ReplaceAll(value, ",", ",,")
}
