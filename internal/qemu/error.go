// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFlag is returned if a user supplied token is not in the
	// [AllowList].
	ErrUnknownFlag = errors.New("flag not allowed")

	// ErrMissingValue is returned if a [ValueTaking] flag is the last token.
	ErrMissingValue = errors.New("flag requires a value")

	// ErrInvalidValue is returned if the value of a flag fails its shape
	// check.
	ErrInvalidValue = errors.New("invalid flag value")

	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrVNCPortBelowBase is returned if the configured VNC port is lower than
	// the VNC base port, which would result in a negative display number.
	ErrVNCPortBelowBase = errors.New("vnc port below 5900")

	// ErrNoExecutable is returned if no QEMU executable is configured.
	ErrNoExecutable = errors.New("no qemu executable")

	// ErrBridgeNotFound is returned if the configured network bridge is not
	// present on the host.
	ErrBridgeNotFound = errors.New("network bridge not found")
)

// ArgumentError indicates an issue with user supplied arguments.
type ArgumentError struct {
	Err   error
	Index int
	Token string
}

func newArgumentError(err error, idx int, token string) *ArgumentError {
	return &ArgumentError{Err: err, Index: idx, Token: token}
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	if e.Err == nil {
		return "argument error"
	}

	return fmt.Sprintf("argument error: %v: %q (token %d)", e.Err, e.Token, e.Index)
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// CommandError wraps any error occurred during Command execution.
type CommandError struct {
	Err      error
	ExitCode int

	// Stderr is the error output captured from the QEMU process.
	Stderr string
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	msg := "qemu failed"
	if e.Err != nil {
		msg = "qemu: " + e.Err.Error()
	}

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
