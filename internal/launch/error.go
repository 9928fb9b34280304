// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned if a [Launcher] is run more than once.
var ErrAlreadyRun = errors.New("launcher already run")

// ValidationError is returned if the user supplied arguments are rejected.
// No process is launched in this case.
type ValidationError struct {
	Err error

	// Sanitized is true if the arguments have been rejected after shell
	// control tokens have been removed.
	Sanitized bool
}

// Error implements the [error] interface.
func (e *ValidationError) Error() string {
	msg := "invalid qemu arguments"
	if e.Sanitized {
		msg += " after sanitizing"
	}

	if e.Err == nil {
		return msg
	}

	return fmt.Sprintf("%s: %v", msg, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
