// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify shows error notifications on the user's desktop.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// DefaultExecutable is the dialog program used if none is configured.
	DefaultExecutable = "zenity"

	// DefaultDismissLabel is the label of the button closing the dialog.
	DefaultDismissLabel = "Close"
)

// ErrNoExecutable is returned if the dialog program can not be found.
var ErrNoExecutable = errors.New("dialog program not found")

// Dialog shows an error dialog by running a zenity compatible program.
type Dialog struct {
	Executable   string
	DismissLabel string
}

// Notify shows a modal error dialog with the given title and body and waits
// for the user to dismiss it.
func (d *Dialog) Notify(ctx context.Context, title, body string) error {
	executable := d.Executable
	if executable == "" {
		executable = DefaultExecutable
	}

	path, err := exec.LookPath(executable)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoExecutable, executable)
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, d.args(title, body)...)
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("run %s: %w: %s", executable, err, msg)
		}

		return fmt.Errorf("run %s: %w", executable, err)
	}

	return nil
}

func (d *Dialog) args(title, body string) []string {
	label := d.DismissLabel
	if label == "" {
		label = DefaultDismissLabel
	}

	return []string{
		"--error",
		"--title=" + title,
		"--text=" + body,
		"--ok-label=" + label,
	}
}

// Nop discards all notifications.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, string, string) error {
	return nil
}
