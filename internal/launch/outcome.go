// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import "log/slog"

// Outcome is the result of a single launch.
type Outcome struct {
	// RunID identifies the launch in log records.
	RunID string

	// State is the final state of the launch, either [Succeeded] or [Failed].
	State State

	// ExitCode of the hypervisor process. It is -1 if the process could not
	// be started or was terminated by a signal and 0 if the launch failed
	// before the process was started.
	ExitCode int

	// Stderr is the error output captured from the hypervisor process.
	Stderr string

	// Err is the error the launch failed with.
	Err error
}

// LogValue implements [slog.LogValuer].
func (o *Outcome) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("run_id", o.RunID),
		slog.String("state", o.State.String()),
	}

	if o.State == Failed {
		attrs = append(attrs, slog.Int("exit_code", o.ExitCode))
	}

	return slog.GroupValue(attrs...)
}

func (o *Outcome) outcomeLabel() string {
	if o.State == Succeeded {
		return "success"
	}

	if o.ExitCode != 0 {
		return "exit_error"
	}

	return "error"
}
