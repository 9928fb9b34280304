// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ultivm/ultivm/internal/qemu"
)

const notificationTitle = "UltiVM"

// Notifier informs the user about failed launches out of band.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Launcher runs a single QEMU launch.
//
// The zero value is not usable, at least Spec must be set.
type Launcher struct {
	// Spec is the configured part of the QEMU command.
	Spec qemu.CommandSpec

	// AllowList the user supplied arguments are checked against.
	// [qemu.DefaultAllowList] is used if nil.
	AllowList qemu.AllowList

	// Notifier is informed about hypervisor failures. Optional.
	Notifier Notifier

	// Metrics records launch outcomes. Optional.
	Metrics *Metrics

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	state atomic.Int32
	used  atomic.Bool
}

// State returns the current [State] of the launch. It is safe to call
// concurrently with [Launcher.Run].
func (l *Launcher) State() State {
	return State(l.state.Load())
}

// Run validates and sanitizes the given raw user arguments, builds the QEMU
// command and runs it until QEMU exits.
//
// The returned [Outcome] is never nil. Its Err is returned as well. Invalid
// arguments result in a [*ValidationError]. A failing hypervisor results in
// a [*qemu.CommandError] that has been logged and passed to the
// [Notifier] already.
//
// A Launcher can run only once. Further calls return [ErrAlreadyRun].
func (l *Launcher) Run(ctx context.Context, rawArgs string) (*Outcome, error) {
	outcome := &Outcome{
		RunID: uuid.NewString(),
		State: Idle,
	}

	if !l.used.CompareAndSwap(false, true) {
		outcome.State = Failed
		outcome.Err = ErrAlreadyRun

		return outcome, outcome.Err
	}

	logger := slog.With(slog.String("run_id", outcome.RunID))
	start := time.Now()

	outcome.Err = l.run(ctx, logger, rawArgs, outcome)
	if outcome.Err != nil {
		l.setState(logger, Failed)
		outcome.State = Failed
	} else {
		l.setState(logger, Succeeded)
		outcome.State = Succeeded
	}

	l.Metrics.observe(outcome, time.Since(start))
	logger.Debug("Launch finished", slog.Any("outcome", outcome))

	return outcome, outcome.Err
}

func (l *Launcher) run(
	ctx context.Context,
	logger *slog.Logger,
	rawArgs string,
	outcome *Outcome,
) error {
	allowList := l.AllowList
	if allowList == nil {
		allowList = qemu.DefaultAllowList()
	}

	l.setState(logger, Validating)

	err := qemu.ValidateArgs(rawArgs, allowList)
	if err != nil {
		l.Metrics.validationFailed()
		return &ValidationError{Err: err}
	}

	l.setState(logger, Sanitizing)

	tail := qemu.SanitizeArgs(rawArgs)
	if tail != strings.Join(strings.Fields(rawArgs), " ") {
		logger.Warn("Removed arguments containing shell control characters",
			slog.String("args", tail))

		err := qemu.ValidateArgs(tail, allowList)
		if err != nil {
			l.Metrics.validationFailed()
			return &ValidationError{Err: err, Sanitized: true}
		}
	}

	if rawArgs != "" && l.Stdout != nil {
		fmt.Fprintln(l.Stdout, "Parsing success!")
	}

	l.setState(logger, Synthesizing)

	if l.Spec.NetworkBridge != "" {
		err := qemu.CheckBridge(l.Spec.NetworkBridge)
		if err != nil {
			return fmt.Errorf("check network: %w", err)
		}
	}

	cmd, err := qemu.NewCommand(l.Spec, tail)
	if err != nil {
		return fmt.Errorf("new qemu command: %w", err)
	}

	logger.Debug("QEMU command", slog.String("command", cmd.String()))

	l.setState(logger, Running)

	err = cmd.Run(ctx, l.Stdin, l.Stdout, l.Stderr)
	if err != nil {
		var cmdErr *qemu.CommandError
		if errors.As(err, &cmdErr) {
			outcome.ExitCode = cmdErr.ExitCode
			outcome.Stderr = cmdErr.Stderr
		}

		l.report(ctx, logger, outcome, err)

		return err
	}

	return nil
}

func (l *Launcher) setState(logger *slog.Logger, state State) {
	l.state.Store(int32(state))
	logger.Debug("Launch state", slog.String("state", state.String()))
}

// report logs the hypervisor failure and passes it on to the notifier.
// Notifier failures are logged only.
func (l *Launcher) report(
	ctx context.Context,
	logger *slog.Logger,
	outcome *Outcome,
	err error,
) {
	logger.Error("QEMU failed",
		slog.Int("exit_code", outcome.ExitCode),
		slog.String("stderr", outcome.Stderr),
		slog.Any("error", err),
	)

	// Nobody to notify if the user asked for shutdown.
	if l.Notifier == nil || ctx.Err() != nil {
		return
	}

	notifyErr := l.Notifier.Notify(ctx, notificationTitle, notificationBody(outcome))
	if notifyErr != nil {
		logger.Warn("Failed to show error notification",
			slog.Any("error", notifyErr))
	}
}

func notificationBody(outcome *Outcome) string {
	var body strings.Builder

	if outcome.ExitCode > 0 {
		fmt.Fprintf(&body, "QEMU exited with code %d.", outcome.ExitCode)
	} else {
		body.WriteString("QEMU could not be run.")
	}

	if stderr := strings.TrimSpace(outcome.Stderr); stderr != "" {
		body.WriteString("\n\n")
		body.WriteString(stderr)
	}

	return body.String()
}
