// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/ultivm/ultivm/internal/config"
	"github.com/ultivm/ultivm/internal/crash"
	"github.com/ultivm/ultivm/internal/launch"
	"github.com/ultivm/ultivm/internal/notify"
	"github.com/ultivm/ultivm/internal/qemu"
	"github.com/ultivm/ultivm/internal/statusserver"
	"github.com/ultivm/ultivm/internal/update"
	"github.com/ultivm/ultivm/internal/version"
	"golang.org/x/sync/errgroup"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitValidation = 2
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newRootCommand(flags *flags, cfg IO) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ultivm",
		Short: "Launch an online collaborative QEMU virtual machine",
		Long: "Launch a QEMU virtual machine customized by a restricted set of QEMU\n" +
			"arguments. The VM is reachable by VNC and a local status page.",
		Example:       `  ultivm --qemu-args "-hda disk.img -accel kvm"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &ParseArgsError{
					msg: "unexpected arguments",
					err: fmt.Errorf("%q", args),
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cfg.Stderr, flags.debugFlag)

			if flags.versionFlag {
				fmt.Fprintf(cfg.Stdout, "UltiVM %s\n", version.String())
				return nil
			}

			return run(cmd.Context(), flags, cfg)
		},
	}

	cmd.SetIn(cfg.Stdin)
	cmd.SetOut(cfg.Stdout)
	cmd.SetErr(cfg.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ParseArgsError{msg: "parse flags", err: err}
	})

	flags.register(cmd)

	return cmd
}

func allowedFlagsHelp() string {
	return strings.Join(qemu.DefaultAllowList().Names(), " ")
}

func newNotifier(cfg config.Notifier) launch.Notifier {
	if !cfg.Enabled {
		return notify.Nop{}
	}

	return &notify.Dialog{
		Executable:   cfg.Executable,
		DismissLabel: cfg.DismissLabel,
	}
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	appCfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	flags.apply(appCfg)

	printBanner(cfg.Stdout)

	if flags.qemuArgs == "" {
		fmt.Fprintln(cfg.Stdout, "No QEMU arguments given, starting the VM without customization.")
		fmt.Fprintln(cfg.Stdout, `To put QEMU arguments, use: ultivm --qemu-args "<args>"`)
	} else {
		fmt.Fprintf(cfg.Stdout, "Parsing QEMU (quick emulator) arguments: %s...\n", flags.qemuArgs)
	}

	registry := prometheus.NewRegistry()

	metrics, err := launch.NewMetrics(registry)
	if err != nil {
		return err
	}

	launcher := &launch.Launcher{
		Spec:     appCfg.CommandSpec(),
		Notifier: newNotifier(appCfg.Notifier),
		Metrics:  metrics,
		Stdin:    cfg.Stdin,
		Stdout:   cfg.Stdout,
		Stderr:   cfg.Stderr,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var group errgroup.Group

	if appCfg.Update.Enabled {
		group.Go(func() error {
			checkForUpdate(ctx, appCfg.Update, cfg.Stdout)
			return nil
		})
	}

	if appCfg.Webserver.Enabled {
		server := newStatusServer(appCfg, launcher, registry)

		group.Go(func() error {
			err := server.ListenAndServe(ctx)
			if err != nil {
				slog.Error("Status server failed", slog.Any("error", err))
			}

			return nil
		})
	}

	worker := launch.Start(ctx, func(ctx context.Context) error {
		defer crash.Handle(cfg.Stderr, os.Exit)

		_, err := launcher.Run(ctx, flags.qemuArgs)

		return err //nolint:wrapcheck
	})

	// The session ends with the VM.
	launchErr := worker.Wait()

	cancel()

	_ = group.Wait()

	return launchErr
}

func newStatusServer(
	appCfg *config.AppConfig,
	launcher *launch.Launcher,
	registry *prometheus.Registry,
) *statusserver.Server {
	serverCfg := statusserver.Config{
		Port: appCfg.Webserver.Port,
		Auth: appCfg.Webserver.Auth,
	}

	if appCfg.Webserver.Metrics {
		serverCfg.Gatherer = registry
	}

	spec := launcher.Spec

	return statusserver.New(serverCfg, statusserver.Info{
		Name:       spec.Name,
		VNCDisplay: spec.VNCDisplay(),
		Version:    version.String(),
		State:      func() string { return launcher.State().String() },
	})
}

func checkForUpdate(ctx context.Context, cfg config.Update, stdout io.Writer) {
	if cfg.URL == "" {
		return
	}

	cacheDir, err := update.DefaultCacheDir()
	if err != nil {
		slog.Debug("No update cache", slog.Any("error", err))
	}

	checker := &update.Checker{
		URL:            cfg.URL,
		CurrentVersion: version.String(),
		CacheDir:       cacheDir,
	}

	status, err := checker.Check(ctx)
	if err != nil {
		slog.Debug("Update check failed", slog.Any("error", err))
		return
	}

	if status.Available {
		printUpdateNotice(stdout, status)
	}
}

func handleRunError(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var validationErr *launch.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintln(stderr, "E: Parsing failed! Please check the QEMU (quick emulator) arguments.")
		fmt.Fprintf(stderr, "Error [ultivm]: %v\n", err)

		return exitValidation
	}

	if errors.Is(err, &ParseArgsError{}) {
		fmt.Fprintf(stderr, "Error [ultivm]: %v\n", err)
		fmt.Fprintln(stderr, "Run 'ultivm --help' for usage.")

		return exitValidation
	}

	// Hypervisor failures have been reported by the launcher already. Its
	// exit code is passed on unless it is taken by validation failures.
	var qemuErr *qemu.CommandError
	if errors.As(err, &qemuErr) {
		if qemuErr.ExitCode > 0 && qemuErr.ExitCode != exitValidation {
			return qemuErr.ExitCode
		}

		return exitError
	}

	fmt.Fprintf(stderr, "Error [ultivm]: %v\n", err)

	return exitError
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return handleRunError(err, cfg.Stderr)
	}

	flags := &flags{}

	root := newRootCommand(flags, cfg)
	root.SetArgs(args)

	err = root.ExecuteContext(ctx)

	return handleRunError(err, cfg.Stderr)
}
