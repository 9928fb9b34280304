// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ultivm/ultivm/internal/config"
)

const (
	memoryMin = 128
	memoryMax = 65536
	smpMin    = 1
	smpMax    = 64
)

type flags struct {
	qemuArgs      string
	configPath    string
	memory        uint64
	smp           uint64
	noUpdateCheck bool
	versionFlag   bool
	debugFlag     bool
}

func (f *flags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVarP(
		&f.qemuArgs,
		"qemu-args",
		"q",
		"",
		"QEMU arguments to customize the VM with. Allowed: "+allowedFlagsHelp(),
	)

	fs.StringVarP(
		&f.configPath,
		"config",
		"c",
		"",
		"configuration file (default $XDG_CONFIG_HOME/ultivm/config.yaml)",
	)

	fs.Var(
		&LimitedUintValue{Value: &f.memory, Lower: memoryMin, Upper: memoryMax},
		"memory",
		fmt.Sprintf("memory (in MB) for the VM (%d-%d), overrides config", memoryMin, memoryMax),
	)

	fs.Var(
		&LimitedUintValue{Value: &f.smp, Lower: smpMin, Upper: smpMax},
		"smp",
		fmt.Sprintf("number of CPUs for the VM (%d-%d), overrides config", smpMin, smpMax),
	)

	fs.BoolVar(
		&f.noUpdateCheck,
		"no-update-check",
		false,
		"do not check for a new release",
	)

	fs.BoolVarP(
		&f.versionFlag,
		"version",
		"v",
		false,
		"show version and exit",
	)

	fs.BoolVar(
		&f.debugFlag,
		"debug",
		false,
		"enable debug output",
	)
}

// apply overrides the configuration with values given by flags.
func (f *flags) apply(cfg *config.AppConfig) {
	if f.memory != 0 {
		cfg.QEMU.Memory = f.memory
	}

	if f.smp != 0 {
		cfg.QEMU.SMP = f.smp
	}

	if f.noUpdateCheck {
		cfg.Update.Enabled = false
	}
}
