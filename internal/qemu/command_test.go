// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultivm/ultivm/internal/qemu"
)

func testSpec() qemu.CommandSpec {
	return qemu.CommandSpec{
		Executable:     "qemu-system-x86_64",
		Machine:        "q35",
		CPU:            "host",
		Memory:         2048,
		SMP:            2,
		NetworkAdapter: "e1000",
		VGA:            "std",
		VNCPort:        5901,
		Name:           "Ultimate VM",
	}
}

func TestNewCommand(t *testing.T) {
	tests := []struct {
		name        string
		spec        func() qemu.CommandSpec
		tail        string
		assertion   assert.ComparisonAssertionFunc
		expected    any
		expectedErr error
	}{
		{
			name:      "vnc display",
			spec:      testSpec,
			assertion: qemu.ArgumentValueAssertionFunc("-vnc", assert.Equal),
			expected:  ":1",
		},
		{
			name: "kvm enabled",
			spec: func() qemu.CommandSpec {
				s := testSpec()
				s.KVM = true

				return s
			},
			assertion: assert.Contains,
			expected:  "-enable-kvm",
		},
		{
			name:      "kvm disabled",
			spec:      testSpec,
			assertion: assert.NotContains,
			expected:  "-enable-kvm",
		},
		{
			name:      "no window",
			spec:      testSpec,
			assertion: assert.NotContains,
			expected:  "-display",
		},
		{
			name: "window",
			spec: func() qemu.CommandSpec {
				s := testSpec()
				s.ShowWindow = true

				return s
			},
			assertion: qemu.ArgumentValueAssertionFunc("-display", assert.Equal),
			expected:  "gtk",
		},
		{
			name:      "name is single argument",
			spec:      testSpec,
			assertion: qemu.ArgumentValueAssertionFunc("-name", assert.Equal),
			expected:  "Ultimate VM",
		},
		{
			name: "name with suboption",
			spec: func() qemu.CommandSpec {
				s := testSpec()
				s.Name = "a,debug-threads=on"

				return s
			},
			assertion: qemu.ArgumentValueAssertionFunc("-name", assert.Equal),
			expected:  "a,,debug-threads=on",
		},
		{
			name:      "tail value",
			spec:      testSpec,
			tail:      "-hda disk.img -accel kvm",
			assertion: qemu.ArgumentValueAssertionFunc("-accel", assert.Equal),
			expected:  "kvm",
		},
		{
			name: "invalid spec",
			spec: func() qemu.CommandSpec {
				s := testSpec()
				s.VNCPort = 80

				return s
			},
			expectedErr: qemu.ErrVNCPortBelowBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := qemu.NewCommand(tt.spec(), tt.tail)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			tt.assertion(t, cmd.Args(), tt.expected)
		})
	}
}

func TestNewCommandOrder(t *testing.T) {
	spec := testSpec()
	spec.KVM = true
	spec.ShowWindow = true

	cmd, err := qemu.NewCommand(spec, qemu.SanitizeArgs("-hda disk.img -accel kvm"))
	require.NoError(t, err)

	expected := []string{
		"-vnc", ":1",
		"-machine", "q35",
		"-cpu", "host",
		"-m", "2048",
		"-smp", "2",
		"-nic", "user,model=e1000",
		"-vga", "std",
		"-enable-kvm",
		"-display", "gtk",
		"-hda", "disk.img",
		"-accel", "kvm",
		"-name", "Ultimate VM",
	}

	assert.Equal(t, "qemu-system-x86_64", cmd.Executable())
	assert.Equal(t, expected, cmd.Args())
	assert.Contains(t, cmd.String(), "-hda disk.img -accel kvm")
	assert.True(t, strings.HasSuffix(cmd.String(), `-name "Ultimate VM"`))

	again, err := qemu.NewCommand(spec, "-hda disk.img -accel kvm")
	require.NoError(t, err)
	assert.Equal(t, cmd.Args(), again.Args(), "deterministic")
}

func TestNewCommandDevices(t *testing.T) {
	spec := testSpec()
	spec.ShowWindow = true
	spec.Devices = []string{"usb-tablet", "virtio-rng-pci"}

	cmd, err := qemu.NewCommand(spec, "-usb")
	require.NoError(t, err)

	args := cmd.Args()
	assert.Equal(t, []string{
		"-display", "gtk",
		"-device", "usb-tablet",
		"-device", "virtio-rng-pci",
		"-usb",
		"-name", "Ultimate VM",
	}, args[len(args)-9:])

	spec.Devices = []string{"usb-tablet", "usb-tablet"}

	_, err = qemu.NewCommand(spec, "")
	assert.ErrorIs(t, err, qemu.ErrArgumentCollision)
}

func TestNewCommandNoShellControl(t *testing.T) {
	cmd, err := qemu.NewCommand(testSpec(), qemu.SanitizeArgs("-hda disk.img; rm -rf /"))
	require.NoError(t, err)

	for _, arg := range cmd.Args() {
		assert.NotContains(t, arg, ";")
	}
}

func TestCommandArgsCopy(t *testing.T) {
	cmd, err := qemu.NewCommand(testSpec(), "")
	require.NoError(t, err)

	args := cmd.Args()
	args[0] = "-modified"

	assert.Equal(t, "-vnc", cmd.Args()[0])
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qemu")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err)

	return path
}

func TestCommandRun(t *testing.T) {
	tests := []struct {
		name             string
		script           string
		expectedStdout   string
		expectedStderr   string
		expectedExitCode int
	}{
		{
			name:           "success",
			script:         `echo "$@"`,
			expectedStdout: "-vnc :0 -usb -name test\n",
		},
		{
			name:             "failure with stderr",
			script:           "echo 'disk not found' >&2; exit 3",
			expectedStderr:   "disk not found\n",
			expectedExitCode: 3,
		},
		{
			name:             "failure without stderr",
			script:           "exit 1",
			expectedExitCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := qemu.CommandSpec{
				Executable: writeScript(t, tt.script),
				VNCPort:    5900,
				Name:       "test",
			}

			cmd, err := qemu.NewCommand(spec, "-usb")
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer

			err = cmd.Run(t.Context(), nil, &stdout, &stderr)
			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())

			if tt.expectedExitCode == 0 {
				require.NoError(t, err)
				return
			}

			var cmdErr *qemu.CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, tt.expectedExitCode, cmdErr.ExitCode)
			assert.Equal(t, tt.expectedStderr, cmdErr.Stderr)
		})
	}
}

func TestCommandRunNotFound(t *testing.T) {
	spec := qemu.CommandSpec{
		Executable: filepath.Join(t.TempDir(), "missing"),
		VNCPort:    5900,
	}

	cmd, err := qemu.NewCommand(spec, "")
	require.NoError(t, err)

	err = cmd.Run(t.Context(), nil, nil, nil)

	var cmdErr *qemu.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestCommandRunCancel(t *testing.T) {
	spec := qemu.CommandSpec{
		Executable: writeScript(t, "trap 'echo terminated >&2; exit 143' TERM\nwhile :; do sleep 0.1 2>/dev/null; done"),
		VNCPort:    5900,
	}

	cmd, err := qemu.NewCommand(spec, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	var stderr bytes.Buffer

	err = cmd.Run(ctx, nil, nil, &stderr)

	var cmdErr *qemu.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 143, cmdErr.ExitCode)
	assert.Equal(t, "terminated\n", stderr.String())
}
