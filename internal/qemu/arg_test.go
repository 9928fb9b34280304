// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultivm/ultivm/internal/qemu"
)

func TestBuildArgumentStrings(t *testing.T) {
	tests := []struct {
		name        string
		args        []qemu.Argument
		expected    []string
		expectedErr error
	}{
		{
			name:     "empty",
			expected: []string{},
		},
		{
			name: "builds",
			args: []qemu.Argument{
				qemu.UniqueArg("machine", "q35"),
				qemu.UniqueUintArg("m", 2048),
				qemu.UniqueArg("enable-kvm"),
				qemu.RepeatableArg("device", "usb-tablet"),
				qemu.RepeatableArg("device", "virtio-rng-pci"),
			},
			expected: []string{
				"-machine", "q35",
				"-m", "2048",
				"-enable-kvm",
				"-device", "usb-tablet",
				"-device", "virtio-rng-pci",
			},
		},
		{
			name: "unique collision",
			args: []qemu.Argument{
				qemu.UniqueArg("vga", "std"),
				qemu.UniqueArg("vga", "virtio"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "repeatable collision",
			args: []qemu.Argument{
				qemu.RepeatableArg("device", "e1000"),
				qemu.RepeatableArg("device", "e1000"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := qemu.BuildArgumentStrings(tt.args)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
