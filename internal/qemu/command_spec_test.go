// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ultivm/ultivm/internal/qemu"
)

func TestCommandSpecValidate(t *testing.T) {
	tests := []struct {
		name        string
		spec        qemu.CommandSpec
		expectedErr error
	}{
		{
			name: "valid",
			spec: qemu.CommandSpec{Executable: "qemu", VNCPort: 5900},
		},
		{
			name:        "no executable",
			spec:        qemu.CommandSpec{VNCPort: 5900},
			expectedErr: qemu.ErrNoExecutable,
		},
		{
			name:        "vnc port below base",
			spec:        qemu.CommandSpec{Executable: "qemu", VNCPort: 5899},
			expectedErr: qemu.ErrVNCPortBelowBase,
		},
		{
			name:        "vnc port zero",
			spec:        qemu.CommandSpec{Executable: "qemu"},
			expectedErr: qemu.ErrVNCPortBelowBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestCommandSpecVNCDisplay(t *testing.T) {
	tests := []struct {
		port     uint64
		expected uint64
	}{
		{port: 5900, expected: 0},
		{port: 5901, expected: 1},
		{port: 5999, expected: 99},
	}

	for _, tt := range tests {
		spec := qemu.CommandSpec{VNCPort: tt.port}
		assert.Equal(t, tt.expected, spec.VNCDisplay(), "port %d", tt.port)
	}
}
