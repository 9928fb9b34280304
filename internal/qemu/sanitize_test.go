// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ultivm/ultivm/internal/qemu"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty",
			raw:      "",
			expected: "",
		},
		{
			name:     "clean",
			raw:      "-hda disk.img -accel kvm",
			expected: "-hda disk.img -accel kvm",
		},
		{
			name:     "collapses whitespace",
			raw:      "  -hda \t disk.img  ",
			expected: "-hda disk.img",
		},
		{
			name:     "semicolon suffix",
			raw:      "-hda disk.img; rm -rf /",
			expected: "-hda rm -rf /",
		},
		{
			name:     "standalone semicolon",
			raw:      "-usb ; reboot",
			expected: "-usb reboot",
		},
		{
			name:     "and chain",
			raw:      "-cdrom a.iso&&b -usb",
			expected: "-cdrom -usb",
		},
		{
			name:     "pipe",
			raw:      "-hda x|y -usb | cat",
			expected: "-hda -usb cat",
		},
		{
			name:     "single ampersand kept",
			raw:      "-hda a&b",
			expected: "-hda a&b",
		},
		{
			name:     "everything removed",
			raw:      "; && |",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := qemu.SanitizeArgs(tt.raw)
			assert.Equal(t, tt.expected, actual)
			assert.NotContains(t, actual, ";")
			assert.Equal(t, actual, qemu.SanitizeArgs(actual), "idempotent")
			assert.LessOrEqual(t,
				len(strings.Fields(actual)),
				len(strings.Fields(tt.raw)),
			)
		})
	}
}
