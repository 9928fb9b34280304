// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentEqual(t *testing.T) {
	tests := []struct {
		name  string
		a     Argument
		b     Argument
		equal bool
	}{
		{
			name:  "both empty",
			equal: true,
		},
		{
			name: "one empty",
			a:    Argument{name: "m"},
		},
		{
			name:  "same unique name",
			a:     UniqueArg("m", "512"),
			b:     UniqueArg("m", "1024"),
			equal: true,
		},
		{
			name: "same repeatable name different value",
			a:    RepeatableArg("device", "e1000"),
			b:    RepeatableArg("device", "virtio-rng-pci"),
		},
		{
			name:  "same repeatable name same value",
			a:     RepeatableArg("device", "e1000"),
			b:     RepeatableArg("device", "e1000"),
			equal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestArgumentString(t *testing.T) {
	assert.Equal(t, "-enable-kvm", UniqueArg("enable-kvm").String())
	assert.Equal(t, "-nic user,model=e1000",
		UniqueArg("nic", "user", "model=e1000").String())
	assert.Equal(t, "-smp 4", UniqueUintArg("smp", 4).String())
}
