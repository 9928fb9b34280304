// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ultivm/ultivm/internal/qemu"
)

func TestArgumentErrorIs(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&qemu.ArgumentError{}), &qemu.ArgumentError{})
	assert.NotErrorIs(t, assert.AnError, &qemu.ArgumentError{})
}

func TestArgumentErrorUnwrap(t *testing.T) {
	err := error(&qemu.ArgumentError{
		Err:   qemu.ErrMissingValue,
		Index: 2,
		Token: "-hda",
	})

	assert.ErrorIs(t, err, qemu.ErrMissingValue)
	assert.NotErrorIs(t, err, qemu.ErrUnknownFlag)
	assert.Equal(t,
		`argument error: flag requires a value: "-hda" (token 2)`,
		err.Error(),
	)
}

func TestCommandErrorIs(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&qemu.CommandError{}), &qemu.CommandError{})
	assert.NotErrorIs(t, assert.AnError, &qemu.CommandError{})
}

func TestCommandErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *qemu.CommandError
		expected string
	}{
		{
			name: "without stderr",
			err: &qemu.CommandError{
				Err:      errors.New("exit status 1"),
				ExitCode: 1,
			},
			expected: "qemu: exit status 1",
		},
		{
			name: "with stderr",
			err: &qemu.CommandError{
				Err:      errors.New("exit status 1"),
				ExitCode: 1,
				Stderr:   "disk not found\n",
			},
			expected: "qemu: exit status 1: disk not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
