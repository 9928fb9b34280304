// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"

	"github.com/stretchr/testify/assert"
)

// ArgumentValueAssertionFunc returns an [assert.ComparisonAssertionFunc] that
// can be used to assert the value following the flag with the given name in
// an argument list as returned by [Command.Args].
func ArgumentValueAssertionFunc(
	name string,
	assertion assert.ComparisonAssertionFunc,
) assert.ComparisonAssertionFunc {
	return func(t assert.TestingT, arg1, arg2 any, arg3 ...any) bool {
		args, ok := arg1.([]string)
		if !assert.True(t, ok, "first argument should be []string") {
			return false
		}

		idx := slices.Index(args, name)
		if idx < 0 || idx+1 >= len(args) {
			return assert.Fail(t, "Argument not found", name)
		}

		return assertion(t, args[idx+1], arg2, arg3...)
	}
}
