// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Arity defines if a [Flag] consumes the following token as its value.
type Arity int

const (
	// Standalone flags do not consume a value.
	Standalone Arity = iota
	// ValueTaking flags must be followed by exactly one value token.
	ValueTaking
)

// String implements [fmt.Stringer].
func (a Arity) String() string {
	switch a {
	case Standalone:
		return "standalone"
	case ValueTaking:
		return "value-taking"
	default:
		return fmt.Sprintf("arity(%d)", int(a))
	}
}

// Flag is a QEMU flag the user may pass.
type Flag struct {
	Name  string
	Arity Arity

	// Check is an optional shape check for the value of a [ValueTaking] flag.
	Check func(value string) bool
}

// AllowList is the set of [Flag]s that are accepted in user supplied
// arguments. It must not be modified once in use.
type AllowList map[string]Flag

// NewAllowList creates a new [AllowList] from the given [Flag]s.
func NewAllowList(flags ...Flag) AllowList {
	list := make(AllowList, len(flags))
	for _, flag := range flags {
		list[flag.Name] = flag
	}

	return list
}

// DefaultAllowList returns the [AllowList] of flags users may customize their
// VM with.
func DefaultAllowList() AllowList {
	return NewAllowList(
		Flag{Name: "-hda", Arity: ValueTaking},
		Flag{Name: "-cdrom", Arity: ValueTaking},
		Flag{Name: "-drive", Arity: ValueTaking, Check: hasPrefix("file=")},
		Flag{Name: "-accel", Arity: ValueTaking, Check: oneOf("kvm", "tcg")},
		Flag{Name: "-device", Arity: Standalone},
		Flag{Name: "--enable-kvm", Arity: Standalone},
		Flag{Name: "-usb", Arity: Standalone},
	)
}

// Names returns the sorted names of all flags in the list.
func (l AllowList) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ValidateArgs checks the whitespace separated tokens of the given raw
// argument string against the [AllowList].
//
// Tokens are checked from left to right and the first violation is returned
// as [*ArgumentError]. An empty string is valid.
func ValidateArgs(raw string, allowList AllowList) error {
	tokens := strings.Fields(raw)

	for idx := 0; idx < len(tokens); idx++ {
		token := tokens[idx]

		flag, known := allowList[token]
		if !known {
			return newArgumentError(ErrUnknownFlag, idx, token)
		}

		if flag.Arity == Standalone {
			continue
		}

		if idx+1 >= len(tokens) {
			return newArgumentError(ErrMissingValue, idx, token)
		}

		idx++

		if flag.Check != nil && !flag.Check(tokens[idx]) {
			return newArgumentError(ErrInvalidValue, idx, token+" "+tokens[idx])
		}
	}

	return nil
}

func hasPrefix(prefix string) func(string) bool {
	return func(value string) bool {
		return strings.HasPrefix(value, prefix)
	}
}

func oneOf(values ...string) func(string) bool {
	return func(value string) bool {
		return slices.Contains(values, value)
	}
}
