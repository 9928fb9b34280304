// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "strings"

// shellControlSequences are sequences that chain or pipe commands in a shell.
var shellControlSequences = []string{";", "&&", "|"}

// SanitizeArgs removes all tokens from the given raw argument string that
// contain shell control sequences. The remaining tokens are joined with single
// spaces.
//
// It is meant to be used on strings that passed [ValidateArgs] and never
// fails. A value stripped from a [ValueTaking] flag leaves the flag dangling,
// so the result should be validated again if it differs from the input.
func SanitizeArgs(raw string) string {
	tokens := strings.Fields(raw)
	kept := tokens[:0]

	for _, token := range tokens {
		if !containsShellControl(token) {
			kept = append(kept, token)
		}
	}

	return strings.Join(kept, " ")
}

func containsShellControl(token string) bool {
	for _, seq := range shellControlSequences {
		if strings.Contains(token, seq) {
			return true
		}
	}

	return false
}
