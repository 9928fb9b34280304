// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import "strconv"

// State is the progress of a single launch.
type State int32

const (
	Idle State = iota
	Validating
	Sanitizing
	Synthesizing
	Running
	Succeeded
	Failed
)

var stateNames = [...]string{
	Idle:         "idle",
	Validating:   "validating",
	Sanitizing:   "sanitizing",
	Synthesizing: "synthesizing",
	Running:      "running",
	Succeeded:    "succeeded",
	Failed:       "failed",
}

// String implements [fmt.Stringer].
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}

	return stateNames[s]
}

// Terminal returns true for states a launch never leaves.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}
