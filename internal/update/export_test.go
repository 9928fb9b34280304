// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package update

import "time"

// SetNow replaces the clock of the checker.
func (c *Checker) SetNow(now func() time.Time) {
	c.now = now
}
