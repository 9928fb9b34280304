// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"

	"github.com/vishvananda/netlink"
)

// CheckBridge verifies that a bridge interface with the given name exists on
// the host.
func CheckBridge(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %s", ErrBridgeNotFound, name)
		}

		return fmt.Errorf("lookup bridge %s: %w", name, err)
	}

	if _, ok := link.(*netlink.Bridge); !ok {
		return fmt.Errorf("%w: %s is %s", ErrBridgeNotFound, name, link.Type())
	}

	return nil
}
