// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"strconv"
)

// VNCBasePort is the TCP port of VNC display 0.
const VNCBasePort = 5900

// CommandSpec defines the parameters for a [Command]. It is not modified once
// a [Command] is built from it.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// QEMU machine type to use. Depends on the QEMU binary used.
	Machine string

	// CPU model to use. Depends on machine type and QEMU binary used.
	CPU string

	// Memory for the machine in MB.
	Memory uint64

	// Number of CPUs for the guest.
	SMP uint64

	// Model of the emulated network adapter, like "e1000" or "virtio-net-pci".
	NetworkAdapter string

	// Host bridge to attach the network adapter to. User mode networking is
	// used if empty.
	NetworkBridge string

	// VGA device type, like "std", "virtio" or "qxl".
	VGA string

	// TCP port the VNC server listens on. Must not be lower than
	// [VNCBasePort].
	VNCPort uint64

	// Enable KVM hardware acceleration.
	KVM bool

	// Show a local display window in addition to VNC.
	ShowWindow bool

	// Name of the VM as presented by QEMU.
	Name string

	// Additional devices, each given as QEMU device spec like
	// "usb-tablet". Every device must be unique.
	Devices []string
}

// Validate checks the spec for values that can not result in a valid
// command.
func (s *CommandSpec) Validate() error {
	if s.Executable == "" {
		return ErrNoExecutable
	}

	if s.VNCPort < VNCBasePort {
		return fmt.Errorf("%w: %d", ErrVNCPortBelowBase, s.VNCPort)
	}

	return nil
}

// VNCDisplay returns the VNC display number for the configured VNC port.
//
// The spec must be validated before, as the result is undefined for ports
// below [VNCBasePort].
func (s *CommandSpec) VNCDisplay() uint64 {
	return s.VNCPort - VNCBasePort
}

// arguments compiles the argument list for the QEMU command from the spec.
func (s *CommandSpec) arguments() []Argument {
	args := []Argument{
		UniqueArg("vnc", ":"+strconv.FormatUint(s.VNCDisplay(), 10)),
	}

	if s.Machine != "" {
		args = append(args, UniqueArg("machine", s.Machine))
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if s.Memory != 0 {
		args = append(args, UniqueUintArg("m", s.Memory))
	}

	if s.SMP != 0 {
		args = append(args, UniqueUintArg("smp", s.SMP))
	}

	if s.NetworkAdapter != "" {
		args = append(args, UniqueArg("nic", s.nicOptions()...))
	}

	if s.VGA != "" {
		args = append(args, UniqueArg("vga", s.VGA))
	}

	if s.KVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	if s.ShowWindow {
		args = append(args, UniqueArg("display", "gtk"))
	}

	for _, device := range s.Devices {
		args = append(args, RepeatableArg("device", device))
	}

	return args
}

func (s *CommandSpec) nicOptions() []string {
	if s.NetworkBridge != "" {
		return []string{"bridge", "br=" + s.NetworkBridge, "model=" + s.NetworkAdapter}
	}

	return []string{"user", "model=" + s.NetworkAdapter}
}
