// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the ultivm configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/ultivm/ultivm/internal/qemu"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "ultivm"
	fileName = "config.yaml"
)

// KVM modes.
const (
	KVMAuto = "auto"
	KVMOn   = "on"
	KVMOff  = "off"
)

// AppConfig is the complete ultivm configuration.
type AppConfig struct {
	QEMU      QEMU      `yaml:"qemu"`
	Webserver Webserver `yaml:"webserver"`
	Update    Update    `yaml:"update"`
	Notifier  Notifier  `yaml:"notifier"`
}

// QEMU is the VM configuration the QEMU command is built from.
type QEMU struct {
	Executable     string   `yaml:"executable"      validate:"required"`
	Machine        string   `yaml:"machine"`
	CPU            string   `yaml:"cpu"`
	Memory         uint64   `yaml:"memory"          validate:"min=128,max=65536"`
	SMP            uint64   `yaml:"smp"             validate:"min=1,max=64"`
	NetworkAdapter string   `yaml:"network_adapter"`
	NetworkBridge  string   `yaml:"network_bridge"`
	VGA            string   `yaml:"vga"`
	VNCPort        uint64   `yaml:"vnc_port"        validate:"min=5900,max=65535"`
	KVM            string   `yaml:"kvm"             validate:"oneof=auto on off"`
	ShowWindow     bool     `yaml:"show_window"`
	Name           string   `yaml:"name"`
	Devices        []string `yaml:"devices"         validate:"dive,required"`
}

// Webserver configures the local status server.
type Webserver struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"    validate:"min=1,max=65535"`
	Auth    bool `yaml:"auth"`
	Metrics bool `yaml:"metrics"`
}

// Update configures the check for new releases.
type Update struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"     validate:"omitempty,url"`
}

// Notifier configures the error dialog shown for failed launches.
type Notifier struct {
	Enabled      bool   `yaml:"enabled"`
	Executable   string `yaml:"executable"    validate:"required_if=Enabled true"`
	DismissLabel string `yaml:"dismiss_label"`
}

// Default returns the configuration used for everything not set in the
// configuration file.
func Default() *AppConfig {
	return &AppConfig{
		QEMU: QEMU{
			Executable:     "qemu-system-x86_64",
			Machine:        "q35",
			CPU:            "max",
			Memory:         2048,
			SMP:            2,
			NetworkAdapter: "e1000",
			VGA:            "std",
			VNCPort:        qemu.VNCBasePort,
			KVM:            KVMAuto,
			Name:           "UltiVM",
		},
		Webserver: Webserver{
			Enabled: true,
			Port:    8080,
		},
		Update: Update{
			Enabled: true,
			URL:     "https://api.github.com/repos/ultivm/ultivm/releases/latest",
		},
		Notifier: Notifier{
			Enabled:      true,
			Executable:   "zenity",
			DismissLabel: "Close",
		},
	}
}

// DefaultPath returns the path of the configuration file in the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the configuration from the file at the given path on top of the
// [Default] configuration.
//
// If path is empty, the file at [DefaultPath] is read if present. An
// explicitly given file must exist. All errors are of type [*Error].
func Load(path string) (*AppConfig, error) {
	explicit := path != ""

	if !explicit {
		var err error

		path, err = DefaultPath()
		if err != nil {
			return nil, &Error{Err: err}
		}
	}

	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, &Error{Path: path, Err: err}
	}
	defer file.Close()

	err = cfg.decode(file)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	err = cfg.Validate()
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	return cfg, nil
}

func (c *AppConfig) decode(reader io.Reader) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks all values for their allowed ranges.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

// CommandSpec returns the [qemu.CommandSpec] for the QEMU configuration.
//
// KVM mode "auto" enables KVM if it is available on the host.
func (c *AppConfig) CommandSpec() qemu.CommandSpec {
	kvm := c.QEMU.KVM == KVMOn
	if c.QEMU.KVM == KVMAuto {
		kvm = qemu.KVMAvailable()
	}

	return qemu.CommandSpec{
		Executable:     c.QEMU.Executable,
		Machine:        c.QEMU.Machine,
		CPU:            c.QEMU.CPU,
		Memory:         c.QEMU.Memory,
		SMP:            c.QEMU.SMP,
		NetworkAdapter: c.QEMU.NetworkAdapter,
		NetworkBridge:  c.QEMU.NetworkBridge,
		VGA:            c.QEMU.VGA,
		VNCPort:        c.QEMU.VNCPort,
		KVM:            kvm,
		ShowWindow:     c.QEMU.ShowWindow,
		Name:           c.QEMU.Name,
		Devices:        slices.Clone(c.QEMU.Devices),
	}
}
