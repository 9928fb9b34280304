// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/ultivm/ultivm/internal/update"
)

const bannerText = "WELCOME TO ULTIVM - A ONLINE VIRTUAL\nCOLLABORATIVE MACHINE"

func printBanner(w io.Writer) {
	renderer := lipgloss.NewRenderer(w)
	style := renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 3).
		Align(lipgloss.Center)

	fmt.Fprintln(w, style.Render(bannerText))
	fmt.Fprintln(w)
}

func printUpdateNotice(w io.Writer, status *update.Status) {
	renderer := lipgloss.NewRenderer(w)
	style := renderer.NewStyle().Foreground(lipgloss.Color("214"))

	msg := fmt.Sprintf("A new version of UltiVM is available: %s (running %s)",
		status.LatestVersion, status.CurrentVersion)
	if status.ReleaseURL != "" {
		msg += "\n" + status.ReleaseURL
	}

	fmt.Fprintln(w, style.Render(msg))
}
