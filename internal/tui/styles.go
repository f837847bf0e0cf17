// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette.
var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorAccent  = lipgloss.Color("#2ac3de")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")
	colorBgLight = lipgloss.Color("#24283b")
	colorFg      = lipgloss.Color("#c0caf5")
	colorFgDim   = lipgloss.Color("#a9b1d6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorBgLight).
			Background(colorAccent).
			Padding(0, 1).
			MarginLeft(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	outputStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 2).
			MarginRight(1)

	buttonCopiedStyle = buttonStyle.
				Foreground(colorBgLight).
				Background(colorSuccess).
				Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorError)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
