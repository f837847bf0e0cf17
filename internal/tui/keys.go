// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the form's keybindings. Plain keys are left to the text
// fields, so every action sits on a control or navigation key.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	ToneNext key.Binding
	TonePrev key.Binding
	Copy     key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

// NewKeyMap returns the default keybindings.
func NewKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		ToneNext: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next tone"),
		),
		TonePrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous tone"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy prompt"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.TonePrev, k.ToneNext, k.Copy, k.Reset, k.Quit}
}

// helpLine renders bindings as "key desc" pairs.
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
