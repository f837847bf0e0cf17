// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"storyprompt/internal/form"
	"storyprompt/internal/prompt"
	"storyprompt/internal/tui"
)

// runTUI is swapped out in tests.
var runTUI = func(ctrl *form.Controller) error {
	return tui.Run(ctrl, tea.WithAltScreen())
}

// TUICmd starts the interactive terminal form.
func TUICmd() *cobra.Command {
	var src inputsFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the prompt in an interactive terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startTUI(src)
		},
	}
	src.register(cmd)
	return cmd
}

// startTUI builds a controller preloaded with the resolved inputs and runs
// the terminal form on the system clipboard.
func startTUI(src inputsFlags) error {
	in, err := src.resolve()
	if err != nil {
		return err
	}

	ctrl := form.New(tui.SystemClipboard())
	defer ctrl.Close()
	for _, fi := range prompt.Fields() {
		if err := ctrl.Update(fi.Field, in.Value(fi.Field)); err != nil {
			return err
		}
	}
	return runTUI(ctrl)
}
