// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli wires the storyprompt commands: the web server, the terminal
// form and a one-shot printer.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storyprompt/internal/preset"
	"storyprompt/internal/prompt"
)

// Execute runs the root command.
func Execute() error {
	return NewRoot().Execute()
}

// Main runs the CLI and returns the process exit status.
func Main() int {
	return exitCode(Execute(), os.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "error:", err)
	return 1
}

// NewRoot builds the command tree. Without a subcommand the terminal form
// is started.
func NewRoot() *cobra.Command {
	var src inputsFlags
	root := &cobra.Command{
		Use:           "storyprompt",
		Short:         "Instagram Story prompt generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startTUI(src)
		},
	}
	src.register(root)

	root.AddCommand(
		ServeCmd(),
		TUICmd(),
		PrintCmd(),
	)
	return root
}

// inputsFlags are the --inputs and --set flags shared by tui and print.
type inputsFlags struct {
	file string
	sets []string
}

func (f *inputsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "inputs", "i", "", "inputs file (.yaml, .yml, .toml or .json)")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "set a field, as field=value (repeatable)")
}

// resolve returns the defaults overlaid by the inputs file, then by --set.
func (f *inputsFlags) resolve() (prompt.Inputs, error) {
	in := prompt.Defaults()
	if f.file != "" {
		var err error
		if in, err = preset.Load(f.file, in); err != nil {
			return in, err
		}
	}
	return preset.ApplySet(in, f.sets)
}
