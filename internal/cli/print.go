// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyprompt/internal/prompt"
	"storyprompt/internal/qr"
)

// PrintCmd writes the assembled prompt to stdout.
func PrintCmd() *cobra.Command {
	var src inputsFlags
	var asQR bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the assembled prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := src.resolve()
			if err != nil {
				return err
			}
			text := prompt.Assemble(in)

			if asQR {
				code, err := qr.Terminal(text)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), code)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVar(&asQR, "qr", false, "print the prompt as a terminal QR code")
	return cmd
}
