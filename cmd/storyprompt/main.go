// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for storyprompt. It installs the
// structured logger and hands over to the command tree.
package main

import (
	"log/slog"
	"os"

	"storyprompt/internal/cli"
)

func main() {
	// Logs go to stderr so `storyprompt print` output stays clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	os.Exit(cli.Main())
}
