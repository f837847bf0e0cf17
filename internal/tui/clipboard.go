// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tui

import (
	"fmt"

	"github.com/atotto/clipboard"

	"storyprompt/internal/form"
)

// SystemClipboard writes to the OS clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API, whichever is available).
func SystemClipboard() form.Clipboard {
	return form.ClipboardFunc(func(text string) error {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("system clipboard: %w", err)
		}
		return nil
	})
}
