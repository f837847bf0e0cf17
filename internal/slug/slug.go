// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns free text such as a brand name into a lowercase,
// hyphenated token safe for file names and URLs.
package slug

import (
	"regexp"
	"strings"
)

// maxLen caps a slug so download names stay readable.
const maxLen = 48

// separators matches every run of characters that is not an ASCII letter or
// digit. Each run becomes a single hyphen.
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a slug from s, or "" when s has no letters or digits.
// Example: "Valasys Media UAE / GCC" → "valasys-media-uae-gcc"
func Generate(s string) string {
	result := separators.ReplaceAllString(strings.ToLower(s), "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLen {
		result = strings.TrimRight(result[:maxLen], "-")
	}
	return result
}

// Filename builds "<slug>-<base>.<ext>" from a display name, falling back to
// "<base>.<ext>" when the name yields an empty slug.
func Filename(name, base, ext string) string {
	if s := Generate(name); s != "" {
		return s + "-" + base + "." + ext
	}
	return base + "." + ext
}
