// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import "strings"

// fragmentSep separates template fragments with a blank line.
const fragmentSep = "\n\n"

// Assemble renders the prompt for a snapshot. Field values are inserted
// verbatim with no escaping or trimming, so any snapshot yields output.
func Assemble(in Inputs) string {
	parts := []string{
		"Create an action-oriented, high-conversion Instagram Story image in the style of a " + in.MemeStyle + ".",
		`Theme: "Boosting posts without targeting" vs smart ads. Headline idea: "Stop the fountain donations."`,
		"Brand: " + in.BrandName + " (" + in.Region + "). Showcase the brand subtly but clearly.",
		"Core message: " + in.CoreMessage,
		"Tone: " + string(in.Tone) + ". Keep it punchy, meme-like, with high contrast and readable typography.",
		`Visual suggestions: side-by-side meme panels contrasting "Boost" button spam vs strategic ads dashboard; water fountain coin-throwing metaphor vs money-efficient ad machine.`,
		"Design specs: 1080x1920px vertical, safe margins 120px top/bottom for IG UI, bold sans headline, brand color accent in teal/blue.",
		`Include a clear CTA sticker area: "` + in.CTA + `"`,
		"Compliance: avoid misleading claims; do not use competitor logos; avoid tiny text.",
	}
	return strings.Join(parts, fragmentSep)
}
