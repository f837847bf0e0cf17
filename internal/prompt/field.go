// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import "fmt"

// Field identifies one of the six editable inputs. The string value is the
// key used in forms, URLs and inputs files.
type Field string

// Editable fields.
const (
	FieldBrandName   Field = "brandName"
	FieldRegion      Field = "region"
	FieldCoreMessage Field = "coreMessage"
	FieldMemeStyle   Field = "memeStyle"
	FieldTone        Field = "tone"
	FieldCTA         Field = "cta"
)

// FieldInfo describes how a field is presented.
type FieldInfo struct {
	Field     Field
	Label     string
	Multiline bool // rendered as a textarea
	Choice    bool // rendered as a selector over Tones()
}

var fields = []FieldInfo{
	{Field: FieldBrandName, Label: "Brand Name"},
	{Field: FieldRegion, Label: "Region"},
	{Field: FieldCoreMessage, Label: "Core Message", Multiline: true},
	{Field: FieldMemeStyle, Label: "Meme Style"},
	{Field: FieldTone, Label: "Tone", Choice: true},
	{Field: FieldCTA, Label: "CTA"},
}

// Fields returns every field in form order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, len(fields))
	copy(out, fields)
	return out
}

// ParseField resolves a field key such as "brandName".
func ParseField(key string) (Field, error) {
	for _, fi := range fields {
		if string(fi.Field) == key {
			return fi.Field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
}
