// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt holds the Instagram Story prompt model: the six user-editable
// fields, their defaults, and the template that assembles them into the final
// text prompt handed to an image generator.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Tone is the closed set of voices the prompt can ask for.
type Tone string

// Supported tones, in the order the selector shows them.
const (
	ToneBold          Tone = "bold"
	TonePlayful       Tone = "playful"
	ToneAuthoritative Tone = "authoritative"
	ToneUrgent        Tone = "urgent"
)

var (
	// ErrInvalidTone is returned when a tone outside the enumeration is given.
	ErrInvalidTone = errors.New("invalid tone")

	// ErrUnknownField is returned when a field identifier is not one of the six.
	ErrUnknownField = errors.New("unknown field")
)

var tones = []Tone{ToneBold, TonePlayful, ToneAuthoritative, ToneUrgent}

// Tones returns all tones in selector order.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

// ParseTone validates s against the tone enumeration.
func ParseTone(s string) (Tone, error) {
	for _, t := range tones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTone, s)
}

// Label returns the capitalized display name ("Bold", "Urgent", ...).
func (t Tone) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Inputs is one immutable snapshot of the form. Edits never mutate a
// snapshot in place; they produce a new one via With.
type Inputs struct {
	BrandName   string `json:"brandName" yaml:"brandName" toml:"brandName"`
	Region      string `json:"region" yaml:"region" toml:"region"`
	CoreMessage string `json:"coreMessage" yaml:"coreMessage" toml:"coreMessage"`
	MemeStyle   string `json:"memeStyle" yaml:"memeStyle" toml:"memeStyle"`
	Tone        Tone   `json:"tone" yaml:"tone" toml:"tone"`
	CTA         string `json:"cta" yaml:"cta" toml:"cta"`
}

// Defaults returns the snapshot the form starts with and resets to.
func Defaults() Inputs {
	return Inputs{
		BrandName:   "Valasys Media UAE",
		Region:      "UAE / GCC",
		CoreMessage: "Stop fountain donations. Boosting posts without targeting burns budget. Let us run your ads the right way.",
		MemeStyle:   "digital marketing meme",
		Tone:        ToneBold,
		CTA:         "Swipe up for a free ad audit",
	}
}

// With returns a copy of in with a single field replaced. Free-text fields
// accept any value, including the empty string; tone must parse.
func (in Inputs) With(f Field, value string) (Inputs, error) {
	switch f {
	case FieldBrandName:
		in.BrandName = value
	case FieldRegion:
		in.Region = value
	case FieldCoreMessage:
		in.CoreMessage = value
	case FieldMemeStyle:
		in.MemeStyle = value
	case FieldTone:
		t, err := ParseTone(value)
		if err != nil {
			return in, err
		}
		in.Tone = t
	case FieldCTA:
		in.CTA = value
	default:
		return in, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return in, nil
}

// Value returns the current string value of a field.
func (in Inputs) Value(f Field) string {
	switch f {
	case FieldBrandName:
		return in.BrandName
	case FieldRegion:
		return in.Region
	case FieldCoreMessage:
		return in.CoreMessage
	case FieldMemeStyle:
		return in.MemeStyle
	case FieldTone:
		return string(in.Tone)
	case FieldCTA:
		return in.CTA
	}
	return ""
}
