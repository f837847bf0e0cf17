// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preset loads form inputs from YAML, TOML or JSON files and from
// "field=value" overrides. Keys missing from a file keep their default.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"storyprompt/internal/prompt"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported inputs file format")

// file mirrors prompt.Inputs with optional fields, so a partial file only
// overrides what it names.
type file struct {
	BrandName   *string `json:"brandName" yaml:"brandName" toml:"brandName"`
	Region      *string `json:"region" yaml:"region" toml:"region"`
	CoreMessage *string `json:"coreMessage" yaml:"coreMessage" toml:"coreMessage"`
	MemeStyle   *string `json:"memeStyle" yaml:"memeStyle" toml:"memeStyle"`
	Tone        *string `json:"tone" yaml:"tone" toml:"tone"`
	CTA         *string `json:"cta" yaml:"cta" toml:"cta"`
}

func (f file) values() []fieldValue {
	return []fieldValue{
		{prompt.FieldBrandName, f.BrandName},
		{prompt.FieldRegion, f.Region},
		{prompt.FieldCoreMessage, f.CoreMessage},
		{prompt.FieldMemeStyle, f.MemeStyle},
		{prompt.FieldTone, f.Tone},
		{prompt.FieldCTA, f.CTA},
	}
}

type fieldValue struct {
	field prompt.Field
	value *string
}

// Load reads an inputs file and overlays it on base. The format follows
// the extension: .yaml, .yml, .toml or .json.
func Load(path string, base prompt.Inputs) (prompt.Inputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read inputs file: %w", err)
	}
	in, err := Decode(raw, filepath.Ext(path), base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Decode parses raw in the format named by ext (with or without the leading
// dot) and overlays the fields it sets on base.
func Decode(raw []byte, ext string, base prompt.Inputs) (prompt.Inputs, error) {
	var f file
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		err = yaml.Unmarshal(raw, &f)
	case "toml":
		err = toml.Unmarshal(raw, &f)
	case "json":
		err = json.Unmarshal(raw, &f)
	default:
		return base, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return base, fmt.Errorf("decode inputs: %w", err)
	}

	in := base
	for _, fv := range f.values() {
		if fv.value == nil {
			continue
		}
		if in, err = in.With(fv.field, *fv.value); err != nil {
			return base, err
		}
	}
	return in, nil
}

// ApplySet applies "field=value" assignments in order. The value may be
// empty and may itself contain "=".
func ApplySet(base prompt.Inputs, assignments []string) (prompt.Inputs, error) {
	in := base
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return base, fmt.Errorf("invalid assignment %q, want field=value", a)
		}
		field, err := prompt.ParseField(strings.TrimSpace(key))
		if err != nil {
			return base, err
		}
		if in, err = in.With(field, value); err != nil {
			return base, err
		}
	}
	return in, nil
}
