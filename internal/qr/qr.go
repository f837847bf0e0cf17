// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package qr encodes an assembled prompt as a QR code so it can be moved to
// the phone that builds the Story.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the PNG edge length in pixels.
	DefaultSize = 512

	// MaxBytes is the largest payload encodable at the low recovery level.
	MaxBytes = 2953
)

// ErrTooLong is returned when the text does not fit in a single QR code.
var ErrTooLong = errors.New("text too long for a QR code")

// PNG renders text as a square PNG of the given size.
func PNG(text string, size int) ([]byte, error) {
	code, err := encode(text)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("qr png: %w", err)
	}
	return png, nil
}

// Terminal renders text as a block-character QR code for terminal output.
func Terminal(text string) (string, error) {
	code, err := encode(text)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

func encode(text string) (*qrcode.QRCode, error) {
	if len(text) > MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLong, len(text), MaxBytes)
	}
	code, err := qrcode.New(text, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return code, nil
}
