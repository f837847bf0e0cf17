// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// qrKeyPrefix is the Valkey key prefix for cached QR images.
	qrKeyPrefix = "qr:"

	// DefaultQRTTL is how long a rendered QR image stays cached.
	DefaultQRTTL = 10 * time.Minute
)

// QRCache stores rendered QR PNGs keyed by the text they encode, so that
// repeated requests for an unchanged prompt skip the encoder.
type QRCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQRCache creates a QR cache backed by the given Valkey client.
func NewQRCache(client *redis.Client, ttl time.Duration) *QRCache {
	if ttl == 0 {
		ttl = DefaultQRTTL
	}
	return &QRCache{client: client, ttl: ttl}
}

// Get returns the cached image for text, if present. Errors count as misses.
func (qc *QRCache) Get(ctx context.Context, text string) ([]byte, bool) {
	key := QRKey(text)
	val, err := qc.client.Get(ctx, qrKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("qr cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("qr cache hit", "key", key)
	return val, true
}

// Set stores the image for text with the configured TTL.
func (qc *QRCache) Set(ctx context.Context, text string, png []byte) {
	key := QRKey(text)
	if err := qc.client.Set(ctx, qrKeyPrefix+key, png, qc.ttl).Err(); err != nil {
		slog.Warn("qr cache set error", "key", key, "error", err)
	}
}

// QRKey derives the cache key for text.
func QRKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
