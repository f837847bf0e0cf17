// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier in requests and responses.
const RequestIDHeader = "X-Request-ID"

const requestIDKey contextKey = "request_id"

// maxRequestIDLen caps client-supplied identifiers so they stay log-safe.
const maxRequestIDLen = 64

// RequestID tags every request with an identifier. An incoming X-Request-ID
// is kept when it is short enough; otherwise a new UUID is generated. The
// identifier is echoed in the response and available via RequestIDFromCtx.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromCtx returns the request identifier, or "" outside RequestID.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
