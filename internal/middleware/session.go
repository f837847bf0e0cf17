// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"storyprompt/internal/session"
)

// SessionKey is the context key for the session data.
const SessionKey contextKey = "session"

// SessionStore is the part of session.Store that LoadSession needs.
type SessionStore interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
}

// LoadSession puts the browser's form session in the request context,
// creating one with the default snapshot on first visit. When a session is
// created, its cookie is also added to the request so handlers can save
// changes within the same request. Answers 503 when no session can be
// loaded or created.
func LoadSession(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			data, err := store.Get(ctx, r)
			if err != nil {
				slog.Warn("session load failed, starting a new one",
					"error", err,
					"request_id", RequestIDFromCtx(ctx),
				)
			}

			if data == nil {
				data = session.NewData()
				id, err := store.Create(ctx, w, data)
				if err != nil {
					slog.Error("session create failed",
						"error", err,
						"request_id", RequestIDFromCtx(ctx),
					)
					http.Error(w, "Session store unavailable", http.StatusServiceUnavailable)
					return
				}
				// Swap any stale session cookie for the new one.
				cookies := r.Cookies()
				r = r.Clone(ctx)
				r.Header.Del("Cookie")
				for _, c := range cookies {
					if c.Name != session.CookieName {
						r.AddCookie(c)
					}
				}
				r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
				slog.Debug("session created", "session_id", data.ID)
			}

			ctx = context.WithValue(ctx, SessionKey, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil outside LoadSession.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
