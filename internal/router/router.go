// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// prompt generator web UI.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storyprompt/internal/handlers"
	"storyprompt/internal/middleware"
	"storyprompt/web"
)

// Options holds the router's dependencies.
type Options struct {
	Sessions middleware.SessionStore
	Form     *handlers.Form
	Limiter  *middleware.RateLimiter // nil disables rate limiting
	Secure   bool                    // HTTPS-only cookies
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) (chi.Router, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// The generator: one form snapshot per browser session.
	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}
		r.Use(middleware.NewCSRF(opts.Secure))
		r.Use(middleware.LoadSession(opts.Sessions))

		r.Get("/", opts.Form.Index)
		r.Post("/fields/{field}", opts.Form.UpdateField)
		r.Post("/reset", opts.Form.Reset)
		r.Post("/copy", opts.Form.Copy)
		r.Get("/copy/status", opts.Form.CopyStatus)
		r.Post("/prompt", opts.Form.Sync)
		r.Get("/prompt.txt", opts.Form.PromptText)
		r.Get("/prompt/qr.png", opts.Form.PromptQR)
	})

	return r, nil
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
