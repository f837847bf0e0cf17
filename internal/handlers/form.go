// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the prompt generator.
// Handlers receive their dependencies through the handler struct and keep
// each browser's form snapshot in its session.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"storyprompt/internal/form"
	"storyprompt/internal/middleware"
	"storyprompt/internal/prompt"
	"storyprompt/internal/qr"
	"storyprompt/internal/render"
	"storyprompt/internal/session"
	"storyprompt/internal/slug"
)

// PageTitle is the heading and <title> of the generator page.
const PageTitle = "Instagram Story Prompt Generator"

// maxCopyErrorLen caps the browser-reported clipboard error kept in the session.
const maxCopyErrorLen = 200

// SessionModifier applies a change to the stored session snapshot.
// *session.Store satisfies it.
type SessionModifier interface {
	Modify(ctx context.Context, r *http.Request, current *session.Data, fn func(*session.Data)) (*session.Data, error)
}

// QRStore caches rendered QR codes. *cache.QRCache satisfies it.
type QRStore interface {
	Get(ctx context.Context, text string) ([]byte, bool)
	Set(ctx context.Context, text string, png []byte)
}

// Form groups the generator page handlers.
type Form struct {
	renderer *render.Renderer
	sessions SessionModifier
	qrCache  QRStore
	ackDelay time.Duration
	now      func() time.Time
}

// NewForm creates the Form handler group. qrCache may be nil, in which case
// QR codes are rendered on every request. A non-positive ackDelay uses
// form.DefaultAckDelay.
func NewForm(renderer *render.Renderer, sessions SessionModifier, qrCache QRStore, ackDelay time.Duration) *Form {
	if ackDelay <= 0 {
		ackDelay = form.DefaultAckDelay
	}
	return &Form{
		renderer: renderer,
		sessions: sessions,
		qrCache:  qrCache,
		ackDelay: ackDelay,
		now:      time.Now,
	}
}

// Index renders the generator page for the session's snapshot.
func (f *Form) Index(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}
	f.renderer.Page(w, r, "index", f.pageData(data))
}

// UpdateField replaces one field of the snapshot with the submitted value and
// answers with the refreshed output panel. The form key is the field name.
func (f *Form) UpdateField(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}

	field, err := prompt.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		http.Error(w, "Unknown field", http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	values, present := r.PostForm[string(field)]
	if !present {
		http.Error(w, "Missing field value", http.StatusBadRequest)
		return
	}

	value := values[0]
	if _, err := data.Inputs.With(field, value); err != nil {
		if errors.Is(err, prompt.ErrInvalidTone) {
			http.Error(w, "Invalid tone", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Invalid field", http.StatusBadRequest)
		return
	}

	data, ok = f.modify(w, r, data, func(d *session.Data) {
		d.Inputs, _ = d.Inputs.With(field, value)
		d.Ack.Warning = ""
	})
	if !ok {
		return
	}

	f.respond(w, r, "output", data)
}

// Reset restores the default snapshot and answers with the whole generator.
func (f *Form) Reset(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}

	data, ok = f.modify(w, r, data, func(d *session.Data) {
		d.Inputs = prompt.Defaults()
		d.Ack.Warning = ""
	})
	if !ok {
		return
	}

	f.respond(w, r, "content", data)
}

// Copy records the clipboard outcome the browser reports in the "status"
// form value ("ok" or "failed", with an optional "error" message) and
// answers with the copy button area. Only the acknowledgment is written, so
// a field edit saved meanwhile is kept.
func (f *Form) Copy(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}

	var apply func(*session.Data)
	switch r.FormValue("status") {
	case "ok":
		now := f.now()
		apply = func(d *session.Data) { d.Ack.Copied(now) }
	case "failed":
		reason := copyFailureReason(r.FormValue("error"))
		slog.Warn("browser clipboard write failed",
			"reason", reason,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
		)
		apply = func(d *session.Data) { d.Ack.Failed("Could not copy to clipboard: " + reason) }
	default:
		http.Error(w, "Invalid copy status", http.StatusBadRequest)
		return
	}

	if data, ok = f.modify(w, r, data, apply); !ok {
		return
	}

	f.respond(w, r, "copy_area", data)
}

// Sync saves every field present in the form and answers with the
// assembled prompt as plain text. The copy button posts the fields as shown
// and copies the answer, so an edit still waiting on its debounce is
// included. Fields missing from the form keep their stored value.
func (f *Form) Sync(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	submitted := make(map[prompt.Field]string)
	for _, fi := range prompt.Fields() {
		values, present := r.PostForm[string(fi.Field)]
		if !present {
			continue
		}
		if _, err := data.Inputs.With(fi.Field, values[0]); err != nil {
			if errors.Is(err, prompt.ErrInvalidTone) {
				http.Error(w, "Invalid tone", http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "Invalid field", http.StatusBadRequest)
			return
		}
		submitted[fi.Field] = values[0]
	}

	data, ok = f.modify(w, r, data, func(d *session.Data) {
		before := d.Inputs
		for field, value := range submitted {
			d.Inputs, _ = d.Inputs.With(field, value)
		}
		if d.Inputs != before {
			d.Ack.Warning = ""
		}
	})
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(prompt.Assemble(data.Inputs)))
}

// CopyStatus answers with the copy button area as of now. A copied
// acknowledgment schedules another poll for when it reverts.
func (f *Form) CopyStatus(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}
	f.renderer.Partial(w, r, "index", "copy_area", f.pageData(data))
}

// PromptText serves the assembled prompt as a plain-text download named
// after the brand.
func (f *Form) PromptText(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+slug.Filename(data.Inputs.BrandName, "story-prompt", "txt")+`"`)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(prompt.Assemble(data.Inputs)))
}

// PromptQR serves the assembled prompt as a QR code PNG so it can be picked
// up on a phone. Rendered codes are cached by prompt text.
func (f *Form) PromptQR(w http.ResponseWriter, r *http.Request) {
	data, ok := f.session(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	text := prompt.Assemble(data.Inputs)

	var png []byte
	if f.qrCache != nil {
		png, _ = f.qrCache.Get(ctx, text)
	}
	if png == nil {
		var err error
		png, err = qr.PNG(text, qr.DefaultSize)
		if err != nil {
			if errors.Is(err, qr.ErrTooLong) {
				http.Error(w, "Prompt too long for a QR code", http.StatusUnprocessableEntity)
				return
			}
			slog.Error("render qr code failed",
				"error", err,
				"request_id", middleware.RequestIDFromCtx(ctx),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if f.qrCache != nil {
			f.qrCache.Set(ctx, text, png)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		`inline; filename="`+slug.Filename(data.Inputs.BrandName, "story-prompt", "png")+`"`)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// session returns the request's session, answering 500 when LoadSession
// did not run.
func (f *Form) session(w http.ResponseWriter, r *http.Request) (*session.Data, bool) {
	data := middleware.SessionFromCtx(r.Context())
	if data == nil {
		slog.Error("no session in request context", "path", r.URL.Path)
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return data, true
}

// modify applies fn to the stored snapshot and returns what was saved.
func (f *Form) modify(w http.ResponseWriter, r *http.Request, data *session.Data, fn func(*session.Data)) (*session.Data, bool) {
	saved, err := f.sessions.Modify(r.Context(), r, data, fn)
	if err != nil {
		slog.Error("save session failed",
			"error", err,
			"session_id", data.ID,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
		)
		http.Error(w, "Could not save your changes", http.StatusInternalServerError)
		return nil, false
	}
	return saved, true
}

// respond renders block for HTMX requests and sends plain form posts back
// to the page.
func (f *Form) respond(w http.ResponseWriter, r *http.Request, block string, data *session.Data) {
	if !render.IsHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	f.renderer.Partial(w, r, "index", block, f.pageData(data))
}

func (f *Form) pageData(data *session.Data) *render.PageData {
	now := f.now()
	return &render.PageData{
		Title:   PageTitle,
		Inputs:  data.Inputs,
		Prompt:  prompt.Assemble(data.Inputs),
		Ack:     data.Ack.State(now, f.ackDelay),
		AckLeft: data.Ack.Remaining(now, f.ackDelay),
		Warning: data.Ack.Warning,
	}
}

// copyFailureReason cleans up the browser's error message for display.
func copyFailureReason(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "clipboard unavailable"
	}
	if utf8.RuneCountInString(msg) > maxCopyErrorLen {
		msg = string([]rune(msg)[:maxCopyErrorLen]) + "…"
	}
	return msg
}
