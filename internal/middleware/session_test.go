// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storyprompt/internal/prompt"
	"storyprompt/internal/session"
)

// fakeStore is an in-memory SessionStore keyed by cookie value.
type fakeStore struct {
	sessions  map[string]*session.Data
	getErr    error
	createErr error
	created   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*session.Data)}
}

func (f *fakeStore) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil, nil
	}
	return f.sessions[c.Value], nil
}

func (f *fakeStore) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created++
	id := "sid-" + data.ID.String()
	f.sessions[id] = data
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: id})
	return id, nil
}

func TestLoadSessionCreatesOnFirstVisit(t *testing.T) {
	store := newFakeStore()

	var got *session.Data
	var cookieValue string
	h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		if c, err := r.Cookie(session.CookieName); err == nil {
			cookieValue = c.Value
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired"})
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got == nil {
		t.Fatal("expected a session in context")
	}
	if got.Inputs != prompt.Defaults() {
		t.Errorf("new session should hold defaults, got %+v", got.Inputs)
	}
	if store.created != 1 {
		t.Errorf("created: got %d, want 1", store.created)
	}
	if cookieValue != "sid-"+got.ID.String() {
		t.Errorf("request cookie: got %q, want the new session id", cookieValue)
	}
	if _, err := req.Cookie(CSRFCookieName); err != nil {
		t.Error("original request must not be modified")
	}
}

func TestLoadSessionKeepsOtherCookies(t *testing.T) {
	store := newFakeStore()

	var csrf string
	h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CSRFCookieName); err == nil {
			csrf = c.Value
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if csrf != "tok" {
		t.Errorf("csrf cookie: got %q, want %q", csrf, "tok")
	}
}

func TestLoadSessionReusesExisting(t *testing.T) {
	store := newFakeStore()
	existing := session.NewData()
	existing.Inputs.Tone = prompt.ToneUrgent
	store.sessions["abc"] = existing

	var got *session.Data
	h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "abc"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != existing {
		t.Error("expected the stored session")
	}
	if store.created != 0 {
		t.Error("no session should be created")
	}
}

func TestLoadSessionGetErrorStartsFresh(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("corrupt payload")

	var got *session.Data
	h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || store.created != 1 {
		t.Error("expected a fresh session after a load error")
	}
}

func TestLoadSessionUnavailable(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")

	called := false
	h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Error("handler should not run without a session")
	}
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rr.Code)
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("expected nil outside LoadSession")
	}
}
