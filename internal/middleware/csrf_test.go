// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// csrfHandler wraps an OK handler with the CSRF middleware.
func csrfHandler(secure bool) http.Handler {
	return NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// fetchCSRFCookie performs a GET and returns the issued CSRF cookie.
func fetchCSRFCookie(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestNewCSRFCookieFlags(t *testing.T) {
	for _, secure := range []bool{true, false} {
		c := fetchCSRFCookie(t, csrfHandler(secure))
		if c.Secure != secure {
			t.Errorf("cookie Secure: got %v, want %v", c.Secure, secure)
		}
		if !c.HttpOnly {
			t.Error("cookie should be HttpOnly; the token reaches the page via the template")
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("cookie SameSite: got %v, want StrictMode", c.SameSite)
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length: got %d", len(c.Value))
		}
	}
}

func TestCSRFValidation(t *testing.T) {
	h := csrfHandler(false)
	cookie := fetchCSRFCookie(t, h)

	tests := []struct {
		name   string
		method string
		header string
		form   string
		want   int
	}{
		{"post without token", http.MethodPost, "", "", http.StatusForbidden},
		{"post wrong token", http.MethodPost, "nope", "", http.StatusForbidden},
		{"post header token", http.MethodPost, cookie.Value, "", http.StatusOK},
		{"post form token", http.MethodPost, "", cookie.Value, http.StatusOK},
		{"put without token", http.MethodPut, "", "", http.StatusForbidden},
		{"patch without token", http.MethodPatch, "", "", http.StatusForbidden},
		{"delete without token", http.MethodDelete, "", "", http.StatusForbidden},
		{"get passes", http.MethodGet, "", "", http.StatusOK},
		{"head passes", http.MethodHead, "", "", http.StatusOK},
		{"options passes", http.MethodOptions, "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.form != "" {
				body = strings.NewReader(url.Values{CSRFFormField: {tt.form}}.Encode())
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, "/fields/cta", body)
			if tt.form != "" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}
			req.AddCookie(cookie)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFPostWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.Header.Set(CSRFHeaderName, "forged")
	rr := httptest.NewRecorder()
	csrfHandler(false).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
}

func TestCSRFTokenFromCtx(t *testing.T) {
	t.Run("matches issued cookie", func(t *testing.T) {
		var ctxToken string
		h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		var cookieToken string
		for _, c := range rr.Result().Cookies() {
			if c.Name == CSRFCookieName {
				cookieToken = c.Value
			}
		}
		if ctxToken == "" || ctxToken != cookieToken {
			t.Errorf("context token %q, cookie token %q", ctxToken, cookieToken)
		}
	})

	t.Run("reuses existing cookie", func(t *testing.T) {
		var ctxToken string
		h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if ctxToken != "existing" {
			t.Errorf("got %q, want %q", ctxToken, "existing")
		}
		if len(rr.Result().Cookies()) != 0 {
			t.Error("no new cookie should be issued when one exists")
		}
	})

	t.Run("empty outside middleware", func(t *testing.T) {
		if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
