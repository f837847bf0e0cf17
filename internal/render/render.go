// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the prompt generator.
// It supports full-page and HTMX partial rendering, detecting the request
// type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"storyprompt/internal/form"
	"storyprompt/internal/middleware"
	"storyprompt/internal/prompt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Shared template files parsed into every page.
const (
	layoutFile   = "base.html"
	partialsFile = "partials.html"
)

// PageData holds all data passed to templates.
type PageData struct {
	Title     string
	Inputs    prompt.Inputs
	Prompt    string
	Fields    []prompt.FieldInfo
	Tones     []prompt.Tone
	Ack       form.AckState
	AckLeft   time.Duration // time until a copied acknowledgment reverts
	Warning   string
	CSRFToken string
	RequestID string
}

// FieldData is the view of one form control.
type FieldData struct {
	Info  prompt.FieldInfo
	Value string
	Tones []prompt.Tone
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing the embedded templates. Each page
// template is paired with the base layout and the shared partials.
// When devMode is true, the layout loads HTMX unminified.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"isDev": func() bool {
				return devMode
			},
			// fieldData pairs a field with its current value for the
			// "field" partial.
			"fieldData": func(d *PageData, fi prompt.FieldInfo) FieldData {
				return FieldData{Info: fi, Value: d.Inputs.Value(fi.Field), Tones: d.Tones}
			},
			// millis formats a duration for hx-trigger delays, never below 1ms.
			"millis": func(d time.Duration) int64 {
				if ms := d.Milliseconds(); ms > 0 {
					return ms
				}
				return 1
			},
			"copied": func(s form.AckState) bool {
				return s == form.AckCopied
			},
		},
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == layoutFile || name == partialsFile {
			continue
		}

		tmpl, err := template.New(layoutFile).Funcs(r.funcMap).ParseFS(templateFS,
			"templates/"+layoutFile,
			"templates/"+partialsFile,
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	if len(r.templates) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return r, nil
}

// Page renders a full page or, for HTMX requests, only its "content" block.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.execute(w, r, name, "", data)
}

// Partial renders one named block of a page template, such as "output" or
// "copy_area", regardless of the request type.
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, page, block string, data *PageData) {
	rn.execute(w, r, page, block, data)
}

func (rn *Renderer) execute(w http.ResponseWriter, r *http.Request, page, block string, data *PageData) {
	tmpl, ok := rn.templates[page]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", page), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	data.CSRFToken = middleware.CSRFTokenFromCtx(ctx)
	data.RequestID = middleware.RequestIDFromCtx(ctx)
	if data.Fields == nil {
		data.Fields = prompt.Fields()
	}
	if data.Tones == nil {
		data.Tones = prompt.Tones()
	}

	execName := block
	if execName == "" {
		execName = layoutFile
		if IsHTMX(r) {
			execName = "content"
		}
	}

	// Render into a buffer so a template error never leaves half a page.
	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
