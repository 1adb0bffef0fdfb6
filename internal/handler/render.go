// Package handler contains the HTTP request handlers.
//
// Handlers are the glue between HTTP and the services: they parse the form,
// pull the current user from the request context, call one service method,
// and either render a view or issue a redirect with a flash message. Business
// rules live in internal/service; nothing here touches the database.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/flash"
	"github.com/sakif/gocamp/internal/model"
)

// pageNames lists every renderable view. Each page is parsed together with
// base.html into its own template set, so every page can define its own
// "content" block (Go templates don't allow two pages in one set to both
// define "content").
var pageNames = []string{
	"home",
	"error",
	"campgrounds/index",
	"campgrounds/show",
	"campgrounds/new",
	"campgrounds/edit",
	"users/register",
	"users/login",
}

// Renderer holds the parsed template sets and renders full pages.
//
// Templates are parsed once at startup (expensive) and reused per request
// (cheap). A parse error is a startup failure, not a 500 at request time.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses base.html plus every page template under templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// pageData is the explicit per-request context handed to every template:
// the current user (or nil), the flash messages popped for this render, and
// the page-specific payload. It is built at render time and discarded with
// the response — no process-wide mutable state.
type pageData struct {
	Title       string
	CurrentUser *model.User
	Flash       flash.Messages
	Data        any
}

// Render writes a full page with the given status code.
//
// The template executes into a buffer first: if execution fails halfway we
// can still send a clean 500 instead of half a page glued to an error.
// Popping the flash here (and only here) guarantees a message enqueued by the
// previous request renders exactly once.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown template page", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	currentUser, _ := auth.UserFromContext(r.Context())

	pd := pageData{
		Title:       title,
		CurrentUser: currentUser,
		Flash:       flash.Pop(w, r),
		Data:        data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", pd); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// errorData is what the error page receives.
type errorData struct {
	Status  int
	Message string
}

// RenderError is the terminal error path: every failure a handler can't
// handle locally funnels here. It extracts the (status, message) pair from
// the error — defaulting to 500 and a generic message — and renders the
// single error view. There is no per-route error rendering anywhere else.
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := apperror.StatusAndMessage(err)

	if status >= http.StatusInternalServerError {
		rd.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	rd.Render(w, r, status, "error", "Error", errorData{
		Status:  status,
		Message: message,
	})
}

// NotFound handles unmatched routes by converting them into a 404 error
// through the same terminal channel.
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.RenderError(w, r, apperror.NotFoundPage())
}
