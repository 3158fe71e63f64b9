// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/pollbox/client"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home.html", "create.html", "list.html", "poll.html", "error.html"}

// PollAPI is the subset of the poll service the pages need.
// *client.Client implements it.
type PollAPI interface {
	ListPolls(ctx context.Context) ([]models.Poll, error)
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	CreatePoll(ctx context.Context, question string, options []string) (models.Poll, error)
	Vote(ctx context.Context, pollID, optionID string) (models.Poll, error)
}

type Server struct {
	api    PollAPI
	secret string
	pages  map[string]*template.Template
}

// New parses the embedded templates and returns a Server.
// secret signs the session cookie that records voted polls.
func New(api PollAPI, secret string) (*Server, error) {
	if secret == "" {
		return nil, errors.New("web: session secret must not be empty")
	}

	funcs := template.FuncMap{
		"ago":     humanize.Time,
		"comma":   func(n int) string { return humanize.Comma(int64(n)) },
		"plural":  func(n int, singular string) string { return english.Plural(n, singular, "") },
		"percent": models.Percent,
		"add1":    func(i int) int { return i + 1 },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Server{api: api, secret: secret, pages: pages}, nil
}

// Routes returns the page handler with request id, panic recovery and logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", middleware.WithLogging(s.Home))
	mux.HandleFunc("GET /create", middleware.WithLogging(s.CreateForm))
	mux.HandleFunc("POST /create", middleware.WithLogging(s.CreateSubmit))
	mux.HandleFunc("GET /polls", middleware.WithLogging(s.List))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(s.Detail))
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(s.Vote))

	return chimw.RequestID(chimw.Recoverer(mux))
}

// page carries the fields the layout reads.
type page struct {
	Title string
	Error string
}

// render executes into a buffer first so a template failure becomes a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, "error.html", page{Title: "Something went wrong", Error: message})
}

// errorMessage returns the service's own message when it sent one, else fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// statusFor passes client errors from the service through and maps
// everything else to 502.
func statusFor(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

// requestTimeout bounds a single call to the poll service.
const requestTimeout = 10 * time.Second

func apiContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
