// Package web serves the people pages on chi, rendering every view from the
// resolved display metadata of people.Person.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-displaymeta/internal/people"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
	"github.com/goliatone/go-displaymeta/pkg/render/template/gotemplate"
	"github.com/goliatone/go-displaymeta/pkg/renderers/vanilla"
)

//go:embed templates/*.tmpl
var layoutTemplates embed.FS

// Metadata builds and renders display models; *orchestrator.Orchestrator
// satisfies it.
type Metadata interface {
	Build(ctx context.Context, v any) (model.FormModel, error)
	Render(ctx context.Context, name string, form model.FormModel, opts render.RenderOptions) ([]byte, error)
	RenderList(ctx context.Context, name string, form model.FormModel, rows []map[string]any, opts render.RenderOptions) ([]byte, error)
}

// Validator reports field errors keyed by field path.
type Validator interface {
	Validate(v any) (map[string][]string, error)
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAppName sets the name shown in page titles and the header.
func WithAppName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.appName = name
		}
	}
}

// WithAssets overrides the static files served under /assets.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		if assets != nil {
			s.assets = assets
		}
	}
}

// Server holds the handlers' dependencies.
type Server struct {
	repo      people.Repository
	meta      Metadata
	validator Validator
	logger    *zap.Logger
	appName   string
	assets    fs.FS
	layout    *gotemplate.Engine
}

// New constructs a Server.
func New(repo people.Repository, meta Metadata, validator Validator, options ...Option) (*Server, error) {
	if repo == nil {
		return nil, errors.New("web: repository is required")
	}
	if meta == nil {
		return nil, errors.New("web: metadata is required")
	}
	if validator == nil {
		return nil, errors.New("web: validator is required")
	}
	s := &Server{
		repo:      repo,
		meta:      meta,
		validator: validator,
		logger:    zap.NewNop(),
		appName:   "People",
		assets:    vanilla.AssetsFS(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	templates, err := fs.Sub(layoutTemplates, "templates")
	if err != nil {
		return nil, err
	}
	layout, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithGlobalData(map[string]any{
			"app_name":   s.appName,
			"stylesheet": vanilla.StylesheetName,
		}),
	)
	if err != nil {
		return nil, err
	}
	s.layout = layout
	return s, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/people", http.StatusFound)
	})
	r.Route("/people", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/new", s.newForm)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.details)
			r.Post("/", s.update)
			r.Get("/edit", s.editForm)
			r.Post("/delete", s.delete)
		})
	})
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
