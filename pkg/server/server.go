// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	GET  /v1/families        supported diagram families and formats
//	POST /v1/render          render one document; ?format=svg|png|pdf|json
//	POST /v1/render/batch    render a batch; artifacts come back in JSON
//
// Every response carries an X-Render-ID header. Errors are JSON bodies of
// the form {"code": "...", "error": "...", "render_id": "..."} with the
// status taken from the error code.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/observability"
	"github.com/matzehuels/geodraw/pkg/pipeline"
)

// HeaderRenderID carries the per-request id.
const HeaderRenderID = "X-Render-ID"

// Options configures a Server.
type Options struct {
	// Defaults are applied beneath every request's own options.
	Defaults      pipeline.Options
	RenderTimeout time.Duration
	MaxBodyBytes  int64
	Logger        *log.Logger
}

// Server is an http.Handler serving the render API.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	log    *log.Logger
	router chi.Router
}

// New builds the router around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = runner.Logger
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = 20 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	s := &Server{runner: runner, opts: opts, log: opts.Logger}

	r := chi.NewRouter()
	r.Use(s.renderID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/families", s.handleFamilies)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestSize(opts.MaxBodyBytes))
			r.Use(middleware.Timeout(opts.RenderTimeout))
			r.Post("/render", s.handleRender)
			r.Post("/render/batch", s.handleBatch)
		})
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type renderIDKey struct{}

// renderID assigns every request a fresh id, echoed in the response.
func (s *Server) renderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(HeaderRenderID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), renderIDKey{}, id)))
	})
}

// RenderID returns the id assigned to the request carrying ctx.
func RenderID(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey{}).(string)
	return id
}

// observe logs each request and reports it to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)
		s.log.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur,
			"render_id", RenderID(r.Context()))
	})
}

type errorBody struct {
	Code     errors.Code `json:"code"`
	Error    string      `json:"error"`
	RenderID string      `json:"render_id,omitempty"`
}

// writeError responds with the JSON form of err. Uncoded errors are
// reported as internal.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if r.Context().Err() == context.DeadlineExceeded {
		code = errors.ErrCodeTimeout
	}
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.log.Error("render failed", "error", err, "render_id", RenderID(r.Context()))
	}
	writeJSON(w, status, errorBody{
		Code:     code,
		Error:    errors.UserMessage(err),
		RenderID: RenderID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
