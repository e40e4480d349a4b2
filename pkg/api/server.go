package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gracetower/pkg/archive"
	"github.com/matzehuels/gracetower/pkg/buildinfo"
	"github.com/matzehuels/gracetower/pkg/errors"
	gio "github.com/matzehuels/gracetower/pkg/io"
	"github.com/matzehuels/gracetower/pkg/observability"
	"github.com/matzehuels/gracetower/pkg/pipeline"
	"github.com/matzehuels/gracetower/pkg/render"
)

const (
	// DefaultMaxBodyBytes limits edge-list uploads.
	DefaultMaxBodyBytes = 8 << 20

	// DefaultLimit is the page size of result listings.
	DefaultLimit = 50

	maxLimit = 500
)

// Config configures a Server.
type Config struct {
	// Runner executes solves. Its Archive also backs the result routes.
	Runner *pipeline.Runner

	// TimeLimit is the default and maximum solve time per request.
	TimeLimit time.Duration

	// MaxBodyBytes overrides DefaultMaxBodyBytes.
	MaxBodyBytes int64

	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	archive   archive.Archive
	timeLimit time.Duration
	maxBody   int64
	logger    *log.Logger
	started   time.Time
}

// New creates a server. cfg.Runner is required.
func New(cfg Config) *Server {
	s := &Server{
		runner:    cfg.Runner,
		archive:   cfg.Runner.Archive,
		timeLimit: cfg.TimeLimit,
		maxBody:   cfg.MaxBodyBytes,
		logger:    cfg.Logger,
		started:   time.Now(),
	}
	if s.timeLimit <= 0 {
		s.timeLimit = pipeline.DefaultTimeLimit
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.solve)
		r.Post("/render", s.render)
		r.Get("/results", s.recent)
		r.Get("/results/{hash}", s.byHash)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe logs every request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Backend string `json:"backend,omitempty"`
	Uptime  string `json:"uptime"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	}
	if s.runner.Solver != nil {
		resp.Backend = s.runner.Solver.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	res, err := s.execute(w, r)
	if err != nil {
		if res != nil {
			writeJSON(w, statusFor(err), errorBody{Error: errors.UserMessage(err), Code: codeOf(err), Record: &res.Record})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Record)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := render.FormatSVG
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = render.ParseFormat(f); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "format"))
			return
		}
	}
	// A failed solve still draws the heuristic coloring.
	res, err := s.execute(w, r)
	if err != nil && res == nil {
		writeError(w, err)
		return
	}
	out, err := res.Render(r.Context(), pipeline.RenderOptions{Format: format, EdgeLabels: true})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	recs, err := s.archive.Recent(r.Context(), min(limit, maxLimit))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list results"))
		return
	}
	writeJSON(w, http.StatusOK, nonNil(recs))
}

func (s *Server) byHash(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	recs, err := s.archive.ByHash(r.Context(), hash)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "find results"))
		return
	}
	if len(recs) == 0 {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no results for graph %s", hash))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// execute parses the request body and options and runs the pipeline.
func (s *Server) execute(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	opts, name, err := s.options(r)
	if err != nil {
		return nil, err
	}
	pairs, err := gio.ReadEdgeList(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBody)
		}
		return nil, err
	}
	opts.Logger = s.logger
	return s.runner.Execute(r.Context(), pipeline.Input{Name: name, Pairs: pairs}, opts)
}

func (s *Server) options(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := pipeline.Options{TimeLimit: s.timeLimit}

	name := q.Get("name")
	if name == "" {
		name = "request"
	}
	if err := errors.ValidateGraphName(name); err != nil {
		return opts, "", err
	}

	if v := q.Get("time_limit"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "time_limit")
		}
		if err := errors.ValidateTimeLimit(d); err != nil {
			return opts, "", err
		}
		opts.TimeLimit = min(d, s.timeLimit)
	}

	var err error
	if opts.HeuristicOnly, err = queryBool(r, "heuristic_only", false); err != nil {
		return opts, "", err
	}
	warm, err := queryBool(r, "warm_start", true)
	if err != nil {
		return opts, "", err
	}
	opts.NoWarmStart = !warm
	return opts, name, nil
}

// =============================================================================
// Helpers
// =============================================================================

type errorBody struct {
	Error  string      `json:"error"`
	Code   errors.Code `json:"code"`
	Record *gio.Record `json:"record,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: errors.UserMessage(err), Code: codeOf(err)})
}

func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}

// statusFor maps error codes onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return 499
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMalformedInput, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeDegenerateGraph:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSolverFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	}
	return "text/vnd.graphviz; charset=utf-8"
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func queryBool(r *http.Request, key string, def bool) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", key, v)
	}
	return b, nil
}

func nonNil(recs []gio.Record) []gio.Record {
	if recs == nil {
		return []gio.Record{}
	}
	return recs
}
