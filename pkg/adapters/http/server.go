package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/internal/mazefile"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps the size of a solve request.
const MaxBodyBytes = 1 << 20

// Solver is the part of mazerunner.Solver the server needs.
type Solver interface {
	SolveJob(ctx context.Context, job mazerunner.Job) (*domain.Run, error)
}

// Server exposes the solver and the run store over HTTP.
type Server struct {
	Solver  Solver
	Store   ports.RunStore
	Streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// HandlerOption configures the Server.
type HandlerOption func(*Server)

// WithStreams enables GET /v1/events. The same manager's Hooks must feed the solver.
func WithStreams(sm *StreamManager) HandlerOption {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetricsHandler mounts h (usually promhttp.Handler()) on GET /metrics.
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the solver.
func NewHandler(solver Solver, store ports.RunStore, opts ...HandlerOption) http.Handler {
	s := &Server{
		Solver: solver,
		Store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.Solve)
		r.Get("/runs", s.ListRuns)
		r.Get("/runs/{id}", s.GetRun)
		r.Delete("/runs/{id}", s.DeleteRun)
		if s.Streams != nil {
			r.Get("/events", s.SubscribeEvents)
		}
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Name     string        `json:"name,omitempty"`
	Maze     string        `json:"maze"`
	Start    *domain.Coord `json:"start,omitempty"`
	Goal     *domain.Coord `json:"goal,omitempty"`
	MaxSteps int           `json:"max_steps,omitempty"`
}

// RunResponse is a run plus its derived figures.
type RunResponse struct {
	*domain.Run
	Steps    int      `json:"steps"`
	Score    float64  `json:"score"`
	Actions  string   `json:"actions"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewRunResponse derives the summary fields of run.
func NewRunResponse(run *domain.Run) RunResponse {
	return RunResponse{
		Run:     run,
		Steps:   run.Steps(),
		Score:   run.Score(),
		Actions: run.Actions(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Solve handles POST /v1/solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.MaxSteps < 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("max_steps must be >= 0"))
		return
	}

	m, err := mazefile.ParseString(body.Maze)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	m.SetName(body.Name)

	run, err := s.Solver.SolveJob(r.Context(), mazerunner.Job{
		Maze:     m,
		Start:    body.Start,
		Goal:     body.Goal,
		MaxSteps: body.MaxSteps,
	})
	if run == nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := NewRunResponse(run)
	if err != nil {
		s.logger.Warn("Solve: collaborator failure", "run_id", run.ID, "error", err)
		resp.Warnings = strings.Split(err.Error(), "\n")
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListRuns handles GET /v1/runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles GET /v1/runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, NewRunResponse(run))
}

// DeleteRun handles DELETE /v1/runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(mazerunner.Version),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, mazefile.ErrInvalidMaze), errors.Is(err, domain.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotConverged):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
