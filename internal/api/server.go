package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gomonte/app"
	"gomonte/domain/core"
	"gomonte/domain/estimate"
	apperrors "gomonte/internal/errors"
	"gomonte/internal/report"
	"gomonte/ports"
)

// Server exposes the estimation engine and the run history over HTTP
type Server struct {
	router    *chi.Mux
	estimator *app.EstimatorService
	repo      ports.RunRepositoryPort
	defaults  estimate.Params
}

// NewServer creates the HTTP server. Defaults fill in fields the
// request body leaves at zero.
func NewServer(estimator *app.EstimatorService, repo ports.RunRepositoryPort, defaults estimate.Params) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		estimator: estimator,
		repo:      repo,
		defaults:  defaults,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Post("/api/runs", s.handleCreateRun)
	s.router.Get("/api/runs", s.handleListRuns)
	s.router.Get("/api/runs/{id}", s.handleGetRun)
	s.router.Get("/api/report", s.handleReport)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// runRequest is the POST /api/runs body; zero fields take the server
// defaults
type runRequest struct {
	RTol      float64 `json:"rtol"`
	MaxTrials int64   `json:"max_trials"`
	BatchSize int     `json:"batch_size"`
	Workers   int     `json:"workers"`
	Seed      int64   `json:"seed"`
	Sampler   string  `json:"sampler"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.InvalidInput("request body must be valid JSON"))
		return
	}

	params := s.defaults
	if req.RTol != 0 {
		params.RTol = req.RTol
	}
	if req.MaxTrials != 0 {
		params.MaxTrials = req.MaxTrials
	}
	if req.BatchSize != 0 {
		params.BatchSize = req.BatchSize
	}
	if req.Workers != 0 {
		params.Workers = req.Workers
	}
	if req.Seed != 0 {
		params.Seed = req.Seed
	}
	if req.Sampler != "" {
		params.Sampler = req.Sampler
	}

	record, err := s.estimator.Run(r.Context(), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	record, err := s.repo.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.HTML(records)); err != nil {
		log.Printf("[API] failed to write report response: %v", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch {
	case code == apperrors.CodeConfigInvalid,
		code == apperrors.CodeValidationError,
		code == apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	}
	s.writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}
