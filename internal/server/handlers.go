package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/me/rota/internal/config"
	"github.com/me/rota/internal/prefexpr"
	"github.com/me/rota/pkg/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleRosterSolve(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var cfg config.RosterConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if cfg.TimeLimitSec == 0 {
		cfg.TimeLimitSec = config.DefaultTimeLimitSec
	}
	if err := cfg.Validate(); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	problem := cfg.Problem
	if len(cfg.Rules) > 0 {
		extra, err := prefexpr.Expand(&problem, cfg.Rules)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
			return
		}
		problem.Requests = append(problem.Requests, extra...)
	}

	schedule, report, err := s.roster.Solve(&problem, time.Duration(cfg.TimeLimitSec)*time.Second)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}
	s.finishSolve(w, r, model.RunKindRoster, &cfg, schedule, report)
}

func (s *Server) handleTimetableSolve(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var cfg config.TimetableConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if cfg.TimeLimitSec == 0 {
		cfg.TimeLimitSec = config.DefaultTimeLimitSec
	}
	if err := cfg.Validate(); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	schedule, report, err := s.timetable.Solve(&cfg.Problem, time.Duration(cfg.TimeLimitSec)*time.Second)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}
	s.finishSolve(w, r, model.RunKindTimetable, &cfg, schedule, report)
}

// finishSolve stores the run and writes the response. Infeasible and
// unknown outcomes are successful API calls: the caller gets the status
// and statistics, just no schedule.
func (s *Server) finishSolve(w http.ResponseWriter, r *http.Request, kind string, cfg any, schedule *model.Schedule, report *model.Report) {
	reqID := RequestIDFromContext(r.Context())

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	run := &model.Run{
		ID:         "run_" + uuid.New().String(),
		Kind:       kind,
		Status:     report.Stats.Status,
		Objective:  report.Stats.Objective,
		WallMillis: report.Stats.WallTime.Milliseconds(),
		Config:     configJSON,
		Schedule:   schedule,
		Report:     report,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateRun(r.Context(), run); err != nil {
		s.logger.Error("store run", "error", err)
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: "failed to store run"})
		return
	}
	respondOK(w, reqID, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	if v := r.URL.Query().Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		opts.Offset, _ = strconv.Atoi(v)
	}
	opts.Kind = r.URL.Query().Get("kind")
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: "failed to list runs"})
		return
	}
	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(runs) < total,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("get run", "error", err)
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: "failed to load run"})
		return
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
		return
	}
	respondOK(w, reqID, run)
}
