// Package server exposes the forecast engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/orilevi/business-forecast/internal/forecast"
	"github.com/orilevi/business-forecast/pkg/planning"
	"github.com/orilevi/business-forecast/pkg/timeutil"
	"github.com/orilevi/business-forecast/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger  *zap.Logger
	engine  *forecast.Engine
	service *forecast.Service
	version string
}

// New constructs the HTTP handler serving the forecast API. The service may
// be nil when no business repository is configured; repository-backed routes
// then respond with 503 while the inline-snapshot routes keep working.
func New(logger *zap.Logger, service *forecast.Service, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:  logger,
		engine:  forecast.NewEngine(logger),
		service: service,
		version: version,
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodPost, "/api/v1/forecast", h.handleForecast)
	router.HandlerFunc(http.MethodPost, "/api/v1/whatif", h.handleWhatIf)
	router.HandlerFunc(http.MethodGet, "/api/v1/businesses/:id/forecast", h.handleBusinessForecast)
	router.HandlerFunc(http.MethodPost, "/api/v1/businesses/:id/what-if", h.handleBusinessWhatIf)
	router.HandlerFunc(http.MethodGet, "/api/v1/version", h.handleVersion)
	router.HandlerFunc(http.MethodGet, "/health", h.handleHealth)

	chain := alice.New(requestID, requestLogging(logger), recovery(logger))
	return chain.Then(router)
}

type forecastRequest struct {
	Snapshot       planning.Snapshot     `json:"snapshot"`
	StartYear      int                   `json:"startYear,omitempty"`
	StartMonth     int                   `json:"startMonth,omitempty"`
	MonthsAhead    int                   `json:"monthsAhead,omitempty"`
	OpeningBalance *float64              `json:"openingBalance,omitempty"`
	Adjustments    *planning.Adjustments `json:"adjustments,omitempty"`
}

type forecastResponse struct {
	Results  []planning.ForecastResult `json:"results"`
	Summary  planning.Summary          `json:"summary"`
	Warnings []string                  `json:"warnings,omitempty"`
	Duration string                    `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	h.runInline(w, r, false)
}

func (h *handler) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	h.runInline(w, r, true)
}

// runInline executes a forecast over a snapshot supplied in the request body.
func (h *handler) runInline(w http.ResponseWriter, r *http.Request, whatIf bool) {
	start := time.Now()

	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := forecast.Options{MonthsAhead: req.MonthsAhead}
	if req.StartYear != 0 && req.StartMonth != 0 {
		opts.Start = timeutil.YearMonth{Year: req.StartYear, Month: req.StartMonth}
	}
	if req.OpeningBalance != nil {
		opts.OpeningBalance = *req.OpeningBalance
	} else {
		opts.OpeningBalance = req.Snapshot.Business.OpeningBalance
	}

	var results []planning.ForecastResult
	if whatIf {
		adjustments := planning.NeutralAdjustments()
		if req.Adjustments != nil {
			adjustments = *req.Adjustments
		}
		results = h.engine.RunWhatIf(req.Snapshot, opts, adjustments)
	} else {
		results = h.engine.Run(req.Snapshot, opts)
	}

	h.writeResults(w, results, validation.SnapshotWarnings(req.Snapshot), start)
}

func (h *handler) handleBusinessForecast(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no business repository configured")
		return
	}
	start := time.Now()

	businessID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	months, err := queryInt(r, "months", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	openingBalance, err := queryFloat(r, "openingBalance", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.GetForecastForBusiness(r.Context(), businessID, months, openingBalance)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeResults(w, results, nil, start)
}

func (h *handler) handleBusinessWhatIf(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no business repository configured")
		return
	}
	start := time.Now()

	var params forecast.WhatIfParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	params.BusinessID = httprouter.ParamsFromContext(r.Context()).ByName("id")

	results, err := h.service.GetWhatIfForecast(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeResults(w, results, nil, start)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *handler) writeResults(w http.ResponseWriter, results []planning.ForecastResult, warnings []string, start time.Time) {
	h.writeJSON(w, http.StatusOK, forecastResponse{
		Results:  results,
		Summary:  planning.Summarize(results),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, forecast.ErrBusinessNotFound) {
		h.writeError(w, http.StatusNotFound, "business not found")
		return
	}
	h.logger.Error("forecast request failed",
		zap.String("op", "server.writeServiceError"),
		zap.Error(err),
	)
	h.writeError(w, http.StatusInternalServerError, "failed to compute forecast")
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return value, nil
}

func queryFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return value, nil
}
