package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/application/dto"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/application/usecase"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/prediction"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/metrics"
)

// Handler serves the prediction API endpoints.
type Handler struct {
	predictUC   *usecase.Predict
	metrics     *metrics.State
	modelLoaded bool
	rateLimiter *ClientRateLimiter
	logger      *slog.Logger
}

// NewHandler creates the REST handler. modelLoaded reflects whether the
// artifact load succeeded at startup.
func NewHandler(predictUC *usecase.Predict, st *metrics.State, modelLoaded bool, limiter *ClientRateLimiter, logger *slog.Logger) *Handler {
	return &Handler{
		predictUC:   predictUC,
		metrics:     st,
		modelLoaded: modelLoaded,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /metrics", h.Metrics)
	mux.Handle("GET /metrics/prometheus", h.metrics.PrometheusHandler())
	mux.Handle("POST /predict", RateLimitMiddleware(h.rateLimiter)(http.HandlerFunc(h.Predict)))
}

// Health reports process liveness and artifact state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewHealthResponse(h.modelLoaded, time.Now()))
}

// Metrics reports the prediction and error counters.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	predictions, errorCount := h.metrics.Snapshot()
	writeJSON(w, http.StatusOK, dto.NewMetricsResponse(predictions, errorCount, time.Now()))
}

// Predict validates the request body, runs inference and returns the
// prediction with its explainability section.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Detail: []patient.FieldError{{Field: "body", Message: "invalid JSON body"}},
		})
		return
	}

	record, err := patient.NewRecord(req.ToInput())
	if err != nil {
		var verr *patient.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Detail: verr.Fields})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Detail: []patient.FieldError{{Field: "body", Message: err.Error()}},
		})
		return
	}

	result, err := h.predictUC.Execute(r.Context(), record)
	if err != nil {
		h.logger.Error("predict request failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		if errors.Is(err, prediction.ErrModelUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "model unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error during inference"})
		return
	}

	writeJSON(w, http.StatusOK, dto.NewPredictResponse(result))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
