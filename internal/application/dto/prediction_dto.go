package dto

import (
	"time"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/prediction"
)

// PredictRequest is the JSON body of POST /predict. Pointer fields let
// validation distinguish an absent field from a zero value.
type PredictRequest struct {
	Age                   *int    `json:"age"`
	Gender                *string `json:"gender"`
	DonorType             *string `json:"donor_type"`
	ComorbidityScore      *int    `json:"comorbidity_score"`
	DiseaseType           *string `json:"disease_type"`
	ConditioningIntensity *string `json:"conditioning_intensity"`
	PriorTransplants      *int    `json:"prior_transplants"`
	TimeFromDiagnosisDays *int    `json:"time_from_diagnosis_days"`
	TreatmentDays         *int    `json:"treatment_days"`
}

// ToInput maps the request body onto the validation input.
func (r PredictRequest) ToInput() patient.Input {
	return patient.Input{
		Age:                   r.Age,
		Gender:                r.Gender,
		DonorType:             r.DonorType,
		ComorbidityScore:      r.ComorbidityScore,
		DiseaseType:           r.DiseaseType,
		ConditioningIntensity: r.ConditioningIntensity,
		PriorTransplants:      r.PriorTransplants,
		TimeFromDiagnosisDays: r.TimeFromDiagnosisDays,
		TreatmentDays:         r.TreatmentDays,
	}
}

// ExplainabilitySection carries the importance mapping or the fallback note.
type ExplainabilitySection struct {
	FeatureImportance any    `json:"feature_importance"`
	Notes             string `json:"notes"`
}

// PredictResponse is the 200 body of POST /predict.
type PredictResponse struct {
	Probability    float64               `json:"probability"`
	Prediction     string                `json:"prediction"`
	Explainability ExplainabilitySection `json:"explainability"`
	Disclaimer     string                `json:"disclaimer"`
}

// NewPredictResponse maps a domain result onto the wire shape. A nil
// importance mapping becomes the fixed fallback note.
func NewPredictResponse(result prediction.Result) PredictResponse {
	var importance any
	if result.Importance == nil {
		importance = map[string]string{"note": prediction.ImportanceUnavailable}
	} else {
		importance = result.Importance
	}
	return PredictResponse{
		Probability: result.Probability,
		Prediction:  result.Label,
		Explainability: ExplainabilitySection{
			FeatureImportance: importance,
			Notes:             prediction.ImportanceNotes,
		},
		Disclaimer: prediction.Disclaimer,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// NewHealthResponse reports the current liveness and artifact state.
func NewHealthResponse(modelLoaded bool, now time.Time) HealthResponse {
	return HealthResponse{
		Status:      "healthy",
		ModelLoaded: modelLoaded,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// MetricsResponse is the body of GET /metrics.
type MetricsResponse struct {
	PredictionCount uint64 `json:"prediction_count"`
	ErrorCount      uint64 `json:"error_count"`
	Timestamp       string `json:"timestamp"`
}

// NewMetricsResponse snapshots the counters.
func NewMetricsResponse(predictions, errors uint64, now time.Time) MetricsResponse {
	return MetricsResponse{
		PredictionCount: predictions,
		ErrorCount:      errors,
		Timestamp:       now.UTC().Format(time.RFC3339),
	}
}

// ValidationErrorResponse is the 422 body: per-field violation detail.
type ValidationErrorResponse struct {
	Detail []patient.FieldError `json:"detail"`
}

// ErrorResponse is the generic error body for 429 and 500 responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
