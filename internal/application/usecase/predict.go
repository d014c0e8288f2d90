package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/port"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/prediction"
)

// Predict runs one inference over a validated patient record. It assumes the
// record is well-formed: validation failures never reach this use case.
type Predict struct {
	classifier port.Classifier
	explain    *Explain
	metrics    port.MetricsRecorder
	logger     *slog.Logger
}

// NewPredict creates the Predict use case. classifier may be nil when the
// artifact was never loaded; Execute then fails with ErrModelUnavailable.
func NewPredict(classifier port.Classifier, metrics port.MetricsRecorder, logger *slog.Logger) *Predict {
	return &Predict{
		classifier: classifier,
		explain:    NewExplain(classifier, logger),
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute produces a PredictionResult for record. On success the success
// counter is incremented and a structured log record with the input,
// probability and label is emitted. On failure the error counter is
// incremented and a generic error is surfaced; explainability failures are
// absorbed by the Explain use case and never fail the request.
func (uc *Predict) Execute(ctx context.Context, record patient.Record) (prediction.Result, error) {
	if uc.classifier == nil {
		uc.metrics.RecordError()
		return prediction.Result{}, prediction.ErrModelUnavailable
	}

	probability, err := uc.classifier.PredictProba(record)
	if err != nil {
		uc.metrics.RecordError()
		uc.logger.Error("prediction failed", "error", err)
		return prediction.Result{}, fmt.Errorf("%w: %v", prediction.ErrInference, err)
	}

	result := prediction.Result{
		Probability: probability,
		Label:       prediction.LabelFor(probability),
		Importance:  uc.explain.Execute(record),
	}

	uc.metrics.RecordPrediction()

	attrs := append(record.LogAttrs(),
		"probability", result.Probability,
		"prediction", result.Label,
	)
	uc.logger.InfoContext(ctx, "prediction made", attrs...)

	return result, nil
}
