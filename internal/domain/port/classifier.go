package port

import (
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
)

// Classifier is the narrow port over the trained pipeline. It isolates the
// serving core from the concrete model implementation and its on-disk
// format, and makes the core testable with a stub.
type Classifier interface {
	// PredictProba returns the positive-class (survival) probability for a
	// validated patient record.
	PredictProba(record patient.Record) (float64, error)

	// FeatureImportances returns the ensemble's per-derived-feature
	// importance scores together with the reconstructed derived feature
	// names. The two slices are aligned positionally; their lengths may
	// differ, in which case callers drop the overhang.
	FeatureImportances() (scores []float64, names []string, err error)
}

// MetricsRecorder receives the prediction-path counter side effects.
type MetricsRecorder interface {
	RecordPrediction()
	RecordError()
}
