package prediction

import (
	"bytes"
	"encoding/json"
)

const (
	// LabelSurvive is returned when the survival probability is strictly
	// above the decision threshold.
	LabelSurvive = "Likely to survive"
	// LabelAtRisk is returned at or below the threshold; ties go to the
	// negative class.
	LabelAtRisk = "At risk"

	// DecisionThreshold separates the two outcome labels.
	DecisionThreshold = 0.5

	// Disclaimer accompanies every prediction response.
	Disclaimer = "⚠️ FOR RESEARCH/DEMO USE ONLY. NOT FOR CLINICAL DECISION-MAKING."

	// ImportanceNotes explains how to read the feature importance scores.
	ImportanceNotes = "Higher scores indicate greater influence on survival prediction"

	// ImportanceUnavailable is the fallback note when feature importance
	// introspection fails.
	ImportanceUnavailable = "Feature importance unavailable"
)

// LabelFor maps a survival probability to its outcome label.
func LabelFor(probability float64) string {
	if probability > DecisionThreshold {
		return LabelSurvive
	}
	return LabelAtRisk
}

// FeatureScore is one derived feature with its relative importance.
type FeatureScore struct {
	Name  string
	Score float64
}

// Importance is an ordered feature-importance mapping (descending by score).
// It marshals as a JSON object whose key order follows the slice order, the
// way the importance mapping is presented to clients.
type Importance []FeatureScore

// MarshalJSON renders the mapping as an object, preserving slice order.
func (im Importance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fs := range im {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fs.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fs.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the immutable outcome of one prediction. Importance is nil when
// explainability introspection failed; callers substitute the fallback note.
type Result struct {
	Probability float64
	Label       string
	Importance  Importance
}
