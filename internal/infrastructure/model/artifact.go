package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
)

// FeatureInfo is the feature-metadata sidecar stored next to the pipeline.
// It records the column layout the pipeline was fitted against and is used
// to validate the derived feature-name reconstruction order.
type FeatureInfo struct {
	CategoricalFeatures []string `json:"categorical_features"`
	NumericFeatures     []string `json:"numeric_features"`
	FeatureNames        []string `json:"feature_names"`
}

// InfoPath derives the sidecar path from the pipeline path: the extension is
// replaced by "_info" plus the same extension (model.json -> model_info.json).
func InfoPath(pipelinePath string) string {
	ext := filepath.Ext(pipelinePath)
	return strings.TrimSuffix(pipelinePath, ext) + "_info" + ext
}

// Artifact is the loaded trained pipeline plus its feature metadata. It is
// immutable after Load and safe for unlimited concurrent readers.
type Artifact struct {
	pipeline Pipeline
	info     FeatureInfo
}

// Load reads the pipeline artifact and its sidecar from disk and validates
// both. Any failure here is a startup fault; the process should refuse to
// serve until the artifact is fixed.
func Load(path string) (*Artifact, error) {
	var pipeline Pipeline
	if err := readJSON(path, &pipeline); err != nil {
		return nil, fmt.Errorf("load pipeline artifact: %w", err)
	}
	if err := pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("validate pipeline artifact: %w", err)
	}

	var info FeatureInfo
	if err := readJSON(InfoPath(path), &info); err != nil {
		return nil, fmt.Errorf("load feature metadata: %w", err)
	}

	return &Artifact{pipeline: pipeline, info: info}, nil
}

// NewArtifact wraps an in-memory pipeline and metadata, primarily for tests
// and for the trainer's post-fit smoke check.
func NewArtifact(pipeline Pipeline, info FeatureInfo) *Artifact {
	return &Artifact{pipeline: pipeline, info: info}
}

// Info returns the feature metadata the artifact was fitted with.
func (a *Artifact) Info() FeatureInfo {
	return a.info
}

// PredictProba returns the survival probability for a validated record.
func (a *Artifact) PredictProba(record patient.Record) (float64, error) {
	p := a.pipeline.PredictProbability(record)
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("pipeline produced probability %v outside [0,1]", p)
	}
	return p, nil
}

// FeatureImportances returns the ensemble's gain-based importance scores and
// the reconstructed derived feature names: numeric metadata names unchanged,
// then the one-hot expansion of each categorical metadata name, in metadata
// order. The reconstruction is only correct when that order matches the
// fitted preprocessor's transformer order, so the layout is cross-checked
// against the sidecar before zipping.
func (a *Artifact) FeatureImportances() ([]float64, []string, error) {
	if err := a.validateReconstructionOrder(); err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, a.pipeline.Preprocessor.Width())
	names = append(names, a.info.NumericFeatures...)
	for _, feature := range a.info.CategoricalFeatures {
		col, ok := a.categoricalColumn(feature)
		if !ok {
			return nil, nil, fmt.Errorf("categorical feature %q missing from fitted preprocessor", feature)
		}
		for _, cat := range col.Categories {
			names = append(names, fmt.Sprintf("%s_%s", feature, cat))
		}
	}

	scores := a.pipeline.Ensemble.FeatureImportances(a.pipeline.Preprocessor.Width())
	return scores, names, nil
}

// validateReconstructionOrder checks that the sidecar's declared column
// order matches the fitted preprocessor column order.
func (a *Artifact) validateReconstructionOrder() error {
	if len(a.info.NumericFeatures) != len(a.pipeline.Preprocessor.Numeric) {
		return fmt.Errorf("numeric feature count mismatch: metadata %d, pipeline %d",
			len(a.info.NumericFeatures), len(a.pipeline.Preprocessor.Numeric))
	}
	for i, name := range a.info.NumericFeatures {
		if a.pipeline.Preprocessor.Numeric[i].Name != name {
			return fmt.Errorf("numeric feature order mismatch at %d: metadata %q, pipeline %q",
				i, name, a.pipeline.Preprocessor.Numeric[i].Name)
		}
	}
	if len(a.info.CategoricalFeatures) != len(a.pipeline.Preprocessor.Categorical) {
		return fmt.Errorf("categorical feature count mismatch: metadata %d, pipeline %d",
			len(a.info.CategoricalFeatures), len(a.pipeline.Preprocessor.Categorical))
	}
	for i, name := range a.info.CategoricalFeatures {
		if a.pipeline.Preprocessor.Categorical[i].Name != name {
			return fmt.Errorf("categorical feature order mismatch at %d: metadata %q, pipeline %q",
				i, name, a.pipeline.Preprocessor.Categorical[i].Name)
		}
	}
	return nil
}

func (a *Artifact) categoricalColumn(name string) (CategoricalColumn, bool) {
	for _, c := range a.pipeline.Preprocessor.Categorical {
		if c.Name == name {
			return c, true
		}
	}
	return CategoricalColumn{}, false
}

// Save writes the pipeline and its feature metadata sidecar to disk,
// creating parent directories as needed.
func Save(path string, pipeline Pipeline, info FeatureInfo) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory: %w", err)
		}
	}
	if err := writeJSON(path, pipeline); err != nil {
		return fmt.Errorf("write pipeline artifact: %w", err)
	}
	if err := writeJSON(InfoPath(path), info); err != nil {
		return fmt.Errorf("write feature metadata: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
