package model

import (
	"fmt"
)

// Row is one observation addressed by feature name. The boolean return is
// false when the value is missing; the preprocessor then falls back to the
// fitted imputation value. A validated patient.Record satisfies Row and
// never reports a missing value.
type Row interface {
	NumericValue(name string) (float64, bool)
	CategoryValue(name string) (string, bool)
}

// NumericColumn holds the fitted parameters of one numeric feature:
// median imputation followed by standardization.
type NumericColumn struct {
	Name        string  `json:"name"`
	ImputeValue float64 `json:"impute_value"`
	Mean        float64 `json:"mean"`
	Scale       float64 `json:"scale"`
}

// CategoricalColumn holds the fitted parameters of one categorical feature:
// most-frequent imputation followed by one-hot expansion over Categories.
// Unknown categories at inference time encode as all zeros.
type CategoricalColumn struct {
	Name        string   `json:"name"`
	ImputeValue string   `json:"impute_value"`
	Categories  []string `json:"categories"`
}

// Preprocessor transforms a named-feature row into the dense numeric vector
// the ensemble expects: the numeric block first, then the one-hot expansion
// of each categorical column, in declaration order.
type Preprocessor struct {
	Numeric     []NumericColumn     `json:"numeric"`
	Categorical []CategoricalColumn `json:"categorical"`
}

// Width returns the derived feature count after one-hot expansion.
func (p *Preprocessor) Width() int {
	w := len(p.Numeric)
	for _, c := range p.Categorical {
		w += len(c.Categories)
	}
	return w
}

// DerivedFeatureNames returns the column names of the transformed matrix:
// numeric names unchanged, then "<feature>_<category>" per one-hot level.
func (p *Preprocessor) DerivedFeatureNames() []string {
	names := make([]string, 0, p.Width())
	for _, c := range p.Numeric {
		names = append(names, c.Name)
	}
	for _, c := range p.Categorical {
		for _, cat := range c.Categories {
			names = append(names, fmt.Sprintf("%s_%s", c.Name, cat))
		}
	}
	return names
}

// Transform encodes row into the derived feature vector.
func (p *Preprocessor) Transform(row Row) []float64 {
	out := make([]float64, 0, p.Width())
	for _, c := range p.Numeric {
		v, ok := row.NumericValue(c.Name)
		if !ok {
			v = c.ImputeValue
		}
		if c.Scale != 0 {
			v = (v - c.Mean) / c.Scale
		} else {
			v = v - c.Mean
		}
		out = append(out, v)
	}
	for _, c := range p.Categorical {
		v, ok := row.CategoryValue(c.Name)
		if !ok {
			v = c.ImputeValue
		}
		for _, cat := range c.Categories {
			if v == cat {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// Pipeline is the serialized trained pipeline: preprocessing plus the
// gradient-boosted tree ensemble.
type Pipeline struct {
	Preprocessor Preprocessor `json:"preprocessor"`
	Ensemble     Ensemble     `json:"ensemble"`
}

// Validate checks the internal consistency of a loaded pipeline.
func (p *Pipeline) Validate() error {
	if len(p.Preprocessor.Numeric) == 0 && len(p.Preprocessor.Categorical) == 0 {
		return fmt.Errorf("pipeline has no fitted preprocessing columns")
	}
	if len(p.Ensemble.Trees) == 0 {
		return fmt.Errorf("pipeline has no fitted trees")
	}
	width := p.Preprocessor.Width()
	for i, tree := range p.Ensemble.Trees {
		for _, n := range tree.Nodes {
			if !n.IsLeaf() && (n.Feature < 0 || n.Feature >= width) {
				return fmt.Errorf("tree %d references feature index %d outside width %d", i, n.Feature, width)
			}
		}
	}
	return nil
}

// PredictProbability transforms row and returns the positive-class estimate.
func (p *Pipeline) PredictProbability(row Row) float64 {
	return p.Ensemble.PredictProbability(p.Preprocessor.Transform(row))
}
