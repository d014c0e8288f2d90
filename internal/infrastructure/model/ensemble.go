package model

import "math"

const leafFeature = -1

// Node is one node of a regression tree, stored flat. Feature is -1 for
// leaves. Internal nodes route to Left when the feature value is strictly
// below Threshold, otherwise Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Gain      float64 `json:"gain,omitempty"`
}

// IsLeaf reports whether the node carries a leaf value.
func (n Node) IsLeaf() bool { return n.Feature == leafFeature }

// NewLeaf creates a leaf node with the given output value.
func NewLeaf(value float64) Node {
	return Node{Feature: leafFeature, Value: value}
}

// Tree is a single regression tree over derived features.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Score routes features through the tree and returns the leaf value.
func (t *Tree) Score(features []float64) float64 {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.IsLeaf() {
			return n.Value
		}
		if features[n.Feature] < n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

// Ensemble is a gradient-boosted tree classifier for binary outcomes.
// Trees predict log-odds corrections on top of BaseScore.
type Ensemble struct {
	Trees        []Tree  `json:"trees"`
	LearningRate float64 `json:"learning_rate"`
	BaseScore    float64 `json:"base_score"`
}

// Score returns the raw log-odds for the derived feature vector.
func (e *Ensemble) Score(features []float64) float64 {
	score := e.BaseScore
	for i := range e.Trees {
		score += e.LearningRate * e.Trees[i].Score(features)
	}
	return score
}

// PredictProbability returns the positive-class probability.
func (e *Ensemble) PredictProbability(features []float64) float64 {
	return Sigmoid(e.Score(features))
}

// FeatureImportances returns, per derived feature index, the fraction of
// split-quality credit (gain) the ensemble attributes to it. The slice sums
// to 1 unless the ensemble never split, in which case it is all zeros.
func (e *Ensemble) FeatureImportances(width int) []float64 {
	totals := make([]float64, width)
	var sum float64
	for i := range e.Trees {
		for _, n := range e.Trees[i].Nodes {
			if n.IsLeaf() || n.Feature >= width {
				continue
			}
			totals[n.Feature] += n.Gain
			sum += n.Gain
		}
	}
	if sum > 0 {
		for i := range totals {
			totals[i] /= sum
		}
	}
	return totals
}

// Sigmoid maps log-odds to a probability.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
