package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
)

// stumpOn builds a single-split tree on the given feature: value below the
// threshold scores low, at or above scores high.
func stumpOn(feature int, threshold, low, high, gain float64) model.Tree {
	return model.Tree{Nodes: []model.Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2, Gain: gain},
		model.NewLeaf(low),
		model.NewLeaf(high),
	}}
}

func TestTree_Score(t *testing.T) {
	tree := stumpOn(0, 0.5, -1, 1, 2)

	assert.Equal(t, -1.0, tree.Score([]float64{0.2}))
	assert.Equal(t, 1.0, tree.Score([]float64{0.8}))
	// Threshold routes right: the split is strictly-less-than.
	assert.Equal(t, 1.0, tree.Score([]float64{0.5}))
}

func TestEnsemble_Score(t *testing.T) {
	ens := model.Ensemble{
		BaseScore:    0.1,
		LearningRate: 0.5,
		Trees: []model.Tree{
			stumpOn(0, 0.5, -1, 1, 1),
			stumpOn(1, 0.0, -2, 2, 1),
		},
	}

	// 0.1 + 0.5*1 + 0.5*2
	assert.InDelta(t, 1.6, ens.Score([]float64{0.9, 3}), 1e-12)
	// 0.1 + 0.5*(-1) + 0.5*(-2)
	assert.InDelta(t, -1.4, ens.Score([]float64{0.1, -3}), 1e-12)
}

func TestEnsemble_PredictProbabilityBounds(t *testing.T) {
	ens := model.Ensemble{
		BaseScore:    0,
		LearningRate: 1,
		Trees:        []model.Tree{stumpOn(0, 0, -30, 30, 1)},
	}

	low := ens.PredictProbability([]float64{-1})
	high := ens.PredictProbability([]float64{1})

	assert.Greater(t, high, low)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, high, 1.0)
}

func TestEnsemble_FeatureImportances(t *testing.T) {
	ens := model.Ensemble{
		LearningRate: 0.1,
		Trees: []model.Tree{
			stumpOn(0, 0.5, -1, 1, 3),
			stumpOn(1, 0.5, -1, 1, 1),
		},
	}

	imp := ens.FeatureImportances(3)

	require.Len(t, imp, 3)
	assert.InDelta(t, 0.75, imp[0], 1e-12)
	assert.InDelta(t, 0.25, imp[1], 1e-12)
	assert.Equal(t, 0.0, imp[2])

	var sum float64
	for _, v := range imp {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestEnsemble_FeatureImportancesNoSplits(t *testing.T) {
	ens := model.Ensemble{
		Trees: []model.Tree{{Nodes: []model.Node{model.NewLeaf(0.3)}}},
	}

	imp := ens.FeatureImportances(2)

	assert.Equal(t, []float64{0, 0}, imp)
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, model.Sigmoid(0), 1e-12)
	assert.InDelta(t, 1.0, model.Sigmoid(40), 1e-12)
	assert.InDelta(t, 0.0, model.Sigmoid(-40), 1e-12)
	assert.False(t, math.IsNaN(model.Sigmoid(-1000)))
}
