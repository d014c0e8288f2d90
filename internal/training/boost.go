package training

import (
	"math"
	"sort"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
)

// BoostConfig holds the gradient-boosting hyperparameters.
type BoostConfig struct {
	Trees          int
	MaxDepth       int
	LearningRate   float64
	Lambda         float64 // L2 regularization on leaf weights
	MinChildWeight float64 // minimum hessian sum per child
	MinSamplesLeaf int
}

// DefaultBoostConfig mirrors the hyperparameters the artifact was originally
// exported with.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Trees:          200,
		MaxDepth:       4,
		LearningRate:   0.05,
		Lambda:         1.0,
		MinChildWeight: 1.0,
		MinSamplesLeaf: 5,
	}
}

// FitEnsemble fits a gradient-boosted tree classifier with logistic loss on
// the transformed feature matrix. Each round fits a regression tree to the
// negative gradient with Newton leaf weights, then shrinks it by the
// learning rate.
func FitEnsemble(features [][]float64, labels []int, cfg BoostConfig) model.Ensemble {
	n := len(features)

	var positives float64
	for _, y := range labels {
		positives += float64(y)
	}
	// Clamp the base rate away from 0 and 1 so the initial log-odds stays finite.
	rate := positives / float64(n)
	if rate < 1e-6 {
		rate = 1e-6
	}
	if rate > 1-1e-6 {
		rate = 1 - 1e-6
	}

	ens := model.Ensemble{
		LearningRate: cfg.LearningRate,
		BaseScore:    math.Log(rate / (1 - rate)),
	}

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = ens.BaseScore
	}

	grad := make([]float64, n)
	hess := make([]float64, n)
	indices := make([]int, n)

	for round := 0; round < cfg.Trees; round++ {
		for i := 0; i < n; i++ {
			p := model.Sigmoid(raw[i])
			grad[i] = p - float64(labels[i])
			hess[i] = p * (1 - p)
			indices[i] = i
		}

		b := &booster{features: features, grad: grad, hess: hess, cfg: cfg}
		b.buildNode(indices, 0)
		tree := model.Tree{Nodes: b.nodes}

		for i := 0; i < n; i++ {
			raw[i] += cfg.LearningRate * tree.Score(features[i])
		}
		ens.Trees = append(ens.Trees, tree)
	}

	return ens
}

// booster accumulates the nodes of one regression tree.
type booster struct {
	features [][]float64
	grad     []float64
	hess     []float64
	cfg      BoostConfig
	nodes    []model.Node
}

type split struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// buildNode recursively grows the tree over the given sample indices and
// returns the index of the created node.
func (b *booster) buildNode(indices []int, depth int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, model.Node{})

	if depth >= b.cfg.MaxDepth {
		b.nodes[idx] = model.NewLeaf(b.leafValue(indices))
		return idx
	}

	best := b.bestSplit(indices)
	if best == nil {
		b.nodes[idx] = model.NewLeaf(b.leafValue(indices))
		return idx
	}

	left := b.buildNode(best.left, depth+1)
	right := b.buildNode(best.right, depth+1)
	b.nodes[idx] = model.Node{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      left,
		Right:     right,
		Gain:      best.gain,
	}
	return idx
}

// bestSplit scans every feature for the split maximizing the regularized
// gain, or nil when no admissible split improves the objective.
func (b *booster) bestSplit(indices []int) *split {
	if len(indices) < 2*b.cfg.MinSamplesLeaf {
		return nil
	}

	var totalG, totalH float64
	for _, i := range indices {
		totalG += b.grad[i]
		totalH += b.hess[i]
	}
	parentScore := totalG * totalG / (totalH + b.cfg.Lambda)

	width := len(b.features[indices[0]])
	sorted := append([]int(nil), indices...)

	var best *split
	for f := 0; f < width; f++ {
		feature := f
		sort.Slice(sorted, func(a, c int) bool {
			return b.features[sorted[a]][feature] < b.features[sorted[c]][feature]
		})

		var leftG, leftH float64
		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			leftG += b.grad[i]
			leftH += b.hess[i]

			cur := b.features[i][feature]
			next := b.features[sorted[pos+1]][feature]
			if cur == next {
				continue
			}
			if pos+1 < b.cfg.MinSamplesLeaf || len(sorted)-pos-1 < b.cfg.MinSamplesLeaf {
				continue
			}
			rightG := totalG - leftG
			rightH := totalH - leftH
			if leftH < b.cfg.MinChildWeight || rightH < b.cfg.MinChildWeight {
				continue
			}

			gain := 0.5 * (leftG*leftG/(leftH+b.cfg.Lambda) +
				rightG*rightG/(rightH+b.cfg.Lambda) -
				parentScore)
			if gain <= 0 || (best != nil && gain <= best.gain) {
				continue
			}

			threshold := (cur + next) / 2
			left := make([]int, pos+1)
			copy(left, sorted[:pos+1])
			right := make([]int, len(sorted)-pos-1)
			copy(right, sorted[pos+1:])
			best = &split{feature: feature, threshold: threshold, gain: gain, left: left, right: right}
		}
	}
	return best
}

// leafValue is the Newton-step optimal weight for the samples in a leaf.
func (b *booster) leafValue(indices []int) float64 {
	var g, h float64
	for _, i := range indices {
		g += b.grad[i]
		h += b.hess[i]
	}
	return -g / (h + b.cfg.Lambda)
}
