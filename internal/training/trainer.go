package training

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
)

// Config drives one offline training run.
type Config struct {
	Seed         int64
	Samples      int
	TestFraction float64
	Boost        BoostConfig
}

// DefaultConfig returns the configuration the shipped artifact is built with.
func DefaultConfig() Config {
	return Config{
		Seed:         123,
		Samples:      3000,
		TestFraction: 0.2,
		Boost:        DefaultBoostConfig(),
	}
}

// Report summarizes a training run on the held-out fold.
type Report struct {
	TrainSamples int
	TestSamples  int
	PositiveRate float64
	Accuracy     float64
	AUC          float64
}

// Train synthesizes a labeled cohort, fits the preprocessing and boosting
// stages on a stratified 80/20 split and returns the fitted pipeline, the
// feature metadata sidecar contents and a held-out evaluation report.
func Train(cfg Config, logger *slog.Logger) (model.Pipeline, model.FeatureInfo, Report, error) {
	if cfg.Samples < 50 {
		return model.Pipeline{}, model.FeatureInfo{}, Report{}, fmt.Errorf("sample count %d too small to split", cfg.Samples)
	}

	logger.Info("generating synthetic cohort", "samples", cfg.Samples, "seed", cfg.Seed)
	obs := NewSynthesizer(cfg.Seed).Generate(cfg.Samples)

	train, test := stratifiedSplit(obs, cfg.TestFraction, rand.New(rand.NewSource(cfg.Seed)))

	logger.Info("fitting pipeline",
		"train_samples", len(train),
		"test_samples", len(test),
		"trees", cfg.Boost.Trees,
		"max_depth", cfg.Boost.MaxDepth,
		"learning_rate", cfg.Boost.LearningRate,
	)

	pre := FitPreprocessor(train)

	features := make([][]float64, len(train))
	labels := make([]int, len(train))
	for i, o := range train {
		features[i] = pre.Transform(o)
		labels[i] = o.Survival
	}

	ens := FitEnsemble(features, labels, cfg.Boost)
	pipeline := model.Pipeline{Preprocessor: pre, Ensemble: ens}

	report := evaluate(&pipeline, test)
	report.TrainSamples = len(train)
	var positives int
	for _, o := range train {
		positives += o.Survival
	}
	report.PositiveRate = float64(positives) / float64(len(train))

	info := model.FeatureInfo{
		CategoricalFeatures: patient.CategoricalFeatures(),
		NumericFeatures:     patient.NumericFeatures(),
		FeatureNames:        patient.FeatureNames(),
	}

	logger.Info("training complete",
		"accuracy", report.Accuracy,
		"auc", report.AUC,
		"positive_rate", report.PositiveRate,
	)

	return pipeline, info, report, nil
}

// stratifiedSplit partitions observations into train and test folds,
// preserving the outcome ratio in both.
func stratifiedSplit(obs []Observation, testFraction float64, rng *rand.Rand) (train, test []Observation) {
	byClass := map[int][]int{}
	for i, o := range obs {
		byClass[o.Survival] = append(byClass[o.Survival], i)
	}

	for _, class := range []int{0, 1} {
		indices := byClass[class]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		cut := int(float64(len(indices)) * testFraction)
		for _, i := range indices[:cut] {
			test = append(test, obs[i])
		}
		for _, i := range indices[cut:] {
			train = append(train, obs[i])
		}
	}
	return train, test
}

// evaluate computes held-out accuracy at the 0.5 threshold and the
// rank-based AUC.
func evaluate(pipeline *model.Pipeline, test []Observation) Report {
	scores := make([]float64, len(test))
	labels := make([]int, len(test))
	correct := 0
	for i, o := range test {
		scores[i] = pipeline.PredictProbability(o)
		labels[i] = o.Survival
		predicted := 0
		if scores[i] > 0.5 {
			predicted = 1
		}
		if predicted == o.Survival {
			correct++
		}
	}

	return Report{
		TestSamples: len(test),
		Accuracy:    float64(correct) / float64(len(test)),
		AUC:         rankAUC(scores, labels),
	}
}

// rankAUC computes the area under the ROC curve via the Mann-Whitney rank
// statistic with tie-aware average ranks.
func rankAUC(scores []float64, labels []int) float64 {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[order[j]] == scores[order[i]] {
			j++
		}
		// Average rank across the tie group, 1-based.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	var posRankSum float64
	var positives, negatives float64
	for i := 0; i < n; i++ {
		if labels[i] == 1 {
			posRankSum += ranks[i]
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return 0.5
	}
	return (posRankSum - positives*(positives+1)/2) / (positives * negatives)
}
