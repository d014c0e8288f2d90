package training_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/training"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// smallConfig keeps test runs fast while leaving enough signal to learn.
func smallConfig() training.Config {
	cfg := training.DefaultConfig()
	cfg.Samples = 1000
	cfg.Boost.Trees = 50
	cfg.Boost.MaxDepth = 3
	cfg.Boost.LearningRate = 0.1
	return cfg
}

func TestFitPreprocessor(t *testing.T) {
	obs := training.NewSynthesizer(5).Generate(500)

	pre := training.FitPreprocessor(obs)

	require.Len(t, pre.Numeric, 5)
	require.Len(t, pre.Categorical, 4)

	// Column order follows the declared feature layout.
	assert.Equal(t, patient.NumericFeatures()[0], pre.Numeric[0].Name)
	assert.Equal(t, patient.CategoricalFeatures()[0], pre.Categorical[0].Name)

	for _, c := range pre.Numeric {
		assert.Greater(t, c.Scale, 0.0, "column %s should not be constant", c.Name)
	}
	for _, c := range pre.Categorical {
		assert.NotEmpty(t, c.ImputeValue)
		assert.NotEmpty(t, c.Categories)
		// Categories are sorted, mirroring the one-hot level order.
		for i := 1; i < len(c.Categories); i++ {
			assert.Less(t, c.Categories[i-1], c.Categories[i])
		}
	}
}

func TestFitEnsemble_SeparatesObviousClasses(t *testing.T) {
	// One informative feature: positives cluster at +1, negatives at -1.
	features := make([][]float64, 0, 200)
	labels := make([]int, 0, 200)
	for i := 0; i < 100; i++ {
		features = append(features, []float64{1 + float64(i%10)*0.01})
		labels = append(labels, 1)
		features = append(features, []float64{-1 - float64(i%10)*0.01})
		labels = append(labels, 0)
	}

	cfg := training.DefaultBoostConfig()
	cfg.Trees = 20
	cfg.MaxDepth = 2
	cfg.LearningRate = 0.3

	ens := training.FitEnsemble(features, labels, cfg)

	assert.Greater(t, ens.PredictProbability([]float64{1}), 0.9)
	assert.Less(t, ens.PredictProbability([]float64{-1}), 0.1)
}

func TestTrain_EndToEnd(t *testing.T) {
	pipeline, info, report, err := training.Train(smallConfig(), testLogger())
	require.NoError(t, err)

	require.NoError(t, pipeline.Validate())
	assert.Equal(t, patient.FeatureNames(), info.FeatureNames)
	assert.Equal(t, patient.NumericFeatures(), info.NumericFeatures)
	assert.Equal(t, patient.CategoricalFeatures(), info.CategoricalFeatures)

	assert.Equal(t, 1000, report.TrainSamples+report.TestSamples)
	assert.Greater(t, report.Accuracy, 0.5)
	assert.Greater(t, report.AUC, 0.6)

	// The fitted pipeline plugs straight into the serving artifact.
	artifact := model.NewArtifact(pipeline, info)
	scores, names, err := artifact.FeatureImportances()
	require.NoError(t, err)
	assert.Equal(t, len(scores), len(names))

	var sum float64
	for _, s := range scores {
		assert.False(t, s < 0)
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTrain_Deterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Boost.Trees = 10

	p1, _, _, err := training.Train(cfg, testLogger())
	require.NoError(t, err)
	p2, _, _, err := training.Train(cfg, testLogger())
	require.NoError(t, err)

	row := training.NewSynthesizer(99).Generate(1)[0]
	assert.Equal(t, p1.PredictProbability(row), p2.PredictProbability(row))
}

func TestTrain_LearnsRiskDirection(t *testing.T) {
	pipeline, _, _, err := training.Train(smallConfig(), testLogger())
	require.NoError(t, err)

	lowRisk := recordRow(t, 35, "Female", "Matched sibling", 0, "AML", "Reduced-intensity", 0, 180, 30)
	highRisk := recordRow(t, 75, "Male", "Haploidentical", 10, "AML", "Myeloablative", 1, 180, 80)

	assert.Greater(t,
		pipeline.PredictProbability(lowRisk),
		pipeline.PredictProbability(highRisk))
}

func TestTrain_RejectsTinyCohort(t *testing.T) {
	cfg := smallConfig()
	cfg.Samples = 10

	_, _, _, err := training.Train(cfg, testLogger())
	assert.Error(t, err)
}

func recordRow(t *testing.T, age int, gender, donor string, comorbidity int, disease, conditioning string, priorTx, diag, treat int) patient.Record {
	t.Helper()
	record, err := patient.NewRecord(patient.Input{
		Age:                   &age,
		Gender:                &gender,
		DonorType:             &donor,
		ComorbidityScore:      &comorbidity,
		DiseaseType:           &disease,
		ConditioningIntensity: &conditioning,
		PriorTransplants:      &priorTx,
		TimeFromDiagnosisDays: &diag,
		TreatmentDays:         &treat,
	})
	require.NoError(t, err)
	return record
}
