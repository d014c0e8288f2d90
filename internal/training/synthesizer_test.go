package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/training"
)

func TestSynthesizer_Deterministic(t *testing.T) {
	first := training.NewSynthesizer(42).Generate(200)
	second := training.NewSynthesizer(42).Generate(200)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestSynthesizer_DifferentSeedsDiffer(t *testing.T) {
	first := training.NewSynthesizer(1).Generate(100)
	second := training.NewSynthesizer(2).Generate(100)

	same := 0
	for i := range first {
		if v1, ok1 := first[i].NumericValue(patient.FeatureAge); ok1 {
			if v2, ok2 := second[i].NumericValue(patient.FeatureAge); ok2 && v1 == v2 {
				same++
			}
		}
	}
	assert.Less(t, same, 100)
}

func TestSynthesizer_Ranges(t *testing.T) {
	obs := training.NewSynthesizer(7).Generate(1000)

	for _, o := range obs {
		if age, ok := o.NumericValue(patient.FeatureAge); ok {
			assert.GreaterOrEqual(t, age, 18.0)
			assert.LessOrEqual(t, age, 80.0)
		}
		if days, ok := o.NumericValue(patient.FeatureTimeFromDiagnosisDays); ok {
			assert.GreaterOrEqual(t, days, 10.0)
			assert.LessOrEqual(t, days, 5000.0)
		}
		if days, ok := o.NumericValue(patient.FeatureTreatmentDays); ok {
			assert.GreaterOrEqual(t, days, 7.0)
			assert.LessOrEqual(t, days, 365.0)
		}
		if tx, ok := o.NumericValue(patient.FeaturePriorTransplants); ok {
			assert.Contains(t, []float64{0, 1}, tx)
		}
		if g, ok := o.CategoryValue(patient.FeatureGender); ok {
			assert.Contains(t, patient.Genders, g)
		}
		if d, ok := o.CategoryValue(patient.FeatureDonorType); ok {
			assert.Contains(t, patient.DonorTypes, d)
		}
		assert.Contains(t, []int{0, 1}, o.Survival)
	}
}

func TestSynthesizer_InjectsMissingValues(t *testing.T) {
	obs := training.NewSynthesizer(7).Generate(2000)

	missingDonor := 0
	missingComorbidity := 0
	missingConditioning := 0
	for _, o := range obs {
		if _, ok := o.CategoryValue(patient.FeatureDonorType); !ok {
			missingDonor++
		}
		if _, ok := o.NumericValue(patient.FeatureComorbidityScore); !ok {
			missingComorbidity++
		}
		if _, ok := o.CategoryValue(patient.FeatureConditioningIntensity); !ok {
			missingConditioning++
		}
	}

	// ~3% of 2000 = ~60 per column; allow generous slack.
	for _, missing := range []int{missingDonor, missingComorbidity, missingConditioning} {
		assert.Greater(t, missing, 20)
		assert.Less(t, missing, 140)
	}
}

func TestSynthesizer_BothOutcomesPresent(t *testing.T) {
	obs := training.NewSynthesizer(11).Generate(1000)

	survived := 0
	for _, o := range obs {
		survived += o.Survival
	}
	assert.Greater(t, survived, 100)
	assert.Less(t, survived, 900)
}
