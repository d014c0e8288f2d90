package training

import (
	"math"
	"math/rand"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
)

// missingRate is the per-cell probability of injecting a missing value into
// the three columns the preprocessing pipeline must impute.
const missingRate = 0.03

// missingColumns lists the columns that receive injected missing values.
var missingColumns = []string{
	patient.FeatureDonorType,
	patient.FeatureComorbidityScore,
	patient.FeatureConditioningIntensity,
}

// Observation is one synthetic patient with a binary survival outcome.
// Values absent from the maps are missing and must be imputed downstream.
type Observation struct {
	numeric  map[string]float64
	category map[string]string
	Survival int
}

// NumericValue implements model.Row.
func (o Observation) NumericValue(name string) (float64, bool) {
	v, ok := o.numeric[name]
	return v, ok
}

// CategoryValue implements model.Row.
func (o Observation) CategoryValue(name string) (string, bool) {
	v, ok := o.category[name]
	return v, ok
}

// Synthesizer produces deterministic synthetic HCT cohorts from a seed.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a Synthesizer seeded for reproducibility.
func NewSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Generate synthesizes n labeled observations. The outcome is drawn from a
// logistic function of a weighted linear combination of risk factors, and
// roughly 3% of the values in three columns are knocked out afterwards.
func (s *Synthesizer) Generate(n int) []Observation {
	obs := make([]Observation, n)

	age := make([]float64, n)
	gender := make([]string, n)
	donorType := make([]string, n)
	comorbidity := make([]float64, n)
	diseaseType := make([]string, n)
	conditioning := make([]string, n)
	priorTx := make([]float64, n)
	diagnosisDays := make([]float64, n)
	treatmentDays := make([]float64, n)

	for i := 0; i < n; i++ {
		age[i] = clip(math.Floor(s.rng.NormFloat64()*12+45), 18, 80)
	}
	for i := 0; i < n; i++ {
		gender[i] = s.choice([]string{"Male", "Female"}, []float64{0.55, 0.45})
	}
	for i := 0; i < n; i++ {
		donorType[i] = s.choice(patient.DonorTypes, []float64{0.35, 0.4, 0.2, 0.05})
	}
	for i := 0; i < n; i++ {
		comorbidity[i] = float64(s.poisson(2.0))
	}
	for i := 0; i < n; i++ {
		diseaseType[i] = s.choice(patient.DiseaseTypes, []float64{0.25, 0.15, 0.2, 0.25, 0.15})
	}
	for i := 0; i < n; i++ {
		conditioning[i] = s.choice(patient.ConditioningIntensities, []float64{0.4, 0.6})
	}
	for i := 0; i < n; i++ {
		if s.rng.Float64() < 0.12 {
			priorTx[i] = 1
		}
	}
	for i := 0; i < n; i++ {
		diagnosisDays[i] = clip(math.Floor(s.rng.ExpFloat64()*365), 10, 5000)
	}
	for i := 0; i < n; i++ {
		treatmentDays[i] = clip(math.Floor(30+comorbidity[i]*5+s.rng.NormFloat64()*10), 7, 365)
	}

	for i := 0; i < n; i++ {
		risk := 0.03*(age[i]-40) +
			0.4*comorbidity[i] +
			0.6*priorTx[i] +
			s.rng.NormFloat64()*0.8
		if donorType[i] == "Matched sibling" {
			risk -= 0.6
		}
		if donorType[i] == "Haploidentical" {
			risk += 0.4
		}
		if conditioning[i] == "Myeloablative" {
			risk += 0.3
		}
		probSurvival := 1.0 / (1.0 + math.Exp(risk))

		o := Observation{
			numeric: map[string]float64{
				patient.FeatureAge:                   age[i],
				patient.FeatureComorbidityScore:      comorbidity[i],
				patient.FeaturePriorTransplants:      priorTx[i],
				patient.FeatureTimeFromDiagnosisDays: diagnosisDays[i],
				patient.FeatureTreatmentDays:         treatmentDays[i],
			},
			category: map[string]string{
				patient.FeatureGender:                gender[i],
				patient.FeatureDonorType:             donorType[i],
				patient.FeatureDiseaseType:           diseaseType[i],
				patient.FeatureConditioningIntensity: conditioning[i],
			},
		}
		if s.rng.Float64() < probSurvival {
			o.Survival = 1
		}
		obs[i] = o
	}

	for _, col := range missingColumns {
		for i := 0; i < n; i++ {
			if s.rng.Float64() < missingRate {
				delete(obs[i].numeric, col)
				delete(obs[i].category, col)
			}
		}
	}

	return obs
}

// choice draws one value according to the given probability weights.
func (s *Synthesizer) choice(values []string, probs []float64) string {
	u := s.rng.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if u < cum {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// poisson draws from Poisson(lambda) using Knuth's method.
func (s *Synthesizer) poisson(lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= s.rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
