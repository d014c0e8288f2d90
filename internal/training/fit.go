package training

import (
	"math"
	"sort"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
)

// FitPreprocessor fits the preprocessing stage on the training fold:
// numeric columns get median imputation plus standardization, categorical
// columns get most-frequent imputation plus one-hot expansion over the
// sorted set of observed categories.
func FitPreprocessor(train []Observation) model.Preprocessor {
	var pre model.Preprocessor

	for _, name := range patient.NumericFeatures() {
		values := make([]float64, 0, len(train))
		for _, o := range train {
			if v, ok := o.NumericValue(name); ok {
				values = append(values, v)
			}
		}
		imputeValue := median(values)

		var sum float64
		for _, o := range train {
			v, ok := o.NumericValue(name)
			if !ok {
				v = imputeValue
			}
			sum += v
		}
		mean := sum / float64(len(train))

		var variance float64
		for _, o := range train {
			v, ok := o.NumericValue(name)
			if !ok {
				v = imputeValue
			}
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(train))

		pre.Numeric = append(pre.Numeric, model.NumericColumn{
			Name:        name,
			ImputeValue: imputeValue,
			Mean:        mean,
			Scale:       math.Sqrt(variance),
		})
	}

	for _, name := range patient.CategoricalFeatures() {
		counts := make(map[string]int)
		for _, o := range train {
			if v, ok := o.CategoryValue(name); ok {
				counts[v]++
			}
		}
		mode := ""
		for v, c := range counts {
			if c > counts[mode] || (c == counts[mode] && (mode == "" || v < mode)) {
				mode = v
			}
		}

		categories := make([]string, 0, len(counts))
		for v := range counts {
			categories = append(categories, v)
		}
		sort.Strings(categories)

		pre.Categorical = append(pre.Categorical, model.CategoricalColumn{
			Name:        name,
			ImputeValue: mode,
			Categories:  categories,
		})
	}

	return pre
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
