package usecase

import (
	"log/slog"
	"math"
	"sort"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/patient"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/port"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/domain/prediction"
)

// topFeatures caps the importance mapping returned to clients.
const topFeatures = 5

// Explain reads the ensemble's feature importances for one input. It is
// strictly best-effort: every failure mode collapses to a nil mapping, which
// the response layer renders as the fixed fallback note.
type Explain struct {
	classifier port.Classifier
	logger     *slog.Logger
}

// NewExplain creates the Explain use case.
func NewExplain(classifier port.Classifier, logger *slog.Logger) *Explain {
	return &Explain{classifier: classifier, logger: logger}
}

// Execute returns the top feature importances for record, descending by
// score, or nil when introspection fails. Scores and names are zipped
// positionally; scores beyond the reconstructed name list are dropped. The
// zip is only correct while the trainer's declared transformer order matches
// the reconstruction order, which the artifact validates before returning.
func (uc *Explain) Execute(_ patient.Record) (imp prediction.Importance) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Warn("feature importance introspection panicked", "panic", r)
			imp = nil
		}
	}()

	if uc.classifier == nil {
		return nil
	}

	scores, names, err := uc.classifier.FeatureImportances()
	if err != nil {
		uc.logger.Warn("could not compute feature importance", "error", err)
		return nil
	}

	n := len(scores)
	if len(names) < n {
		n = len(names)
	}
	if n == 0 {
		return nil
	}

	entries := make(prediction.Importance, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(scores[i]) || math.IsInf(scores[i], 0) {
			uc.logger.Warn("non-finite importance score", "feature", names[i])
			return nil
		}
		entries = append(entries, prediction.FeatureScore{Name: names[i], Score: scores[i]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > topFeatures {
		entries = entries[:topFeatures]
	}
	return entries
}
