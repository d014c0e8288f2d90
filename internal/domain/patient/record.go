package patient

import (
	"fmt"
	"strings"
)

// Feature names as seen by the preprocessing pipeline. The trainer and the
// model artifact address columns by these names, never by position.
const (
	FeatureAge                   = "age"
	FeatureGender                = "gender"
	FeatureDonorType             = "donor_type"
	FeatureComorbidityScore      = "comorbidity_score"
	FeatureDiseaseType           = "disease_type"
	FeatureConditioningIntensity = "conditioning_intensity"
	FeaturePriorTransplants      = "prior_transplants"
	FeatureTimeFromDiagnosisDays = "time_from_diagnosis_days"
	FeatureTreatmentDays         = "treatment_days"
)

// Genders, DonorTypes, DiseaseTypes and ConditioningIntensities are the
// closed value sets a record may carry. The one-hot category order in the
// trained artifact is derived from the training data, not from these slices.
var (
	Genders                 = []string{"Male", "Female"}
	DonorTypes              = []string{"Matched sibling", "Matched unrelated", "Haploidentical", "Cord blood"}
	DiseaseTypes            = []string{"AML", "ALL", "MDS", "Lymphoma", "Other"}
	ConditioningIntensities = []string{"Myeloablative", "Reduced-intensity"}
)

// FeatureNames returns the full ordered feature column list.
func FeatureNames() []string {
	return []string{
		FeatureAge,
		FeatureGender,
		FeatureDonorType,
		FeatureComorbidityScore,
		FeatureDiseaseType,
		FeatureConditioningIntensity,
		FeaturePriorTransplants,
		FeatureTimeFromDiagnosisDays,
		FeatureTreatmentDays,
	}
}

// NumericFeatures returns the numeric columns in the order the preprocessing
// pipeline concatenates them (full column order with categoricals removed).
func NumericFeatures() []string {
	return []string{
		FeatureAge,
		FeatureComorbidityScore,
		FeaturePriorTransplants,
		FeatureTimeFromDiagnosisDays,
		FeatureTreatmentDays,
	}
}

// CategoricalFeatures returns the categorical columns in pipeline order.
func CategoricalFeatures() []string {
	return []string{
		FeatureGender,
		FeatureDonorType,
		FeatureDiseaseType,
		FeatureConditioningIntensity,
	}
}

// Record is an immutable, fully validated patient observation. It can only
// be obtained through NewRecord, so downstream code may assume every field
// is present and inside its legal range.
type Record struct {
	age                   int
	gender                string
	donorType             string
	comorbidityScore      int
	diseaseType           string
	conditioningIntensity string
	priorTransplants      int
	timeFromDiagnosisDays int
	treatmentDays         int
}

// Input carries the untyped request payload into validation. Pointer fields
// distinguish an absent field from a zero value.
type Input struct {
	Age                   *int
	Gender                *string
	DonorType             *string
	ComorbidityScore      *int
	DiseaseType           *string
	ConditioningIntensity *string
	PriorTransplants      *int
	TimeFromDiagnosisDays *int
	TreatmentDays         *int
}

// FieldError describes a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field of an Input. It is the
// only error type NewRecord returns.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid patient record: " + strings.Join(parts, "; ")
}

// NewRecord validates in and constructs a Record. All nine fields are
// mandatory; validation collects every violation instead of stopping at the
// first one.
func NewRecord(in Input) (Record, error) {
	v := &ValidationError{}

	age := requireIntRange(v, FeatureAge, in.Age, 18, 80)
	comorbidity := requireIntRange(v, FeatureComorbidityScore, in.ComorbidityScore, 0, 10)
	priorTx := requireIntRange(v, FeaturePriorTransplants, in.PriorTransplants, 0, 1)
	diagnosisDays := requireIntRange(v, FeatureTimeFromDiagnosisDays, in.TimeFromDiagnosisDays, 1, 5000)
	treatmentDays := requireIntRange(v, FeatureTreatmentDays, in.TreatmentDays, 1, 365)

	gender := requireEnum(v, FeatureGender, in.Gender, Genders)
	donorType := requireEnum(v, FeatureDonorType, in.DonorType, DonorTypes)
	diseaseType := requireEnum(v, FeatureDiseaseType, in.DiseaseType, DiseaseTypes)
	conditioning := requireEnum(v, FeatureConditioningIntensity, in.ConditioningIntensity, ConditioningIntensities)

	if len(v.Fields) > 0 {
		return Record{}, v
	}

	return Record{
		age:                   age,
		gender:                gender,
		donorType:             donorType,
		comorbidityScore:      comorbidity,
		diseaseType:           diseaseType,
		conditioningIntensity: conditioning,
		priorTransplants:      priorTx,
		timeFromDiagnosisDays: diagnosisDays,
		treatmentDays:         treatmentDays,
	}, nil
}

func requireIntRange(v *ValidationError, field string, value *int, min, max int) int {
	if value == nil {
		v.Fields = append(v.Fields, FieldError{Field: field, Message: "field is required"})
		return 0
	}
	if *value < min || *value > max {
		v.Fields = append(v.Fields, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		})
		return 0
	}
	return *value
}

func requireEnum(v *ValidationError, field string, value *string, allowed []string) string {
	if value == nil {
		v.Fields = append(v.Fields, FieldError{Field: field, Message: "field is required"})
		return ""
	}
	for _, a := range allowed {
		if *value == a {
			return *value
		}
	}
	v.Fields = append(v.Fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	})
	return ""
}

// Age returns the patient age in years.
func (r Record) Age() int { return r.age }

// Gender returns the patient gender.
func (r Record) Gender() string { return r.gender }

// DonorType returns the transplant donor type.
func (r Record) DonorType() string { return r.donorType }

// ComorbidityScore returns the comorbidity index (0-10).
func (r Record) ComorbidityScore() int { return r.comorbidityScore }

// DiseaseType returns the underlying disease classification.
func (r Record) DiseaseType() string { return r.diseaseType }

// ConditioningIntensity returns the conditioning regimen intensity.
func (r Record) ConditioningIntensity() string { return r.conditioningIntensity }

// PriorTransplants returns 1 if the patient had a previous transplant.
func (r Record) PriorTransplants() int { return r.priorTransplants }

// TimeFromDiagnosisDays returns days elapsed since diagnosis.
func (r Record) TimeFromDiagnosisDays() int { return r.timeFromDiagnosisDays }

// TreatmentDays returns the treatment duration in days.
func (r Record) TreatmentDays() int { return r.treatmentDays }

// NumericValue returns the named numeric feature. The second return value is
// false when the name is not a numeric feature of this record; a validated
// record never has missing values.
func (r Record) NumericValue(name string) (float64, bool) {
	switch name {
	case FeatureAge:
		return float64(r.age), true
	case FeatureComorbidityScore:
		return float64(r.comorbidityScore), true
	case FeaturePriorTransplants:
		return float64(r.priorTransplants), true
	case FeatureTimeFromDiagnosisDays:
		return float64(r.timeFromDiagnosisDays), true
	case FeatureTreatmentDays:
		return float64(r.treatmentDays), true
	}
	return 0, false
}

// CategoryValue returns the named categorical feature verbatim.
func (r Record) CategoryValue(name string) (string, bool) {
	switch name {
	case FeatureGender:
		return r.gender, true
	case FeatureDonorType:
		return r.donorType, true
	case FeatureDiseaseType:
		return r.diseaseType, true
	case FeatureConditioningIntensity:
		return r.conditioningIntensity, true
	}
	return "", false
}

// LogAttrs returns the record as key/value pairs for structured logging.
func (r Record) LogAttrs() []any {
	return []any{
		"age", r.age,
		"gender", r.gender,
		"donor_type", r.donorType,
		"comorbidity_score", r.comorbidityScore,
		"disease_type", r.diseaseType,
		"conditioning_intensity", r.conditioningIntensity,
		"prior_transplants", r.priorTransplants,
		"time_from_diagnosis_days", r.timeFromDiagnosisDays,
		"treatment_days", r.treatmentDays,
	}
}
