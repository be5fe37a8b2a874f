package medical

import "readiness-workers/internal/scoring/classify"

// Vision is the candidate's assessed vision category.
type Vision string

const (
	VisionPerfect     Vision = "perfect"
	VisionCorrectable Vision = "correctable"
	VisionDefective   Vision = "defective"
)

// Condition names a disqualifying-risk medical condition flag.
type Condition string

const (
	ConditionFlatFoot        Condition = "flatFoot"
	ConditionColourBlindness Condition = "colourBlindness"
	ConditionSurgeryHistory  Condition = "surgeryHistory"
)

// Dimension identifies one of the four sub-scores.
type Dimension string

const (
	DimensionBMI        Dimension = "bmi"
	DimensionVision     Dimension = "vision"
	DimensionConditions Dimension = "conditions"
	DimensionFitness    Dimension = "fitness"
	// DimensionMaintenance tags plan entries emitted when no dimension is weak.
	DimensionMaintenance Dimension = "maintenance"
)

// Sub-score maxima.
const (
	MaxBMIScore       = 30.0
	MaxVisionScore    = 25.0
	MaxConditionScore = 25.0
	MaxFitnessScore   = 25.0
)

// Input is one candidate's raw medical and fitness measurements.
type Input struct {
	HeightCm        float64 `json:"heightCm" validate:"finite,gt=0,lte=300"`
	WeightKg        float64 `json:"weightKg" validate:"finite,gt=0,lte=400"`
	Vision          Vision  `json:"vision" validate:"required,oneof=perfect correctable defective"`
	FlatFoot        bool    `json:"flatFoot"`
	ColourBlindness bool    `json:"colourBlindness"`
	SurgeryHistory  bool    `json:"surgeryHistory"`
	PushUps         int     `json:"pushUps" validate:"gte=0"`
	RunMinutes      float64 `json:"runMinutes" validate:"finite,gte=0"`
	SitUps          int     `json:"sitUps" validate:"gte=0"`
}

// activeConditions returns the set flags in declared order.
func (in Input) activeConditions() []Condition {
	var out []Condition
	if in.FlatFoot {
		out = append(out, ConditionFlatFoot)
	}
	if in.ColourBlindness {
		out = append(out, ConditionColourBlindness)
	}
	if in.SurgeryHistory {
		out = append(out, ConditionSurgeryHistory)
	}
	return out
}

// FitnessDetail holds the per-measure percentages behind the fitness sub-score.
type FitnessDetail struct {
	PushUpPercent float64 `json:"pushUpPercent"`
	RunPercent    float64 `json:"runPercent"`
	SitUpPercent  float64 `json:"sitUpPercent"`
}

// PlanEntry is one period of the remediation plan.
type PlanEntry struct {
	Period    string    `json:"period"`
	Dimension Dimension `json:"dimension"`
	Task      string    `json:"task"`
}

// Breakdown is the full medical readiness result.
type Breakdown struct {
	BMI            float64       `json:"bmi"`
	BMIBand        string        `json:"bmiBand"`
	BMIScore       float64       `json:"bmiScore"`
	VisionScore    float64       `json:"visionScore"`
	ConditionScore float64       `json:"conditionScore"`
	FitnessScore   float64       `json:"fitnessScore"`
	Fitness        FitnessDetail `json:"fitness"`
	Composite      int           `json:"composite"`
	Risk           classify.Tier `json:"risk"`
	Plan           []PlanEntry   `json:"plan"`
}
