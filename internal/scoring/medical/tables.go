package medical

import (
	"fmt"

	apperrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/scoring/classify"
)

// BMI band labels.
const (
	BandUnderweight = "underweight"
	BandFit         = "fit"
	BandOverweight  = "overweight"
	BandObese       = "obese"
)

// Standard maps a raw measure onto 0-100%: Floor scores 0%, Target 100%.
type Standard struct {
	Floor  float64 `json:"floor" mapstructure:"floor"`
	Target float64 `json:"target" mapstructure:"target"`
}

// Tables is the static configuration the scorer runs on.
type Tables struct {
	// BMIBands classify the BMI truncated to two decimals.
	BMIBands []classify.Band
	// FitLow and FitHigh bound the fit band inclusively.
	FitLow  float64
	FitHigh float64
	// BMIDecayWidth is the BMI distance outside the fit band at which the
	// BMI sub-score reaches zero. The same width applies on both sides.
	BMIDecayWidth float64

	VisionScores       map[Vision]float64
	ConditionPenalties map[Condition]float64

	PushUps Standard
	Run     Standard
	SitUps  Standard

	// Remediation holds an ordered template ladder per dimension, plus one
	// for DimensionMaintenance.
	Remediation map[Dimension][]string
	PlanLength  int
}

// DefaultTables returns the shipped medical tables.
func DefaultTables() Tables {
	return Tables{
		BMIBands: []classify.Band{
			{UpperBound: 18.49, Label: BandUnderweight},
			{UpperBound: 24.99, Label: BandFit},
			{UpperBound: 29.99, Label: BandOverweight},
			{UpperBound: 1000, Label: BandObese},
		},
		FitLow:        18.5,
		FitHigh:       24.99,
		BMIDecayWidth: 20,
		VisionScores: map[Vision]float64{
			VisionPerfect:     25,
			VisionCorrectable: 18,
			VisionDefective:   0,
		},
		ConditionPenalties: map[Condition]float64{
			ConditionFlatFoot:        10,
			ConditionColourBlindness: 12,
			ConditionSurgeryHistory:  8,
		},
		PushUps: Standard{Floor: 0, Target: 40},
		Run:     Standard{Floor: 10, Target: 6},
		SitUps:  Standard{Floor: 0, Target: 40},
		Remediation: map[Dimension][]string{
			DimensionBMI: {
				"Set a target to {{action}} {{kg}} kg to reach the fit BMI band and log your weight every morning",
				"Adjust daily calories toward a {{action}} of about 0.5 kg per week and add three 30-minute brisk walks",
				"Review progress against the {{kg}} kg target and raise cardio to five sessions",
				"Keep meals regular and re-measure BMI at the end of the week",
			},
			DimensionVision: {
				"Book an ophthalmologist consultation to confirm your vision category",
				"Follow the prescribed correction and take 20-20-20 screen breaks daily",
				"Get a repeat eye test and keep the report ready for the medical board",
				"Check the visual standards for your entry and confirm you fall within them",
			},
			DimensionConditions: {
				"Consult a specialist about: {{conditions}}",
				"Start the corrective programme recommended for {{conditions}}",
				"Collect medical records and fitness certificates covering {{conditions}}",
				"Schedule a review to confirm {{conditions}} will not be disqualifying",
			},
			DimensionFitness: {
				"Baseline test: record max push-ups, sit-ups and a timed 2.4 km run",
				"Train five days: 4 sets of push-ups and sit-ups plus two interval runs",
				"Add 10% volume and one tempo run under {{runTarget}} minutes",
				"Re-test against {{pushUpTarget}} push-ups, {{sitUpTarget}} sit-ups and a {{runTarget}}-minute run",
			},
			DimensionMaintenance: {
				"Maintain three strength sessions and two runs this week",
				"Keep a steady diet and eight hours of sleep",
				"Run a mock physical test to confirm you still meet every standard",
				"Keep your medical documents current for the board",
			},
		},
		PlanLength: 4,
	}
}

// clone copies every map and slice so the scorer never shares state with the caller.
func (t Tables) clone() Tables {
	out := t
	out.BMIBands = append([]classify.Band(nil), t.BMIBands...)
	out.VisionScores = make(map[Vision]float64, len(t.VisionScores))
	for k, v := range t.VisionScores {
		out.VisionScores[k] = v
	}
	out.ConditionPenalties = make(map[Condition]float64, len(t.ConditionPenalties))
	for k, v := range t.ConditionPenalties {
		out.ConditionPenalties[k] = v
	}
	out.Remediation = make(map[Dimension][]string, len(t.Remediation))
	for k, v := range t.Remediation {
		out.Remediation[k] = append([]string(nil), v...)
	}
	return out
}

func (t Tables) validate() error {
	if err := classify.ValidateBands("bmi bands", t.BMIBands); err != nil {
		return err
	}
	if t.FitLow >= t.FitHigh {
		return apperrors.NewInvalidRangeError("bmi fit band", t.FitLow, t.FitHigh)
	}
	if t.BMIDecayWidth <= 0 {
		return apperrors.NewInvalidRangeError("bmi decay width", t.BMIDecayWidth, 0)
	}
	for name, std := range map[string]Standard{"push-ups": t.PushUps, "run": t.Run, "sit-ups": t.SitUps} {
		if std.Floor == std.Target {
			return apperrors.NewInvalidRangeError(name, std.Floor, std.Target)
		}
	}
	for _, v := range []Vision{VisionPerfect, VisionCorrectable, VisionDefective} {
		score, ok := t.VisionScores[v]
		if !ok {
			return fmt.Errorf("vision table has no score for %q", v)
		}
		if score < 0 || score > MaxVisionScore {
			return fmt.Errorf("vision score for %q out of range: %g", v, score)
		}
	}
	for _, c := range []Condition{ConditionFlatFoot, ConditionColourBlindness, ConditionSurgeryHistory} {
		if t.ConditionPenalties[c] < 0 {
			return fmt.Errorf("condition penalty for %q is negative", c)
		}
	}
	for _, d := range []Dimension{DimensionBMI, DimensionVision, DimensionConditions, DimensionFitness, DimensionMaintenance} {
		if len(t.Remediation[d]) == 0 {
			return fmt.Errorf("remediation table has no templates for %q", d)
		}
	}
	if t.PlanLength <= 0 {
		return fmt.Errorf("plan length must be positive, got %d", t.PlanLength)
	}
	return nil
}
