// Package medical turns raw medical and fitness measurements into a 0-100
// readiness composite with a per-dimension breakdown and a four-week plan.
package medical

import (
	"fmt"
	"math"
	"sort"

	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring/classify"
)

// Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	tables Tables
}

// NewScorer validates and copies tables.
func NewScorer(tables Tables) (*Scorer, error) {
	t := tables.clone()
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &Scorer{tables: t}, nil
}

// Score computes the medical breakdown for one candidate.
func (s *Scorer) Score(in Input) (*Breakdown, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	bmi := rawBMI(in)
	band, err := classify.Classify(classify.Floor2(bmi), s.tables.BMIBands)
	if err != nil {
		return nil, err
	}

	bmiScore, err := s.bmiScore(bmi)
	if err != nil {
		return nil, err
	}
	fitness, fitnessScore, err := s.fitnessScore(in)
	if err != nil {
		return nil, err
	}

	out := &Breakdown{
		BMI:            classify.Round2(bmi),
		BMIBand:        band,
		BMIScore:       bmiScore,
		VisionScore:    s.tables.VisionScores[in.Vision],
		ConditionScore: s.conditionScore(in),
		FitnessScore:   fitnessScore,
		Fitness:        fitness,
	}

	sum := out.BMIScore + out.VisionScore + out.ConditionScore + out.FitnessScore
	out.Composite = int(classify.Clamp(math.Round(sum), 0, 100))
	out.Risk = classify.RiskTier(out.Composite)
	out.Plan = s.plan(in, out)
	return out, nil
}

func rawBMI(in Input) float64 {
	heightM := in.HeightCm / 100
	return in.WeightKg / (heightM * heightM)
}

// fitSide is negative below the fit band, positive above it and zero inside.
// Membership is decided on the BMI truncated to two decimals, so 18.499 is
// below the band and 24.999 inside it.
func (s *Scorer) fitSide(bmi float64) int {
	switch banded := classify.Floor2(bmi); {
	case banded < s.tables.FitLow:
		return -1
	case banded > s.tables.FitHigh:
		return 1
	default:
		return 0
	}
}

// bmiScore is full marks inside the fit band and decays linearly with the
// distance of the raw BMI to the nearest fit-band edge.
func (s *Scorer) bmiScore(bmi float64) (float64, error) {
	var distance float64
	switch s.fitSide(bmi) {
	case -1:
		distance = s.tables.FitLow - bmi
	case 1:
		distance = math.Max(bmi-s.tables.FitHigh, 0)
	default:
		return MaxBMIScore, nil
	}
	pct, err := classify.Percent(distance, s.tables.BMIDecayWidth, 0)
	if err != nil {
		return 0, err
	}
	return classify.Round2(MaxBMIScore * pct / 100), nil
}

func (s *Scorer) conditionScore(in Input) float64 {
	score := MaxConditionScore
	for _, c := range in.activeConditions() {
		score -= s.tables.ConditionPenalties[c]
	}
	return math.Max(score, 0)
}

func (s *Scorer) fitnessScore(in Input) (FitnessDetail, float64, error) {
	var (
		detail FitnessDetail
		err    error
	)
	if detail.PushUpPercent, err = classify.Percent(float64(in.PushUps), s.tables.PushUps.Floor, s.tables.PushUps.Target); err != nil {
		return detail, 0, err
	}
	if detail.RunPercent, err = classify.Percent(in.RunMinutes, s.tables.Run.Floor, s.tables.Run.Target); err != nil {
		return detail, 0, err
	}
	if detail.SitUpPercent, err = classify.Percent(float64(in.SitUps), s.tables.SitUps.Floor, s.tables.SitUps.Target); err != nil {
		return detail, 0, err
	}
	detail.PushUpPercent = classify.Round2(detail.PushUpPercent)
	detail.RunPercent = classify.Round2(detail.RunPercent)
	detail.SitUpPercent = classify.Round2(detail.SitUpPercent)

	avg := (detail.PushUpPercent + detail.RunPercent + detail.SitUpPercent) / 3
	return detail, classify.Round2(avg * MaxFitnessScore / 100), nil
}

type dimensionRatio struct {
	dimension Dimension
	ratio     float64
}

// weakDimensions returns up to two dimensions below their maximum, weakest
// first. Ties keep the bmi, vision, conditions, fitness order.
func weakDimensions(b *Breakdown) []Dimension {
	ratios := []dimensionRatio{
		{DimensionBMI, b.BMIScore / MaxBMIScore},
		{DimensionVision, b.VisionScore / MaxVisionScore},
		{DimensionConditions, b.ConditionScore / MaxConditionScore},
		{DimensionFitness, b.FitnessScore / MaxFitnessScore},
	}
	sort.SliceStable(ratios, func(i, j int) bool {
		return ratios[i].ratio < ratios[j].ratio
	})

	var weak []Dimension
	for _, r := range ratios {
		if r.ratio < 1 && len(weak) < 2 {
			weak = append(weak, r.dimension)
		}
	}
	return weak
}

// plan interleaves the ladders of the weak dimensions; A, B, A, B for two
// and A1..A4 for one. With nothing weak it emits the maintenance ladder.
func (s *Scorer) plan(in Input, b *Breakdown) []PlanEntry {
	weak := weakDimensions(b)
	if len(weak) == 0 {
		weak = []Dimension{DimensionMaintenance}
	}
	vars := s.templateVars(in)

	entries := make([]PlanEntry, 0, s.tables.PlanLength)
	for i := 0; i < s.tables.PlanLength; i++ {
		dim := weak[i%len(weak)]
		ladder := s.tables.Remediation[dim]
		step := (i / len(weak)) % len(ladder)
		entries = append(entries, PlanEntry{
			Period:    fmt.Sprintf("Week %d", i+1),
			Dimension: dim,
			Task:      render(ladder[step], vars),
		})
	}
	return entries
}
