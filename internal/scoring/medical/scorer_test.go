package medical

import (
	stderrors "errors"
	"math"
	"strings"
	"testing"

	apperrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/scoring/classify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultTables())
	require.NoError(t, err)
	return s
}

func fitInput() Input {
	return Input{
		HeightCm:   170,
		WeightKg:   65,
		Vision:     VisionPerfect,
		PushUps:    40,
		RunMinutes: 6,
		SitUps:     40,
	}
}

// ==========================
// Composite and sub-scores
// ==========================

func TestScorer_Score(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name           string
		input          func() Input
		validateOutput func(t *testing.T, b *Breakdown)
	}{
		{
			name:  "fully fit candidate",
			input: fitInput,
			validateOutput: func(t *testing.T, b *Breakdown) {
				assert.Equal(t, 22.49, b.BMI)
				assert.Equal(t, BandFit, b.BMIBand)
				assert.Equal(t, 30.0, b.BMIScore)
				assert.Equal(t, 25.0, b.VisionScore)
				assert.Equal(t, 25.0, b.ConditionScore)
				assert.Equal(t, 25.0, b.FitnessScore)
				assert.Equal(t, 100, b.Composite)
				assert.Equal(t, classify.TierLow, b.Risk)
				require.Len(t, b.Plan, 4)
				for _, e := range b.Plan {
					assert.Equal(t, DimensionMaintenance, e.Dimension)
				}
			},
		},
		{
			name: "underweight",
			input: func() Input {
				in := fitInput()
				in.WeightKg = 48
				return in
			},
			validateOutput: func(t *testing.T, b *Breakdown) {
				assert.Equal(t, 16.61, b.BMI)
				assert.Equal(t, BandUnderweight, b.BMIBand)
				assert.InDelta(t, 27.17, b.BMIScore, 0.011)
				assert.Equal(t, 100, b.Composite, "composite is clamped at 100")
				require.Len(t, b.Plan, 4)
				for _, e := range b.Plan {
					assert.Equal(t, DimensionBMI, e.Dimension)
				}
				assert.Contains(t, b.Plan[0].Task, "gain 6 kg")
			},
		},
		{
			name: "obese",
			input: func() Input {
				in := fitInput()
				in.WeightKg = 120
				return in
			},
			validateOutput: func(t *testing.T, b *Breakdown) {
				assert.Equal(t, 41.52, b.BMI)
				assert.Equal(t, BandObese, b.BMIBand)
				assert.InDelta(t, 5.2, b.BMIScore, 0.011)
				assert.Contains(t, b.Plan[0].Task, "lose")
			},
		},
		{
			name: "all conditions floor at zero",
			input: func() Input {
				in := fitInput()
				in.FlatFoot = true
				in.ColourBlindness = true
				in.SurgeryHistory = true
				return in
			},
			validateOutput: func(t *testing.T, b *Breakdown) {
				assert.Equal(t, 0.0, b.ConditionScore)
				assert.Equal(t, 80, b.Composite)
				assert.Equal(t, DimensionConditions, b.Plan[0].Dimension)
				assert.Contains(t, b.Plan[0].Task, "flat foot, colour blindness, past surgery")
			},
		},
		{
			name: "vision and fitness both weak interleave",
			input: func() Input {
				return Input{HeightCm: 170, WeightKg: 65, Vision: VisionDefective, RunMinutes: 10}
			},
			validateOutput: func(t *testing.T, b *Breakdown) {
				assert.Equal(t, 0.0, b.VisionScore)
				assert.Equal(t, 0.0, b.FitnessScore)
				assert.Equal(t, 55, b.Composite)
				assert.Equal(t, classify.TierHigh, b.Risk)

				require.Len(t, b.Plan, 4)
				dims := []Dimension{b.Plan[0].Dimension, b.Plan[1].Dimension, b.Plan[2].Dimension, b.Plan[3].Dimension}
				assert.Equal(t, []Dimension{DimensionVision, DimensionFitness, DimensionVision, DimensionFitness}, dims)
				assert.Equal(t, "Week 1", b.Plan[0].Period)
				assert.Equal(t, "Week 4", b.Plan[3].Period)
				assert.True(t, strings.HasPrefix(b.Plan[1].Task, "Baseline test"))
				assert.True(t, strings.HasPrefix(b.Plan[3].Task, "Train five days"))
			},
		},
		{
			name: "no unresolved placeholders in fitness ladder",
			input: func() Input {
				in := fitInput()
				in.PushUps = 10
				return in
			},
			validateOutput: func(t *testing.T, b *Breakdown) {
				for _, e := range b.Plan {
					assert.Equal(t, DimensionFitness, e.Dimension)
					assert.NotContains(t, e.Task, "{{")
				}
				assert.Contains(t, b.Plan[3].Task, "40 push-ups")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.Score(tt.input())
			require.NoError(t, err)
			tt.validateOutput(t, b)
		})
	}
}

func TestScorer_BMIBoundary(t *testing.T) {
	s := newTestScorer(t)

	in := fitInput()
	in.WeightKg = 53.5
	b, err := s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, 18.51, b.BMI)
	assert.Equal(t, BandFit, b.BMIBand)
	assert.Equal(t, 30.0, b.BMIScore)

	in.WeightKg = 53.4
	b, err = s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, 18.48, b.BMI)
	assert.Equal(t, BandUnderweight, b.BMIBand)
	assert.Less(t, b.BMIScore, 30.0)
	assert.Contains(t, b.Plan[0].Task, "gain 1 kg")
}

func TestScorer_BMIBandsOnUnroundedValue(t *testing.T) {
	s := newTestScorer(t)

	in := fitInput()
	in.WeightKg = 53.451 // 18.4952
	b, err := s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, 18.5, b.BMI)
	assert.Equal(t, BandUnderweight, b.BMIBand)
	assert.Less(t, b.BMIScore, 30.0)
	assert.Contains(t, b.Plan[0].Task, "gain 1 kg")

	in.WeightKg = 72.24 // 24.9965
	b, err = s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, 25.0, b.BMI)
	assert.Equal(t, BandFit, b.BMIBand)
	assert.Equal(t, 30.0, b.BMIScore)

	in.WeightKg = 72.26 // 25.0035
	b, err = s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, BandOverweight, b.BMIBand)
	assert.Less(t, b.BMIScore, 30.0)
}

func TestScorer_BMIScoreMonotonic(t *testing.T) {
	s := newTestScorer(t)

	walk := func(t *testing.T, from, to, step float64) {
		t.Helper()
		prev := MaxBMIScore
		for w := from; (step < 0 && w >= to) || (step > 0 && w <= to); w += step {
			in := fitInput()
			in.WeightKg = w
			b, err := s.Score(in)
			require.NoError(t, err)
			assert.LessOrEqual(t, b.BMIScore, prev, "weight %.2f bmi %.2f", w, b.BMI)
			if b.BMI < 44.99 {
				assert.Greater(t, b.BMIScore, 0.0, "weight %.2f bmi %.2f", w, b.BMI)
			}
			prev = b.BMIScore
		}
	}

	t.Run("below the fit band", func(t *testing.T) { walk(t, 53.5, 1, -0.25) })
	t.Run("above the fit band", func(t *testing.T) { walk(t, 72.2, 400, 0.5) })
}

func TestScorer_RiskBoundaries(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name       string
		vision     Vision
		runMinutes float64
		composite  int
		risk       classify.Tier
	}{
		{"exactly 75 is low", VisionCorrectable, 9.04, 75, classify.TierLow},
		{"74 is moderate", VisionCorrectable, 9.52, 74, classify.TierModerate},
		{"exactly 60 is moderate", VisionDefective, 7.6, 60, classify.TierModerate},
		{"59 is high", VisionDefective, 8.08, 59, classify.TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.Score(Input{HeightCm: 170, WeightKg: 65, Vision: tt.vision, RunMinutes: tt.runMinutes})
			require.NoError(t, err)
			assert.Equal(t, tt.composite, b.Composite)
			assert.Equal(t, tt.risk, b.Risk)
		})
	}
}

func TestScorer_Idempotent(t *testing.T) {
	s := newTestScorer(t)
	in := Input{HeightCm: 182, WeightKg: 91, Vision: VisionCorrectable, FlatFoot: true, PushUps: 22, RunMinutes: 8.5, SitUps: 31}

	first, err := s.Score(in)
	require.NoError(t, err)
	second, err := s.Score(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// ==========================
// Validation
// ==========================

func TestScorer_Validation(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name          string
		mutate        func(in *Input)
		expectedField string
	}{
		{"zero height", func(in *Input) { in.HeightCm = 0 }, "heightCm"},
		{"nan weight", func(in *Input) { in.WeightKg = math.NaN() }, "weightKg"},
		{"infinite run", func(in *Input) { in.RunMinutes = math.Inf(1) }, "runMinutes"},
		{"unknown vision", func(in *Input) { in.Vision = "blurry" }, "vision"},
		{"missing vision", func(in *Input) { in.Vision = "" }, "vision"},
		{"negative push-ups", func(in *Input) { in.PushUps = -1 }, "pushUps"},
		{"negative sit-ups", func(in *Input) { in.SitUps = -3 }, "sitUps"},
		{"height over 300", func(in *Input) { in.HeightCm = 301 }, "heightCm"},
		{"zero weight", func(in *Input) { in.WeightKg = 0 }, "weightKg"},
		{"weight over 400", func(in *Input) { in.WeightKg = 400.1 }, "weightKg"},
		{"negative run time", func(in *Input) { in.RunMinutes = -1 }, "runMinutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fitInput()
			tt.mutate(&in)
			_, err := s.Score(in)
			require.Error(t, err)

			var ve *apperrors.ValidationError
			require.True(t, stderrors.As(err, &ve))
			assert.Equal(t, tt.expectedField, ve.Field)
		})
	}
}

func TestScorer_AcceptsRangeEdges(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"height 300", func(in *Input) { in.HeightCm = 300 }},
		{"weight 400", func(in *Input) { in.WeightKg = 400 }},
		{"zero run time", func(in *Input) { in.RunMinutes = 0 }},
		{"zero push-ups and sit-ups", func(in *Input) { in.PushUps, in.SitUps = 0, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fitInput()
			tt.mutate(&in)
			b, err := s.Score(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b.Composite, 0)
			assert.LessOrEqual(t, b.Composite, 100)
		})
	}
}

func TestNewScorer_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(t *Tables)
		invalidRange bool
	}{
		{"push-up floor equals target", func(t *Tables) { t.PushUps = Standard{Floor: 10, Target: 10} }, true},
		{"bands not ascending", func(t *Tables) { t.BMIBands[1].UpperBound = 10 }, true},
		{"zero decay width", func(t *Tables) { t.BMIDecayWidth = 0 }, true},
		{"missing vision score", func(t *Tables) { delete(t.VisionScores, VisionCorrectable) }, false},
		{"missing ladder", func(t *Tables) { delete(t.Remediation, DimensionFitness) }, false},
		{"zero plan length", func(t *Tables) { t.PlanLength = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			_, err := NewScorer(tables)
			require.Error(t, err)
			assert.Equal(t, tt.invalidRange, apperrors.IsInvalidRange(err))
		})
	}
}

func TestNewScorer_CopiesTables(t *testing.T) {
	tables := DefaultTables()
	s, err := NewScorer(tables)
	require.NoError(t, err)

	tables.VisionScores[VisionPerfect] = 0
	b, err := s.Score(fitInput())
	require.NoError(t, err)
	assert.Equal(t, 25.0, b.VisionScore)
}

func BenchmarkScorer_Score(b *testing.B) {
	s, _ := NewScorer(DefaultTables())
	in := Input{HeightCm: 175, WeightKg: 82, Vision: VisionCorrectable, PushUps: 25, RunMinutes: 8, SitUps: 30}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Score(in)
	}
}
