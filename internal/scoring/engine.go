// Package scoring assembles the eligibility resolver, medical scorer and OLQ
// aggregator from configuration tables.
package scoring

import (
	"fmt"
	"strings"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/scoring/eligibility"
	"readiness-workers/internal/scoring/medical"
	"readiness-workers/internal/scoring/olq"
)

// Engine bundles the three independent components. Each is immutable and
// safe for concurrent use.
type Engine struct {
	Eligibility *eligibility.Resolver
	Medical     *medical.Scorer
	OLQ         *olq.Aggregator
}

// NewEngine builds every component, using built-in defaults for any table
// left empty in cfg.
func NewEngine(cfg config.ScoringConfig) (*Engine, error) {
	schemes, err := buildSchemes(cfg.Schemes)
	if err != nil {
		return nil, fmt.Errorf("eligibility schemes: %w", err)
	}
	resolver, err := eligibility.NewResolver(schemes)
	if err != nil {
		return nil, fmt.Errorf("eligibility schemes: %w", err)
	}

	tables, err := buildMedicalTables(cfg.Medical)
	if err != nil {
		return nil, fmt.Errorf("medical tables: %w", err)
	}
	scorer, err := medical.NewScorer(tables)
	if err != nil {
		return nil, fmt.Errorf("medical tables: %w", err)
	}

	bank, err := buildQuestionBank(cfg.OLQ)
	if err != nil {
		return nil, fmt.Errorf("olq question bank: %w", err)
	}
	aggregator, err := olq.NewAggregator(bank)
	if err != nil {
		return nil, fmt.Errorf("olq question bank: %w", err)
	}

	return &Engine{Eligibility: resolver, Medical: scorer, OLQ: aggregator}, nil
}

// NewDefaultEngine builds the engine from the built-in tables only.
func NewDefaultEngine() (*Engine, error) {
	return NewEngine(config.ScoringConfig{})
}

func buildSchemes(cfgs []config.SchemeConfig) ([]eligibility.Scheme, error) {
	if len(cfgs) == 0 {
		return eligibility.DefaultSchemes()
	}

	schemes := make([]eligibility.Scheme, 0, len(cfgs))
	for i, c := range cfgs {
		def := eligibility.Definition{
			ID:                   c.ID,
			Name:                 c.Name,
			MinAge:               c.MinAge,
			MaxAge:               c.MaxAge,
			MinPercentage:        c.MinPercentage,
			RequireJEE:           c.RequireJEE,
			RequireLawScore:      c.RequireLawScore,
			RequireCertification: c.RequireCertification,
			SuccessMessage:       c.SuccessMessage,
		}
		for _, g := range c.Genders {
			gender, ok := matchKey(g, eligibility.GenderMale, eligibility.GenderFemale)
			if !ok {
				return nil, fmt.Errorf("scheme %d (%s): unknown gender %q", i, c.ID, g)
			}
			def.Genders = append(def.Genders, gender)
		}
		for _, e := range c.Education {
			level, ok := matchKey(e, eligibility.EducationSecondary, eligibility.EducationGraduate,
				eligibility.EducationEngineering, eligibility.EducationLaw)
			if !ok {
				return nil, fmt.Errorf("scheme %d (%s): unknown education level %q", i, c.ID, e)
			}
			def.Education = append(def.Education, level)
		}
		for _, a := range c.Acknowledge {
			score, ok := matchKey(a, eligibility.ScoreSubjectPercentage, eligibility.ScoreJEE, eligibility.ScoreLawAptitude)
			if !ok {
				return nil, fmt.Errorf("scheme %d (%s): unknown optional score %q", i, c.ID, a)
			}
			def.Acknowledge = append(def.Acknowledge, score)
		}

		s, err := eligibility.BuildScheme(def)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

func buildMedicalTables(c config.MedicalConfig) (medical.Tables, error) {
	t := medical.DefaultTables()

	if len(c.VisionScores) > 0 {
		t.VisionScores = make(map[medical.Vision]float64, len(c.VisionScores))
		for k, v := range c.VisionScores {
			vision, ok := matchKey(k, medical.VisionPerfect, medical.VisionCorrectable, medical.VisionDefective)
			if !ok {
				return t, fmt.Errorf("unknown vision category %q", k)
			}
			t.VisionScores[vision] = v
		}
	}

	for k, v := range c.ConditionPenalties {
		condition, ok := matchKey(k, medical.ConditionFlatFoot, medical.ConditionColourBlindness, medical.ConditionSurgeryHistory)
		if !ok {
			return t, fmt.Errorf("unknown condition %q", k)
		}
		t.ConditionPenalties[condition] = v
	}

	applyStandard(&t.PushUps, c.PushUps)
	applyStandard(&t.Run, c.Run)
	applyStandard(&t.SitUps, c.SitUps)

	if c.BMIDecayWidth != 0 {
		t.BMIDecayWidth = c.BMIDecayWidth
	}

	for k, ladder := range c.Remediation {
		dim, ok := matchKey(k, medical.DimensionBMI, medical.DimensionVision, medical.DimensionConditions,
			medical.DimensionFitness, medical.DimensionMaintenance)
		if !ok {
			return t, fmt.Errorf("unknown remediation dimension %q", k)
		}
		if len(ladder) > 0 {
			t.Remediation[dim] = ladder
		}
	}
	return t, nil
}

func applyStandard(dst *medical.Standard, c config.StandardConfig) {
	if c.Floor != nil {
		dst.Floor = *c.Floor
	}
	if c.Target != nil {
		dst.Target = *c.Target
	}
}

// buildQuestionBank overlays configured questions per trait on the default bank.
func buildQuestionBank(c config.OLQConfig) (olq.QuestionBank, error) {
	bank := olq.DefaultQuestionBank()
	for k, questions := range c.Questions {
		trait, ok := matchKey(k, olq.Traits...)
		if !ok {
			return nil, fmt.Errorf("unknown trait %q", k)
		}
		if len(questions) > 0 {
			bank[trait] = questions
		}
	}
	return bank, nil
}

// matchKey resolves a configuration key case-insensitively against known values.
func matchKey[T ~string](key string, known ...T) (T, bool) {
	for _, k := range known {
		if strings.EqualFold(key, string(k)) {
			return k, true
		}
	}
	var zero T
	return zero, false
}
