// Package olq aggregates the six officer-like-quality trait scores into a
// readiness composite, per-trait zones and predicted interview questions.
package olq

import (
	"fmt"
	"math"
	"sort"

	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring/classify"
)

// Trait names one of the six assessed qualities.
type Trait string

const (
	TraitLeadership         Trait = "leadership"
	TraitInitiative         Trait = "initiative"
	TraitResponsibility     Trait = "responsibility"
	TraitSocialAdaptability Trait = "socialAdaptability"
	TraitConfidence         Trait = "confidence"
	TraitConsistency        Trait = "consistency"
)

// Traits is the declared trait order used for zones and tie-breaks.
var Traits = []Trait{
	TraitLeadership,
	TraitInitiative,
	TraitResponsibility,
	TraitSocialAdaptability,
	TraitConfidence,
	TraitConsistency,
}

// Zone is a per-trait classification.
type Zone string

const (
	ZoneStrong   Zone = "strong"
	ZoneModerate Zone = "moderate"
	ZoneRisk     Zone = "risk"
)

// MaxTraitScore is the ceiling of a single trait.
const MaxTraitScore = 10

// zoneBands: <5 risk, 5-6 moderate, >=7 strong.
var zoneBands = []classify.Band{
	{UpperBound: 4, Label: string(ZoneRisk)},
	{UpperBound: 6, Label: string(ZoneModerate)},
	{UpperBound: MaxTraitScore, Label: string(ZoneStrong)},
}

// Profile holds the six trait scores, each 0-10.
type Profile struct {
	Leadership         int `json:"leadership" validate:"gte=0,lte=10"`
	Initiative         int `json:"initiative" validate:"gte=0,lte=10"`
	Responsibility     int `json:"responsibility" validate:"gte=0,lte=10"`
	SocialAdaptability int `json:"socialAdaptability" validate:"gte=0,lte=10"`
	Confidence         int `json:"confidence" validate:"gte=0,lte=10"`
	Consistency        int `json:"consistency" validate:"gte=0,lte=10"`
}

// Score returns the score of trait t.
func (p Profile) Score(t Trait) int {
	switch t {
	case TraitLeadership:
		return p.Leadership
	case TraitInitiative:
		return p.Initiative
	case TraitResponsibility:
		return p.Responsibility
	case TraitSocialAdaptability:
		return p.SocialAdaptability
	case TraitConfidence:
		return p.Confidence
	case TraitConsistency:
		return p.Consistency
	default:
		return 0
	}
}

// TraitZone is the zone of a single trait.
type TraitZone struct {
	Trait Trait `json:"trait"`
	Score int   `json:"score"`
	Zone  Zone  `json:"zone"`
}

// Question is a predicted interview question for a risk-zone trait.
type Question struct {
	Trait Trait  `json:"trait"`
	Score int    `json:"score"`
	Text  string `json:"text"`
}

// Readiness is the aggregated OLQ result.
type Readiness struct {
	Composite int           `json:"composite"`
	Risk      classify.Tier `json:"risk"`
	Zones     []TraitZone   `json:"zones"`
	// Questions holds one question per risk-zone trait, lowest score first.
	// Equal scores keep the declared trait order.
	Questions []Question    `json:"questions"`
}

// QuestionBank lists candidate questions per trait in insertion order.
type QuestionBank map[Trait][]string

// Aggregator is immutable after construction and safe for concurrent use.
type Aggregator struct {
	bank QuestionBank
}

// NewAggregator copies bank and rejects it if any trait has no questions.
func NewAggregator(bank QuestionBank) (*Aggregator, error) {
	copied := make(QuestionBank, len(Traits))
	for _, t := range Traits {
		questions := bank[t]
		if len(questions) == 0 {
			return nil, fmt.Errorf("question bank has no questions for trait %q", t)
		}
		copied[t] = append([]string(nil), questions...)
	}
	return &Aggregator{bank: copied}, nil
}

// Score aggregates p.
func (a *Aggregator) Score(p Profile) (*Readiness, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	sum := 0
	zones := make([]TraitZone, 0, len(Traits))
	for _, t := range Traits {
		score := p.Score(t)
		sum += score
		label, err := classify.Classify(float64(score), zoneBands)
		if err != nil {
			return nil, err
		}
		zones = append(zones, TraitZone{Trait: t, Score: score, Zone: Zone(label)})
	}

	composite := int(math.Round(float64(sum) * 100 / float64(len(Traits)*MaxTraitScore)))
	return &Readiness{
		Composite: composite,
		Risk:      classify.RiskTier(composite),
		Zones:     zones,
		Questions: a.questions(zones),
	}, nil
}

func (a *Aggregator) questions(zones []TraitZone) []Question {
	risky := make([]TraitZone, 0, len(zones))
	for _, z := range zones {
		if z.Zone == ZoneRisk {
			risky = append(risky, z)
		}
	}
	sort.SliceStable(risky, func(i, j int) bool {
		return risky[i].Score < risky[j].Score
	})

	out := make([]Question, 0, len(risky))
	for _, z := range risky {
		out = append(out, Question{Trait: z.Trait, Score: z.Score, Text: a.bank[z.Trait][0]})
	}
	return out
}
