package eligibility

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "readiness-workers/internal/common/errors"
)

// Predicate is one eligibility check. Reason is reported when Test fails.
type Predicate struct {
	Name   string
	Test   func(CandidateProfile) bool
	Reason string
}

// Scheme is an admission scheme: an ordered predicate chain plus the
// message returned when every predicate passes.
type Scheme struct {
	ID             string
	Name           string
	Predicates     []Predicate
	SuccessMessage string
	Acknowledge    []OptionalScore
}

// Evaluate runs the predicates in order and stops at the first failure.
func (s Scheme) Evaluate(p CandidateProfile) Result {
	res := Result{SchemeID: s.ID, SchemeName: s.Name}
	for _, pred := range s.Predicates {
		if !pred.Test(p) {
			res.Reason = pred.Reason
			return res
		}
	}
	res.Eligible = true
	res.Reason = s.successReason(p)
	return res
}

func (s Scheme) successReason(p CandidateProfile) string {
	msg := s.SuccessMessage
	if msg == "" {
		msg = "Eligible for " + s.Name
	}
	var notes []string
	for _, score := range s.Acknowledge {
		if v := p.optionalScore(score); v != nil {
			notes = append(notes, fmt.Sprintf("%s %s", scoreLabel(score), formatNumber(*v)))
		}
	}
	if len(notes) > 0 {
		msg += "; submitted " + strings.Join(notes, ", ") + " noted"
	}
	return msg
}

// Definition is the table form of a scheme. BuildScheme turns it into the
// fixed predicate order gender, education, age, then thresholds.
type Definition struct {
	ID                   string
	Name                 string
	Genders              []Gender
	Education            []Education
	MinAge               float64
	MaxAge               float64
	MinPercentage        float64
	RequireJEE           bool
	RequireLawScore      bool
	RequireCertification bool
	SuccessMessage       string
	Acknowledge          []OptionalScore
}

// BuildScheme validates def and compiles its predicate chain.
func BuildScheme(def Definition) (Scheme, error) {
	if def.ID == "" {
		return Scheme{}, fmt.Errorf("scheme id is required")
	}
	if def.MinAge > def.MaxAge {
		return Scheme{}, apperrors.NewInvalidRangeError("age window of scheme "+def.ID, def.MinAge, def.MaxAge)
	}
	if def.MinPercentage < 0 || def.MinPercentage > 100 {
		return Scheme{}, apperrors.NewInvalidRangeError("percentage threshold of scheme "+def.ID, def.MinPercentage, 100)
	}

	name := def.Name
	if name == "" {
		name = def.ID
	}
	s := Scheme{
		ID:             def.ID,
		Name:           name,
		SuccessMessage: def.SuccessMessage,
		Acknowledge:    append([]OptionalScore(nil), def.Acknowledge...),
	}

	if len(def.Genders) > 0 {
		s.Predicates = append(s.Predicates, GenderIn(def.Genders...))
	}
	if len(def.Education) > 0 {
		s.Predicates = append(s.Predicates, EducationIn(def.Education...))
	}
	s.Predicates = append(s.Predicates, AgeWithin(def.MinAge, def.MaxAge))
	if def.MinPercentage > 0 {
		s.Predicates = append(s.Predicates, PercentageAtLeast(def.MinPercentage))
	}
	if def.RequireJEE {
		s.Predicates = append(s.Predicates, Requires(ScoreJEE))
	}
	if def.RequireLawScore {
		s.Predicates = append(s.Predicates, Requires(ScoreLawAptitude))
	}
	if def.RequireCertification {
		s.Predicates = append(s.Predicates, Certified())
	}
	return s, nil
}

// GenderIn passes when the candidate's gender is listed.
func GenderIn(genders ...Gender) Predicate {
	allowed := append([]Gender(nil), genders...)
	labels := make([]string, len(allowed))
	for i, g := range allowed {
		labels[i] = string(g)
	}
	return Predicate{
		Name: "gender",
		Test: func(p CandidateProfile) bool {
			for _, g := range allowed {
				if p.Gender == g {
					return true
				}
			}
			return false
		},
		Reason: "Open to " + strings.Join(labels, " and ") + " candidates only",
	}
}

// EducationIn passes when the candidate's education level is listed.
func EducationIn(levels ...Education) Predicate {
	allowed := append([]Education(nil), levels...)
	labels := make([]string, len(allowed))
	for i, e := range allowed {
		labels[i] = string(e)
	}
	return Predicate{
		Name: "education",
		Test: func(p CandidateProfile) bool {
			for _, e := range allowed {
				if p.Education == e {
					return true
				}
			}
			return false
		},
		Reason: "Requires education level: " + strings.Join(labels, ", "),
	}
}

// AgeWithin passes when lo <= age <= hi.
func AgeWithin(lo, hi float64) Predicate {
	return Predicate{
		Name: "age",
		Test: func(p CandidateProfile) bool {
			return p.Age != nil && *p.Age >= lo && *p.Age <= hi
		},
		Reason: fmt.Sprintf("Age must be between %s and %s years", formatNumber(lo), formatNumber(hi)),
	}
}

// PercentageAtLeast passes when the subject percentage is supplied and >= threshold.
func PercentageAtLeast(threshold float64) Predicate {
	return Predicate{
		Name: "subjectPercentage",
		Test: func(p CandidateProfile) bool {
			return p.SubjectPercentage != nil && *p.SubjectPercentage >= threshold
		},
		Reason: fmt.Sprintf("Requires at least %s%% in the qualifying subjects", formatNumber(threshold)),
	}
}

// Requires passes when the optional score is supplied.
func Requires(score OptionalScore) Predicate {
	return Predicate{
		Name: string(score),
		Test: func(p CandidateProfile) bool {
			return p.optionalScore(score) != nil
		},
		Reason: "Requires a " + scoreLabel(score),
	}
}

// Certified passes when the candidate holds the cadet-corps certificate.
func Certified() Predicate {
	return Predicate{
		Name:   "certified",
		Test:   func(p CandidateProfile) bool { return p.Certified },
		Reason: "Requires an NCC 'C' certificate",
	}
}

func scoreLabel(s OptionalScore) string {
	switch s {
	case ScoreSubjectPercentage:
		return "subject percentage"
	case ScoreJEE:
		return "JEE (Main) score"
	case ScoreLawAptitude:
		return "law aptitude (CLAT) score"
	default:
		return string(s)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
