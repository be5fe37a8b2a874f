// Package eligibility evaluates a candidate profile against every configured
// admission scheme.
package eligibility

import (
	"fmt"

	"readiness-workers/internal/common/validation"
)

// Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	schemes []Scheme
}

// NewResolver copies schemes and checks that ids are unique and every
// predicate has a test.
func NewResolver(schemes []Scheme) (*Resolver, error) {
	if len(schemes) == 0 {
		return nil, fmt.Errorf("no schemes configured")
	}

	seen := make(map[string]struct{}, len(schemes))
	copied := make([]Scheme, len(schemes))
	for i, s := range schemes {
		if s.ID == "" {
			return nil, fmt.Errorf("scheme at position %d has no id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scheme id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		for _, p := range s.Predicates {
			if p.Test == nil {
				return nil, fmt.Errorf("scheme %q: predicate %q has no test", s.ID, p.Name)
			}
		}
		s.Predicates = append([]Predicate(nil), s.Predicates...)
		s.Acknowledge = append([]OptionalScore(nil), s.Acknowledge...)
		copied[i] = s
	}
	return &Resolver{schemes: copied}, nil
}

// Schemes returns the configured schemes in declared order.
func (r *Resolver) Schemes() []Scheme {
	return append([]Scheme(nil), r.schemes...)
}

// Resolve returns one result per scheme, in declared order.
func (r *Resolver) Resolve(p CandidateProfile) ([]Result, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(r.schemes))
	for _, s := range r.schemes {
		results = append(results, s.Evaluate(p))
	}
	return results, nil
}

// CountEligible returns how many results are eligible.
func CountEligible(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Eligible {
			n++
		}
	}
	return n
}
