// internal/workers/readiness/resolve-eligibility/models.go
package resolveeligibility

import "readiness-workers/internal/scoring/eligibility"

type Input struct {
	Candidate *eligibility.CandidateProfile `json:"candidate"`
}

// Output carries one result per configured scheme, in declared order.
type Output struct {
	Eligibility   []eligibility.Result `json:"eligibility"`
	EligibleCount int                  `json:"eligibleCount"`
}
