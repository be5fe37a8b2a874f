// internal/workers/readiness/score-medical/models.go
package scoremedical

import "readiness-workers/internal/scoring/medical"

type Input struct {
	Medical *medical.Input `json:"medical"`
}

type Output struct {
	MedicalReadiness *medical.Breakdown `json:"medicalReadiness"`
}
