// internal/workers/readiness/score-olq/models.go
package scoreolq

import "readiness-workers/internal/scoring/olq"

type Input struct {
	OLQ *olq.Profile `json:"olq"`
}

type Output struct {
	OLQReadiness *olq.Readiness `json:"olqReadiness"`
}
