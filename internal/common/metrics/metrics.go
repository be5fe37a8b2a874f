// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// ReadinessComposite observes medical and OLQ composite scores.
	ReadinessComposite = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiness_composite_score",
			Help:    "Distribution of readiness composite scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"component"},
	)

	ReadinessRiskTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_risk_tier_total",
			Help: "Readiness evaluations by resulting risk tier",
		},
		[]string{"component", "tier"},
	)

	EligibilityOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_outcomes_total",
			Help: "Eligibility results by scheme and outcome",
		},
		[]string{"scheme", "eligible"},
	)
)

// ObserveReadiness records one composite score and its tier.
func ObserveReadiness(component string, composite int, tier string) {
	ReadinessComposite.WithLabelValues(component).Observe(float64(composite))
	ReadinessRiskTier.WithLabelValues(component, tier).Inc()
}

// ObserveEligibility records one scheme outcome.
func ObserveEligibility(scheme string, eligible bool) {
	EligibilityOutcomes.WithLabelValues(scheme, strconv.FormatBool(eligible)).Inc()
}
