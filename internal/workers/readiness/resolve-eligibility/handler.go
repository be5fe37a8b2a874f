// internal/workers/readiness/resolve-eligibility/handler.go
package resolveeligibility

import (
	"context"
	"time"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring/eligibility"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "resolve-eligibility"
)

type Handler struct {
	config     *Config
	resolver   *eligibility.Resolver
	schema     *validation.SchemaValidator
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler wires the resolver into a job handler. schema and obs may be nil.
func NewHandler(
	config *Config,
	resolver *eligibility.Resolver,
	schema *validation.SchemaValidator,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		resolver:   resolver,
		schema:     schema,
		obs:        obs,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	log := h.logger.WithFields(map[string]interface{}{
		"jobKey":        job.Key,
		"workflowKey":   job.ProcessInstanceKey,
		"correlationId": uuid.NewString(),
	})
	log.Info("processing job", nil)

	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)

	output, err := h.process(ctx, job.Variables)
	if err == nil {
		span.SetAttributes(attribute.Int("eligibility.count", output.EligibleCount))
	}
	observability.EndSpan(span, err)

	status := "success"
	if err != nil {
		status = "failed"
		stdErr := errors.Normalize(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.errHandler.HandleJobError(ctx, client, job, err)
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
		h.completeJob(ctx, client, job, output, log)
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, status)
	h.obs.RecordJobDuration(ctx, TaskType, elapsed, status)
}

func (h *Handler) process(ctx context.Context, variables string) (*Output, error) {
	if h.schema != nil {
		if err := h.schema.Validate([]byte(variables)); err != nil {
			return nil, err
		}
	}
	var input Input
	if err := validation.Decode([]byte(variables), &input); err != nil {
		return nil, err
	}
	return h.execute(ctx, &input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Candidate == nil {
		return nil, errors.NewValidationError("candidate", "is required")
	}

	results, err := h.resolver.Resolve(*input.Candidate)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		metrics.ObserveEligibility(r.SchemeID, r.Eligible)
	}

	return &Output{
		Eligibility:   results,
		EligibleCount: eligibility.CountEligible(results),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	log.Info("job completed", map[string]interface{}{
		"schemes":       len(output.Eligibility),
		"eligibleCount": output.EligibleCount,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
