// internal/workers/readiness/score-olq/handler.go
package scoreolq

import (
	"context"
	"time"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring/olq"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "score-olq"
)

type Handler struct {
	config     *Config
	aggregator *olq.Aggregator
	schema     *validation.SchemaValidator
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	aggregator *olq.Aggregator,
	schema *validation.SchemaValidator,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		aggregator: aggregator,
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
	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))

	output, err := h.process(ctx, job.Variables)
	observability.EndSpan(span, err)

	status := "success"
	if err != nil {
		status = "failed"
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
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
	if input.OLQ == nil {
		return nil, errors.NewValidationError("olq", "is required")
	}

	readiness, err := h.aggregator.Score(*input.OLQ)
	if err != nil {
		return nil, err
	}
	metrics.ObserveReadiness("olq", readiness.Composite, string(readiness.Risk))

	return &Output{OLQReadiness: readiness}, nil
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
		"composite": output.OLQReadiness.Composite,
		"questions": len(output.OLQReadiness.Questions),
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
