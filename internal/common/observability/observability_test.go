package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"readiness-workers/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestObservability_RecordsJobMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	o, err := NewWithOptions("readiness-test", Options{Registerer: reg})
	require.NoError(t, err)
	defer func() { _ = o.Shutdown(context.Background()) }()

	ctx := context.Background()
	o.RecordJobProcessed(ctx, "score-olq", "success")
	o.RecordJobDuration(ctx, "score-olq", 12*time.Millisecond, "success")

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
}

func TestObservability_SpansWithoutTracing(t *testing.T) {
	o, err := NewWithOptions("readiness-test", Options{Registerer: promclient.NewRegistry()})
	require.NoError(t, err)

	ctx, span := o.StartSpan(context.Background(), "score-medical", attribute.Int64("job.key", 7))
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	EndSpan(span, errors.New("validation failed"))
	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestObservability_NilIsNoop(t *testing.T) {
	var o *Observability
	ctx, span := o.StartSpan(context.Background(), "score-olq")
	require.NotNil(t, ctx)
	EndSpan(span, nil)
	o.RecordJobProcessed(ctx, "score-olq", "success")
	o.RecordJobDuration(ctx, "score-olq", time.Millisecond, "success")
	assert.NoError(t, o.Shutdown(ctx))
}

func TestObservability_JaegerTracing(t *testing.T) {
	o, err := NewWithOptions("readiness-test", Options{
		Registerer: promclient.NewRegistry(),
		Tracing: config.TracingConfig{
			Enabled:        true,
			JaegerEndpoint: "http://127.0.0.1:14268/api/traces",
			SampleRatio:    1,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, o.tracerProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, o.Shutdown(ctx))
}
