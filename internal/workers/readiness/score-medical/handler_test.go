package scoremedical

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring/classify"
	"readiness-workers/internal/scoring/medical"
	"readiness-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return LoadConfig(config.WorkerConfig{Timeout: 5000})
}

func createTestInput() *Input {
	return &Input{Medical: &medical.Input{
		HeightCm:   170,
		WeightKg:   65,
		Vision:     medical.VisionPerfect,
		PushUps:    40,
		RunMinutes: 6,
		SitUps:     40,
	}}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	scorer, err := medical.NewScorer(medical.DefaultTables())
	require.NoError(t, err)

	reg, err := registry.Default()
	require.NoError(t, err)
	activity, ok := reg.Find(TaskType)
	require.True(t, ok)
	schema, err := validation.NewSchemaValidator(activity.InputSchema)
	require.NoError(t, err)

	return NewHandler(createTestConfig(), scorer, schema, nil, newTestLogger(t))
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var ve *errors.ValidationError
	require.True(t, stderrors.As(err, &ve), "expected validation error, got %v", err)
	return ve.Field
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name           string
		input          func() *Input
		validateOutput func(t *testing.T, out *Output)
	}{
		{
			name:  "fit candidate",
			input: createTestInput,
			validateOutput: func(t *testing.T, out *Output) {
				b := out.MedicalReadiness
				assert.Equal(t, 100, b.Composite)
				assert.Equal(t, classify.TierLow, b.Risk)
				assert.Len(t, b.Plan, 4)
			},
		},
		{
			name: "defective vision with all conditions",
			input: func() *Input {
				in := createTestInput()
				in.Medical.Vision = medical.VisionDefective
				in.Medical.FlatFoot = true
				in.Medical.ColourBlindness = true
				in.Medical.SurgeryHistory = true
				return in
			},
			validateOutput: func(t *testing.T, out *Output) {
				b := out.MedicalReadiness
				assert.Less(t, b.Composite, 100)
				assert.Equal(t, medical.DimensionVision, b.Plan[0].Dimension)
				assert.Equal(t, medical.DimensionConditions, b.Plan[1].Dimension)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input())
			require.NoError(t, err)
			require.NotNil(t, out)
			tt.validateOutput(t, out)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := newTestHandler(t)

	t.Run("missing medical block", func(t *testing.T) {
		_, err := h.Execute(context.Background(), &Input{})
		assert.Equal(t, "medical", validationField(t, err))
	})

	t.Run("unknown vision", func(t *testing.T) {
		in := createTestInput()
		in.Medical.Vision = "blurry"
		_, err := h.Execute(context.Background(), in)
		assert.Equal(t, "vision", validationField(t, err))
	})

	t.Run("zero height", func(t *testing.T) {
		in := createTestInput()
		in.Medical.HeightCm = 0
		_, err := h.Execute(context.Background(), in)
		assert.Equal(t, "heightCm", validationField(t, err))
	})
}

// ==========================
// Variable decoding
// ==========================

func TestHandler_Decode(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name          string
		variables     string
		expectedField string
	}{
		{
			name:          "not json",
			variables:     `{"medical":`,
			expectedField: "variables",
		},
		{
			name:          "missing medical",
			variables:     `{"candidate":{}}`,
			expectedField: "medical",
		},
		{
			name:          "missing height",
			variables:     `{"medical":{"weightKg":65,"vision":"perfect","pushUps":40,"runMinutes":6,"sitUps":40}}`,
			expectedField: "medical.heightCm",
		},
		{
			name:          "fractional push-ups",
			variables:     `{"medical":{"heightCm":170,"weightKg":65,"vision":"perfect","pushUps":4.5,"runMinutes":6,"sitUps":40}}`,
			expectedField: "medical.pushUps",
		},
		{
			name:          "negative sit-ups",
			variables:     `{"medical":{"heightCm":170,"weightKg":65,"vision":"perfect","pushUps":40,"runMinutes":6,"sitUps":-1}}`,
			expectedField: "medical.sitUps",
		},
		{
			name:          "sit-ups beyond int range",
			variables:     `{"medical":{"heightCm":170,"weightKg":65,"vision":"perfect","pushUps":40,"runMinutes":6,"sitUps":1e30}}`,
			expectedField: "medical.sitUps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.decode(tt.variables)
			require.Error(t, err)
			assert.Equal(t, tt.expectedField, validationField(t, err))
		})
	}
}

func TestHandler_Process_FromVariables(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.process(context.Background(),
		`{"medical":{"heightCm":170,"weightKg":65,"vision":"correctable","pushUps":40,"runMinutes":6,"sitUps":40,"flatFoot":true}}`)
	require.NoError(t, err)
	assert.Equal(t, 88, out.MedicalReadiness.Composite)
	assert.Equal(t, classify.TierLow, out.MedicalReadiness.Risk)
}

func TestHandler_Decode_IntegralFloats(t *testing.T) {
	h := newTestHandler(t)

	input, err := h.decode(`{"medical":{"heightCm":170,"weightKg":65,"vision":"perfect","pushUps":40.0,"runMinutes":6,"sitUps":4e1}}`)
	require.NoError(t, err)
	assert.Equal(t, 40, input.Medical.PushUps)
	assert.Equal(t, 40, input.Medical.SitUps)
	assert.Equal(t, 170.0, input.Medical.HeightCm)
}

func TestHandler_WithoutSchema(t *testing.T) {
	scorer, err := medical.NewScorer(medical.DefaultTables())
	require.NoError(t, err)
	h := NewHandler(createTestConfig(), scorer, nil, nil, newTestLogger(t))

	_, err = h.decode(`{"medical":`)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeParseError, stdErr.Code)

	_, err = h.decode(`{"medical": 12}`)
	assert.Equal(t, "medical", validationField(t, err))

	_, err = h.decode(`{"medical":{"heightCm":170,"weightKg":65,"vision":"perfect","pushUps":1e30,"runMinutes":6,"sitUps":40}}`)
	assert.Equal(t, "medical.pushUps", validationField(t, err))

	_, err = h.process(context.Background(), `{}`)
	assert.Equal(t, "medical", validationField(t, err))
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 5*time.Second, LoadConfig(config.WorkerConfig{Timeout: 5000}).Timeout)
	assert.Equal(t, 10*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
}

func BenchmarkHandler_Execute(b *testing.B) {
	scorer, _ := medical.NewScorer(medical.DefaultTables())
	h := NewHandler(createTestConfig(), scorer, nil, nil, logger.NewNoOpLogger())
	input := createTestInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(context.Background(), input)
	}
}
