package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const fullConfig = `
app:
  name: readiness-workers
  environment: test
camunda:
  broker_address: localhost:26500
  use_plaintext: true
workers:
  score-medical:
    enabled: true
    max_jobs_active: 8
  score-olq:
    enabled: false
tracing:
  enabled: true
  jaeger_endpoint: http://localhost:14268/api/traces
scoring:
  schemes:
    - id: nda
      name: NDA
      genders: [male, female]
      education: [secondary]
      min_age: 16.5
      max_age: 19.5
  medical:
    vision_scores:
      perfect: 25
      correctable: 15
      defective: 0
    condition_penalties:
      flatFoot: 9
    push_ups:
      floor: 0
      target: 50
  olq:
    questions:
      socialAdaptability:
        - "How do you settle into a new hostel?"
`

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.True(t, cfg.Camunda.UsePlaintext)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive, "default applied")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)

	medical := GetWorkerConfig(cfg, "score-medical")
	assert.Equal(t, 8, medical.MaxJobsActive)
	assert.Equal(t, 10000, medical.Timeout)
	assert.False(t, IsWorkerEnabled(cfg, "score-olq"))
	assert.True(t, IsWorkerEnabled(cfg, "resolve-eligibility"), "unknown workers default to enabled")

	require.Len(t, cfg.Scoring.Schemes, 1)
	scheme := cfg.Scoring.Schemes[0]
	assert.Equal(t, "nda", scheme.ID)
	assert.Equal(t, []string{"male", "female"}, scheme.Genders)
	assert.Equal(t, 16.5, scheme.MinAge)

	assert.Equal(t, 15.0, cfg.Scoring.Medical.VisionScores["correctable"])
	assert.Equal(t, 9.0, cfg.Scoring.Medical.ConditionPenalties["flatfoot"], "viper lower-cases map keys")
	require.NotNil(t, cfg.Scoring.Medical.PushUps.Floor)
	assert.Equal(t, 0.0, *cfg.Scoring.Medical.PushUps.Floor)
	assert.Equal(t, 50.0, *cfg.Scoring.Medical.PushUps.Target)
	assert.Nil(t, cfg.Scoring.Medical.Run.Floor)
	assert.Len(t, cfg.Scoring.OLQ.Questions["socialadaptability"], 1)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing broker address",
			body:    "app:\n  name: x\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "broker address from ZEEBE_ADDRESS",
			body: "app:\n  name: x\n",
			env:  map[string]string{"ZEEBE_ADDRESS": "zeebe:26500"},
		},
		{
			name:    "tracing without endpoint",
			body:    "camunda:\n  broker_address: localhost:26500\ntracing:\n  enabled: true\n",
			wantErr: "jaeger_endpoint",
		},
		{
			name:    "sample ratio out of range",
			body:    "camunda:\n  broker_address: localhost:26500\ntracing:\n  sample_ratio: 2\n",
			wantErr: "sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ZEEBE_ADDRESS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromFile(writeConfig(t, tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_BROKER", "broker.internal:26500")
	cfg, err := LoadFromFile(writeConfig(t, "camunda:\n  broker_address: ${TEST_BROKER}\n"))
	require.NoError(t, err)
	assert.Equal(t, "broker.internal:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
