// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	Camunda CamundaConfig           `mapstructure:"camunda"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`
	Logging LoggingConfig           `mapstructure:"logging"`
	Metrics MetricsConfig           `mapstructure:"metrics"`
	Tracing TracingConfig           `mapstructure:"tracing"`
	Scoring ScoringConfig           `mapstructure:"scoring"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // only used for infrastructure failures
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the /metrics, /health and /ready listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// TracingConfig enables span export to a Jaeger collector.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// --- Scoring tables ---

// ScoringConfig overrides the engine's built-in tables. Any empty table
// falls back to the built-in default.
//
// Viper lower-cases map keys, so trait, vision, condition and dimension
// keys are matched case-insensitively.
type ScoringConfig struct {
	Schemes []SchemeConfig `mapstructure:"schemes"`
	Medical MedicalConfig  `mapstructure:"medical"`
	OLQ     OLQConfig      `mapstructure:"olq"`
}

// SchemeConfig is the table form of one admission scheme.
type SchemeConfig struct {
	ID                   string   `mapstructure:"id"`
	Name                 string   `mapstructure:"name"`
	Genders              []string `mapstructure:"genders"`
	Education            []string `mapstructure:"education"`
	MinAge               float64  `mapstructure:"min_age"`
	MaxAge               float64  `mapstructure:"max_age"`
	MinPercentage        float64  `mapstructure:"min_percentage"`
	RequireJEE           bool     `mapstructure:"require_jee"`
	RequireLawScore      bool     `mapstructure:"require_law_score"`
	RequireCertification bool     `mapstructure:"require_certification"`
	SuccessMessage       string   `mapstructure:"success_message"`
	Acknowledge          []string `mapstructure:"acknowledge"`
}

type MedicalConfig struct {
	VisionScores       map[string]float64  `mapstructure:"vision_scores"`
	ConditionPenalties map[string]float64  `mapstructure:"condition_penalties"`
	PushUps            StandardConfig      `mapstructure:"push_ups"`
	Run                StandardConfig      `mapstructure:"run"`
	SitUps             StandardConfig      `mapstructure:"sit_ups"`
	BMIDecayWidth      float64             `mapstructure:"bmi_decay_width"`
	Remediation        map[string][]string `mapstructure:"remediation"`
}

// StandardConfig overrides a fitness standard. Nil fields keep the default.
type StandardConfig struct {
	Floor  *float64 `mapstructure:"floor"`
	Target *float64 `mapstructure:"target"`
}

type OLQConfig struct {
	Questions map[string][]string `mapstructure:"questions"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
