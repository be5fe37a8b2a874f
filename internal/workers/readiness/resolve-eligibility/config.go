// internal/workers/readiness/resolve-eligibility/config.go
package resolveeligibility

import (
	"time"

	"readiness-workers/internal/common/config"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Timeout time.Duration
}

// LoadConfig derives the handler settings from the worker's entry in the
// workers section. A zero timeout falls back to ten seconds.
func LoadConfig(wc config.WorkerConfig) *Config {
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Config{Timeout: timeout}
}
