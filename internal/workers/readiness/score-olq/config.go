// internal/workers/readiness/score-olq/config.go
package scoreolq

import (
	"time"

	"readiness-workers/internal/common/config"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wc config.WorkerConfig) *Config {
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Config{Timeout: timeout}
}
