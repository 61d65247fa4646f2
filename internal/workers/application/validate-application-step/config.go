// internal/workers/application/validate-application-step/config.go
package validateapplicationstep

import (
	"time"

	"apply-wizard/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// CrossCheck also validates the record against the exported JSON schema
	// and reports disagreements in the output.
	CrossCheck bool
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Config{
		Timeout:    timeout,
		CrossCheck: true,
	}
}
