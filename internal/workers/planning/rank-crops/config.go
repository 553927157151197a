package rankcrops

import (
	"time"

	"crop-planner/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Planner config.PlannerConfig
	// Now is the clock consulted when neither the job nor the planner config
	// pins the month.
	Now func() time.Time
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Planner: cfg.Planner,
		Now:     time.Now,
	}
}
