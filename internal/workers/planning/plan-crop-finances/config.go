package plancropfinances

import (
	"time"

	"crop-planner/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Planner config.PlannerConfig
	Now     func() time.Time
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Planner: cfg.Planner,
		Now:     time.Now,
	}
}
