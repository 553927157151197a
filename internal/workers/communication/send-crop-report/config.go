package sendcropreport

import (
	"time"

	"crop-planner/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SMSGateway relays SMS as e-mail to the recipient's carrier gateway.
	SMSGateway bool
	FromEmail  string
	SenderID   string
	Timeout    time.Duration
	Location   *time.Location
	Now        func() time.Time
}

func LoadConfig(cfg *config.Config) *Config {
	n := cfg.Notifications
	return &Config{
		EmailEnabled: n.Email.Enabled,
		SMSEnabled:   n.SMS.Enabled,
		SMSGateway:   n.SMS.Gateway,
		FromEmail:    n.Email.FromEmail,
		SenderID:     n.SMS.SenderID,
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Location:     cfg.Planner.Location(),
		Now:          time.Now,
	}
}
