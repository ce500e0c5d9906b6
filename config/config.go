package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/medvault-org/medvault/matching"
)

type Config struct {
	HttpPort uint16 `envconfig:"MEDVAULT_HTTP_SERVER_PORT" default:"8080" required:"true"`

	// Product-tuned confidence cut-offs for the patient resolution policy.
	AutoAcceptConfidence        int `envconfig:"MEDVAULT_AUTO_ACCEPT_CONFIDENCE" default:"90"`
	AcceptWithWarningConfidence int `envconfig:"MEDVAULT_ACCEPT_WITH_WARNING_CONFIDENCE" default:"75"`
	ReviewRequiredConfidence    int `envconfig:"MEDVAULT_REVIEW_REQUIRED_CONFIDENCE" default:"50"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewConfig() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Thresholds assembles and validates the resolution policy thresholds.
func (c *Config) Thresholds() (matching.Thresholds, error) {
	t := matching.Thresholds{
		AutoAccept:        c.AutoAcceptConfidence,
		AcceptWithWarning: c.AcceptWithWarningConfidence,
		ReviewRequired:    c.ReviewRequiredConfidence,
	}
	if err := t.Validate(); err != nil {
		return matching.Thresholds{}, err
	}
	return t, nil
}

func NewThresholds(cfg *Config) (matching.Thresholds, error) {
	return cfg.Thresholds()
}
