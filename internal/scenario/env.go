package scenario

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig carries process-level settings read from the environment.
// CLI flags take precedence over these.
type EnvConfig struct {
	DataDir string `env:"MOGISIM_DATA" envDefault:".mogisim"`
	Verbose bool   `env:"MOGISIM_VERBOSE"`
	NoColor bool   `env:"MOGISIM_NO_COLOR"`
}

func ParseEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
