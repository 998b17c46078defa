package config

import (
	"github.com/caarlos0/env/v11"

	"mesa-decision/internal/config/configs"
)

// Config aggregates all configuration sections of the decision service.
// Fields are populated from environment variables using the caarlos0/env
// library; nested structs are tagged with envPrefix so their fields are
// parsed with the given prefix. See the types in the configs package for
// defaults. Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to the logger.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP       configs.HTTP       `envPrefix:"HTTP_"`
	Log        configs.Logger     `envPrefix:"LOG_"`
	Psql       configs.Postgres   `envPrefix:"PSQL_"`
	Redis      configs.Redis      `envPrefix:"REDIS_"`
	Engine     configs.Engine     `envPrefix:"ENGINE_"`
	Prediction configs.Prediction `envPrefix:"PREDICTION_"`
}

// Load reads configuration from environment variables into a Config and
// validates the sections that have invariants.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Prediction.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
