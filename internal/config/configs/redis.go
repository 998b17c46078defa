package configs

import "time"

// Redis configures the counter store client. Timeouts apply per command;
// the admission filter additionally bounds every batch with
// Engine.CounterTimeout.
type Redis struct {
	Address     string        `env:"ADDRESS" envDefault:"localhost:6379"`
	Password    string        `env:"PASSWORD"`
	DB          int           `env:"DB" envDefault:"0"`
	PoolSize    int           `env:"POOL_SIZE" envDefault:"20"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"100ms"`
}
