package configs

import "time"

// Engine tunes the decision pipeline and the catalog cache.
type Engine struct {
	// RefreshInterval is the period of the background catalog reload.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"60s"`
	// RefreshTimeout bounds one catalog load.
	RefreshTimeout time.Duration `env:"REFRESH_TIMEOUT" envDefault:"10s"`
	// CounterTimeout bounds each batched counter store read.
	CounterTimeout time.Duration `env:"COUNTER_TIMEOUT" envDefault:"50ms"`
	// MaxPerAdvertiser caps results per advertiser. Zero disables the cap.
	MaxPerAdvertiser int `env:"MAX_PER_ADVERTISER" envDefault:"2"`
	// DefaultLimit is used when a request asks for a non-positive number of
	// ads.
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"5"`
	// FrequencyWindow is the lifetime of a user's impression counter.
	FrequencyWindow time.Duration `env:"FREQUENCY_WINDOW" envDefault:"24h"`
}
