// internal/workers/design/extract-garment-attributes/config.go
package extractgarmentattributes

import (
	"time"

	"garment-workers/internal/garment"
)

type Config struct {
	Timeout   time.Duration
	Extractor garment.Config
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		Extractor: garment.DefaultConfig(),
	}
}
