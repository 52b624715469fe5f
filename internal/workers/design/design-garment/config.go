// internal/workers/design/design-garment/config.go
package designgarment

import (
	"time"

	"garment-workers/internal/garment"
)

type Config struct {
	Timeout     time.Duration
	Extractor   garment.Config
	DefaultMode string
	// CacheTTL bounds how long extraction results stay in Redis. Zero
	// disables the cache.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     15 * time.Second,
		Extractor:   garment.DefaultConfig(),
		DefaultMode: "professional",
		CacheTTL:    time.Hour,
	}
}
