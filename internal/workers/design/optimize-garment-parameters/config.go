// internal/workers/design/optimize-garment-parameters/config.go
package optimizegarmentparameters

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultMode is used when the job carries no mode label.
	DefaultMode string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		DefaultMode: "professional",
	}
}
