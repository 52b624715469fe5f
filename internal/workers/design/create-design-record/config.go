// internal/workers/design/create-design-record/config.go
package createdesignrecord

import "time"

type Config struct {
	Timeout time.Duration
	// ContractSchemaPath overrides the built-in renderer contract.
	ContractSchemaPath string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
