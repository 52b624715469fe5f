// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Garment  GarmentConfig           `mapstructure:"garment"`
	Events   EventsConfig            `mapstructure:"events"`
	Registry RegistryConfig          `mapstructure:"registry"`
	Server   ServerConfig            `mapstructure:"server"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	// Elasticsearch is optional. No addresses disables the design index.
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0 && e.Addresses[0] != ""
}

// EventsConfig routes design lifecycle events to an SNS topic. An empty
// topic ARN disables publishing.
type EventsConfig struct {
	Region         string `mapstructure:"region"`
	DesignTopicARN string `mapstructure:"design_topic_arn"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// GarmentConfig tunes the attribute extractor and the design workers.
type GarmentConfig struct {
	AspectRatioThreshold float64 `mapstructure:"aspect_ratio_threshold"`
	ColorGrid            int     `mapstructure:"color_grid"`
	ImageFetchTimeout    int     `mapstructure:"image_fetch_timeout"` // milliseconds
	MaxImageBytes        int64   `mapstructure:"max_image_bytes"`
	MaxImagePixels       int64   `mapstructure:"max_image_pixels"`
	CacheTTL             int     `mapstructure:"cache_ttl"` // milliseconds
	DefaultMode          string  `mapstructure:"default_mode"`
	ContractSchemaPath   string  `mapstructure:"contract_schema_path"`
}

// RegistryConfig points at the activity registry describing every task type.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig holds the health/metrics listener settings.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (g GarmentConfig) ImageFetchTimeoutDuration() time.Duration {
	return GetDuration(g.ImageFetchTimeout)
}

func (g GarmentConfig) CacheTTLDuration() time.Duration {
	return GetDuration(g.CacheTTL)
}
