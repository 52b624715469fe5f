package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: ${TEST_ZEEBE}
database:
  postgres:
    host: db
    database: garment_designs
    user: garment
  redis:
    address: cache:6379
workers:
  design-garment:
    enabled: false
  create-design-record:
    timeout: 2500
`

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_ZEEBE", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "garment-workers", cfg.App.Name)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, 1.4, cfg.Garment.AspectRatioThreshold)
	assert.Equal(t, 80, cfg.Garment.ColorGrid)
	assert.Equal(t, int64(10<<20), cfg.Garment.MaxImageBytes)
	assert.Equal(t, int64(40_000_000), cfg.Garment.MaxImagePixels)
	assert.Equal(t, time.Hour, cfg.Garment.CacheTTLDuration())
	assert.Equal(t, 5*time.Second, cfg.Garment.ImageFetchTimeoutDuration())
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "configs/activity-registry.json", cfg.Registry.Path)
}

func TestLoadFromFile_Workers(t *testing.T) {
	t.Setenv("TEST_ZEEBE", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.False(t, IsWorkerEnabled(cfg, "design-garment"))
	assert.True(t, IsWorkerEnabled(cfg, "extract-garment-attributes"))

	w := GetWorkerConfig(cfg, "create-design-record")
	assert.Equal(t, 2500, w.Timeout)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)

	assert.Equal(t, WorkerConfig{Enabled: true, MaxJobsActive: 5, Timeout: 30000, MaxRetries: 3},
		GetWorkerConfig(cfg, "unknown-task"))
}

func TestLoadFromFile_EnvFallbacks(t *testing.T) {
	t.Setenv("TEST_ZEEBE", "")
	t.Setenv("ZEEBE_ADDRESS", "gateway:26500")
	t.Setenv("REDIS_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "gateway:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Redis.Password)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Setenv("ZEEBE_ADDRESS", "")
	_, err := LoadFromFile(writeConfig(t, "database:\n  postgres:\n    host: db\n"))
	assert.ErrorContains(t, err, "camunda.broker_address is required")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=require", p.GetDSN())
}

func TestLoadFromFile_OptionalSinks(t *testing.T) {
	t.Setenv("TEST_ZEEBE", "zeebe:26500")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.False(t, cfg.Database.Elasticsearch.Enabled())
	assert.Equal(t, "garment-designs", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, "eu-west-1", cfg.Events.Region)
	assert.Empty(t, cfg.Events.DesignTopicARN)

	cfg, err = LoadFromFile(writeConfig(t, `
camunda:
  broker_address: zeebe:26500
database:
  elasticsearch:
    addresses:
      - http://es-1:9200
    index: designs-v2
events:
  design_topic_arn: arn:aws:sns:eu-west-1:123456789012:designs
`))
	require.NoError(t, err)
	assert.True(t, cfg.Database.Elasticsearch.Enabled())
	assert.Equal(t, "designs-v2", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:designs", cfg.Events.DesignTopicARN)
}
