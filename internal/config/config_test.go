package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: "debug"
database:
  driver: "sqlite"
  dsn: "file:qa.db"
  slow_threshold: "1s"
pagination:
  default_limit: 20
  max_limit: 50
kafka:
  brokers: "k1:9092,k2:9092"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:qa.db", cfg.Database.DSN)
	assert.Equal(t, time.Second, cfg.Database.SlowThreshold)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
	assert.Equal(t, "k1:9092,k2:9092", cfg.Kafka.Brokers)

	// 未配置的项使用默认值
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "qa-events", cfg.Kafka.Topic)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: "postgres"
  dsn: "host=localhost"
`)
	t.Setenv("QA_DATABASE_DSN", "host=db.internal")
	t.Setenv("QA_SERVER_PORT", "7000")
	t.Setenv("QA_PAGINATION_MAX_LIMIT", "500")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal", cfg.Database.DSN)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Pagination.MaxLimit)
}

func TestLoad_MissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("QA_DATABASE_DSN", "postgres://qa")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 1000, cfg.Pagination.MaxLimit)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver": `
database:
  driver: "oracle"
  dsn: "x"
`,
		"missing dsn": `
database:
  driver: "sqlite"
`,
		"default above max": `
database:
  dsn: "x"
pagination:
  default_limit: 200
  max_limit: 100
`,
		"rate limit without redis": `
database:
  dsn: "x"
rate_limit:
  enabled: true
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
