package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/metrics"
	"github.com/cowrite/cowrite/internal/pkg/xcache"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.APIServer.Port)
	assert.Equal(t, "cowrite", cfg.APIServer.Name)
	assert.Equal(t, 30*time.Second, cfg.APIServer.RequestTimeout)
	assert.Equal(t, "CW-Trace-Id", cfg.APIServer.Trace.TraceHeader)
	assert.Equal(t, "sqlite3", cfg.DB.Dialect)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, xcache.ModeMemory, cfg.Cache.Mode)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, metrics.ExporterStdout, cfg.Metrics.Exporter.Type)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COWRITE_SERVER_PORT", "9000")
	t.Setenv("COWRITE_DB_DIALECT", "postgres")
	t.Setenv("COWRITE_AUTH_TOKEN_TTL", "2h")
	t.Setenv("COWRITE_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.APIServer.Port)
	assert.Equal(t, "postgres", cfg.DB.Dialect)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.APIServer.CORS.AllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  port: 8100
  cors:
    enabled: true
db:
  dialect: mysql
  dsn: "u:p@tcp(localhost:3306)/cowrite"
cache:
  mode: redis
  redis:
    addr: localhost:6379
metrics:
  enabled: true
  exporter:
    type: otlphttp
    endpoint: localhost:4318
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8100, cfg.APIServer.Port)
	assert.True(t, cfg.APIServer.CORS.Enabled)
	assert.NotEmpty(t, cfg.APIServer.CORS.AllowedMethods)
	assert.Equal(t, "mysql", cfg.DB.Dialect)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, metrics.ExporterOTLPHTTP, cfg.Metrics.Exporter.Type)
	assert.Equal(t, "cowrite", cfg.Log.Name)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}
