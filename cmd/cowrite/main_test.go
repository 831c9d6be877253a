package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/conf"
	"github.com/cowrite/cowrite/internal/metrics"
)

func validConfig(t *testing.T) conf.Config {
	t.Helper()

	cfg, err := conf.Load()
	require.NoError(t, err)

	cfg.Auth.SecretKey = "secret"

	return cfg
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*conf.Config)
		want   []string
	}{
		{name: "defaults", mutate: func(*conf.Config) {}},
		{
			name:   "bad port",
			mutate: func(c *conf.Config) { c.APIServer.Port = 0 },
			want:   []string{"server.port must be between 1 and 65535"},
		},
		{
			name: "cors without origins",
			mutate: func(c *conf.Config) {
				c.APIServer.CORS.Enabled = true
				c.APIServer.CORS.AllowedOrigins = nil
			},
			want: []string{"server.cors.allowed_origins cannot be empty when CORS is enabled"},
		},
		{
			name:   "empty secret",
			mutate: func(c *conf.Config) { c.Auth.SecretKey = "" },
			want:   []string{"auth.secret_key is empty, tokens will not survive a restart"},
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *conf.Config) {
				c.Metrics.Enabled = true
				c.Metrics.Exporter.Type = metrics.ExporterOTLPHTTP
			},
			want: []string{"metrics.exporter.endpoint cannot be empty for otlphttp"},
		},
		{
			name: "several problems at once",
			mutate: func(c *conf.Config) {
				c.APIServer.Port = 70000
				c.Metrics.Enabled = true
				c.Metrics.Exporter.Type = "statsd"
			},
			want: []string{
				"server.port must be between 1 and 65535",
				`metrics.exporter.type "statsd" is not supported`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := validateConfig(cfg)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}

			var merr *multierror.Error
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.want, lo.Map(merr.Errors, func(e error, _ int) string { return e.Error() }))
			assert.Contains(t, err.Error(), "configuration is invalid:")
		})
	}
}

func TestConfigValue(t *testing.T) {
	cfg := validConfig(t)
	cfg.APIServer.Debug = true

	value, ok := configValue(cfg, "server.port")
	require.True(t, ok)
	assert.Equal(t, "8090", value)

	value, ok = configValue(cfg, "server.debug")
	require.True(t, ok)
	assert.Equal(t, "true", value)

	_, ok = configValue(cfg, "server.unknown")
	assert.False(t, ok)
}

func TestRenderConfig(t *testing.T) {
	cfg := validConfig(t)

	out, err := renderConfig(cfg, "json")
	require.NoError(t, err)
	assert.Contains(t, out, "request_timeout")

	out, err = renderConfig(cfg, "yml")
	require.NoError(t, err)
	assert.Contains(t, out, "dialect")

	_, err = renderConfig(cfg, "toml")
	require.Error(t, err)
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cowrite.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9100\nauth:\n  secret_key: s3cret\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, runConfig(&out, []string{"get", "server.port", "-c", path}))
	assert.Equal(t, "9100\n", out.String())

	out.Reset()
	require.NoError(t, runConfig(&out, []string{"validate", "--config", path}))
	assert.Equal(t, "configuration ok\n", out.String())

	out.Reset()
	require.NoError(t, runConfig(&out, []string{"preview", "-c", path, "-f", "json"}))
	assert.Contains(t, out.String(), "9100")

	err := runConfig(&out, []string{"get", "-c", path})
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "server.port")

	err = runConfig(&out, []string{"get", "nope", "-c", path})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)

	require.ErrorIs(t, runConfig(&out, nil), errUsage)
	require.ErrorIs(t, runConfig(&out, []string{"edit"}), errUsage)
	require.ErrorIs(t, runConfig(&out, []string{"get", "--bogus"}), errUsage)
}

func TestLookup(t *testing.T) {
	cmd, ok := lookup("-v")
	require.True(t, ok)
	assert.Equal(t, "version", cmd.name)

	cmd, ok = lookup("config")
	require.True(t, ok)
	assert.Equal(t, "config", cmd.name)

	_, ok = lookup("migrate")
	assert.False(t, ok)

	var out bytes.Buffer
	help, _ := lookup("help")
	require.NoError(t, help.run(&out, nil))

	for _, c := range commands() {
		assert.Contains(t, out.String(), c.name)
	}
}
