// Package conf loads the server configuration from config.yml and COWRITE_*
// environment variables.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/metrics"
	"github.com/cowrite/cowrite/internal/pkg/xcache"
	"github.com/cowrite/cowrite/internal/server"
	"github.com/cowrite/cowrite/internal/server/biz"
	"github.com/cowrite/cowrite/internal/server/db"
)

const envPrefix = "COWRITE"

// Config is provided to fx section by section.
type Config struct {
	fx.Out `yaml:"-" json:"-"`

	APIServer server.Config  `conf:"server" yaml:"server" json:"server"`
	DB        db.Config      `conf:"db" yaml:"db" json:"db"`
	Log       log.Config     `conf:"log" yaml:"log" json:"log"`
	Cache     xcache.Config  `conf:"cache" yaml:"cache" json:"cache"`
	Auth      biz.AuthConfig `conf:"auth" yaml:"auth" json:"auth"`
	Metrics   metrics.Config `conf:"metrics" yaml:"metrics" json:"metrics"`
}

// Load reads config.yml from the working directory, ./conf or /etc/cowrite.
// A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/cowrite/")

	return load(v)
}

// LoadFile reads the configuration from path.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so environment variables can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.name", "cowrite")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.trace.trace_header", "CW-Trace-Id")
	v.SetDefault("server.trace.request_header", "CW-Request-Id")
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors.allowed_headers", []string{"Content-Type", "Authorization", "CW-Trace-Id", "CW-Request-Id"})
	v.SetDefault("server.cors.exposed_headers", []string{"CW-Trace-Id", "CW-Request-Id"})
	v.SetDefault("server.cors.allow_credentials", false)
	v.SetDefault("server.cors.max_age", 12*time.Hour)

	v.SetDefault("db.dialect", "sqlite3")
	v.SetDefault("db.dsn", "file:cowrite.db?cache=shared&_pragma=foreign_keys(1)")

	v.SetDefault("log.name", "cowrite")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output", "stdio")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.file.path", "logs/cowrite.log")
	v.SetDefault("log.file.max_size", 100)
	v.SetDefault("log.file.max_age", 30)
	v.SetDefault("log.file.max_backups", 10)
	v.SetDefault("log.file.local_time", true)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("cache.mode", xcache.ModeMemory)
	v.SetDefault("cache.key_prefix", "cowrite:")
	v.SetDefault("cache.memory.expiration", 5*time.Minute)
	v.SetDefault("cache.memory.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.redis.addr", "")
	v.SetDefault("cache.redis.url", "")
	v.SetDefault("cache.redis.username", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.tls", false)
	v.SetDefault("cache.redis.tls_insecure_skip_verify", false)
	v.SetDefault("cache.redis.expiration", 30*time.Minute)

	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "cowrite")
	v.SetDefault("metrics.exporter.type", metrics.ExporterStdout)
	v.SetDefault("metrics.exporter.endpoint", "")
	v.SetDefault("metrics.exporter.insecure", false)
	v.SetDefault("metrics.interval", time.Minute)
}
