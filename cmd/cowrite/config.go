package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andreazorzetto/yh/highlight"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cowrite/cowrite/conf"
	"github.com/cowrite/cowrite/internal/metrics"
)

// configKey is a dotted key accepted by `config get`.
type configKey struct {
	key   string
	about string
	get   func(conf.Config) any
}

var configKeys = []configKey{
	{"server.port", "listen port", func(c conf.Config) any { return c.APIServer.Port }},
	{"server.name", "server name", func(c conf.Config) any { return c.APIServer.Name }},
	{"server.debug", "debug mode", func(c conf.Config) any { return c.APIServer.Debug }},
	{"server.request_timeout", "per request deadline", func(c conf.Config) any { return c.APIServer.RequestTimeout }},
	{"db.dialect", "sqlite3, postgres or mysql", func(c conf.Config) any { return c.DB.Dialect }},
	{"db.dsn", "database DSN", func(c conf.Config) any { return c.DB.DSN }},
	{"cache.mode", "memory, redis or two-level", func(c conf.Config) any { return c.Cache.Mode }},
	{"metrics.enabled", "metrics export switch", func(c conf.Config) any { return c.Metrics.Enabled }},
	{"metrics.exporter.type", "stdout, otlphttp or otlpgrpc", func(c conf.Config) any { return c.Metrics.Exporter.Type }},
}

// runConfig dispatches `cowrite config <preview|validate|get>`.
func runConfig(out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cowrite config preview|validate|get [-c file]", errUsage)
	}

	verb := args[0]

	flags := pflag.NewFlagSet("config "+verb, pflag.ContinueOnError)
	flags.SetOutput(out)
	file := flags.StringP("config", "c", "", "configuration file to read")
	format := flags.StringP("format", "f", "yml", "preview format, yml or json")

	if err := flags.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	var run func(io.Writer, conf.Config) error

	switch verb {
	case "preview":
		run = func(out io.Writer, cfg conf.Config) error {
			rendered, err := renderConfig(cfg, *format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, rendered)

			return err
		}
	case "validate":
		run = func(out io.Writer, cfg conf.Config) error {
			if err := validateConfig(cfg); err != nil {
				return err
			}

			_, err := fmt.Fprintln(out, "configuration ok")

			return err
		}
	case "get":
		if flags.NArg() != 1 {
			return fmt.Errorf("%w: cowrite config get <key>\n%s", errUsage, keyList())
		}

		run = func(out io.Writer, cfg conf.Config) error {
			value, ok := configValue(cfg, flags.Arg(0))
			if !ok {
				return fmt.Errorf("unknown key %q\n%s", flags.Arg(0), keyList())
			}

			_, err := fmt.Fprintln(out, value)

			return err
		}
	default:
		return fmt.Errorf("%w: unknown config command %q", errUsage, verb)
	}

	cfg, err := loadConfig(*file)
	if err != nil {
		return err
	}

	return run(out, cfg)
}

// loadConfig reads path, or searches the default locations when path is empty.
func loadConfig(path string) (conf.Config, error) {
	if path == "" {
		return conf.Load()
	}

	return conf.LoadFile(path)
}

func renderConfig(cfg conf.Config, format string) (string, error) {
	switch format {
	case "json":
		b, err := prettyjson.Marshal(cfg)
		if err != nil {
			return "", err
		}

		return string(b), nil
	case "yml", "yaml":
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return "", err
		}

		return highlight.Highlight(bytes.NewBuffer(b))
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// validateConfig reports every problem it finds, not just the first.
func validateConfig(cfg conf.Config) error {
	var result *multierror.Error

	check := func(ok bool, msg string) {
		if !ok {
			result = multierror.Append(result, errors.New(msg))
		}
	}

	check(cfg.APIServer.Port > 0 && cfg.APIServer.Port <= 65535, "server.port must be between 1 and 65535")
	check(cfg.DB.DSN != "", "db.dsn cannot be empty")
	check(cfg.Log.Name != "", "log.name cannot be empty")
	check(!cfg.APIServer.CORS.Enabled || len(cfg.APIServer.CORS.AllowedOrigins) > 0,
		"server.cors.allowed_origins cannot be empty when CORS is enabled")
	check(cfg.Auth.SecretKey != "", "auth.secret_key is empty, tokens will not survive a restart")

	if cfg.Metrics.Enabled {
		switch typ := cfg.Metrics.Exporter.Type; typ {
		case "", metrics.ExporterStdout:
		case metrics.ExporterOTLPHTTP, metrics.ExporterOTLPGRPC:
			check(cfg.Metrics.Exporter.Endpoint != "", "metrics.exporter.endpoint cannot be empty for "+typ)
		default:
			check(false, fmt.Sprintf("metrics.exporter.type %q is not supported", typ))
		}
	}

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			lines := make([]string, 0, len(errs)+1)
			lines = append(lines, "configuration is invalid:")

			for _, err := range errs {
				lines = append(lines, "  - "+err.Error())
			}

			return strings.Join(lines, "\n")
		}
	}

	return result.ErrorOrNil()
}

func configValue(cfg conf.Config, key string) (string, bool) {
	for _, k := range configKeys {
		if k.key == key {
			return cast.ToString(k.get(cfg)), true
		}
	}

	return "", false
}

func keyList() string {
	var b strings.Builder

	b.WriteString("keys:")

	for _, k := range configKeys {
		fmt.Fprintf(&b, "\n  %-24s %s", k.key, k.about)
	}

	return b.String()
}
