package metrics

import "time"

const (
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlphttp"
	ExporterOTLPGRPC = "otlpgrpc"
)

type Config struct {
	Enabled     bool           `conf:"enabled" yaml:"enabled" json:"enabled"`
	ServiceName string         `conf:"service_name" yaml:"service_name" json:"service_name"`
	Exporter    ExporterConfig `conf:"exporter" yaml:"exporter" json:"exporter"`
	// Interval between two exports, one minute when zero.
	Interval time.Duration `conf:"interval" yaml:"interval" json:"interval"`
}

type ExporterConfig struct {
	Type     string `conf:"type" yaml:"type" json:"type"`
	Endpoint string `conf:"endpoint" yaml:"endpoint" json:"endpoint"`
	Insecure bool   `conf:"insecure" yaml:"insecure" json:"insecure"`
}
