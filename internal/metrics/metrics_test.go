package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(Config{})
	require.NoError(t, err)
	assert.Nil(t, provider)

	provider, err = NewProvider(Config{Enabled: true, Exporter: ExporterConfig{Type: ExporterStdout}})
	require.NoError(t, err)
	require.NotNil(t, provider)
	require.NoError(t, provider.Shutdown(context.Background()))

	for _, typ := range []string{ExporterOTLPHTTP, ExporterOTLPGRPC} {
		provider, err = NewProvider(Config{
			Enabled:  true,
			Exporter: ExporterConfig{Type: typ, Endpoint: "127.0.0.1:4317", Insecure: true},
		})
		require.NoError(t, err, typ)
		require.NotNil(t, provider, typ)

		// Nothing listens on the endpoint; only the exporter construction matters.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		_ = provider.Shutdown(shutdownCtx)

		cancel()
	}

	_, err = NewProvider(Config{Enabled: true, Exporter: ExporterConfig{Type: "statsd"}})
	require.Error(t, err)

	require.NoError(t, SetupMetrics(nil, "cowrite"))
}

func TestHTTPMetrics_Record(t *testing.T) {
	ctx := context.Background()
	reader := sdk.NewManualReader()
	provider := sdk.NewMeterProvider(sdk.WithReader(reader))

	m, err := NewHTTPMetricsWithMeter(provider.Meter("test"))
	require.NoError(t, err)

	m.Record(ctx, "GET", "/api/organization/:id", 200, 3*time.Millisecond)
	m.Record(ctx, "GET", "/api/organization/:id", 200, 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]metricdata.Aggregation{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = m.Data
	}

	sum, ok := names["http.server.requests"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	hist, ok := names["http.server.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}
