package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/cowrite/cowrite/internal/metrics"
)

func TestWithMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := sdk.NewManualReader()
	provider := sdk.NewMeterProvider(sdk.WithReader(reader))

	m, err := metrics.NewHTTPMetricsWithMeter(provider.Meter("test"))
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(WithMetrics(m))
	engine.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var requests metricdata.Sum[int64]

	for _, metric := range rm.ScopeMetrics[0].Metrics {
		if metric.Name == "http.server.requests" {
			requests = metric.Data.(metricdata.Sum[int64])
		}
	}

	routes := map[string]int64{}

	for _, dp := range requests.DataPoints {
		route, _ := dp.Attributes.Value("http.route")
		routes[route.AsString()] += dp.Value
	}

	assert.Equal(t, map[string]int64{"/items/:id": 2, "unmatched": 1}, routes)
}
