package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/fulfillment-router/internal/infrastructure/ecommerce"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newMetricsRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("test"), true))
	router.POST("/webhooks/orders/create", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/api/v1/admin/reconciliation-runs/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return router, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func hasAttr(set attribute.Set, kv attribute.KeyValue) bool {
	v, ok := set.Value(kv.Key)
	return ok && v.Emit() == kv.Value.Emit()
}

func TestHTTPMetrics_RecordsRequests(t *testing.T) {
	router, reader := newMetricsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders/create", strings.NewReader(`{"id":1}`))
	req.Header.Set(ecommerce.ShopifyShopDomainHeader, "demo.myshopify.com")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/api/v1/admin/reconciliation-runs/abc", nil))

	metrics := collectMetrics(t, reader)

	total, ok := metrics["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, total.DataPoints, 2)

	var sawWebhook, sawRun bool
	for _, dp := range total.DataPoints {
		switch {
		case hasAttr(dp.Attributes, telemetry.AttrHTTPRoute.String("/webhooks/orders/create")):
			sawWebhook = true
			assert.True(t, hasAttr(dp.Attributes, telemetry.AttrShopDomain.String("demo.myshopify.com")))
			assert.True(t, hasAttr(dp.Attributes, telemetry.AttrHTTPStatusCode.Int(http.StatusOK)))
		case hasAttr(dp.Attributes, telemetry.AttrHTTPRoute.String("/api/v1/admin/reconciliation-runs/:id")):
			sawRun = true
			_, hasShop := dp.Attributes.Value(telemetry.AttrShopDomain)
			assert.False(t, hasShop)
			assert.True(t, hasAttr(dp.Attributes, telemetry.AttrHTTPStatusCode.Int(http.StatusNotFound)))
		}
		assert.Equal(t, int64(1), dp.Value)
	}
	assert.True(t, sawWebhook)
	assert.True(t, sawRun)

	duration, ok := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, duration.DataPoints, 2)

	assert.Contains(t, metrics, "http_server_request_size_bytes")
	assert.Contains(t, metrics, "http_server_response_size_bytes")

	active, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	router, reader := newMetricsRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	total := collectMetrics(t, reader)["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.Len(t, total.DataPoints, 1)
	assert.True(t, hasAttr(total.DataPoints[0].Attributes, telemetry.AttrHTTPRoute.String("unknown")))
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  HTTPMetricsConfig
	}{
		{"disabled flag", HTTPMetricsConfig{Enabled: false}},
		{"nil provider", HTTPMetricsConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestRouter(HTTPMetrics(tt.cfg)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
