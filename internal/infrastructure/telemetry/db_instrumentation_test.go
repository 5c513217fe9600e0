package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testRun struct {
	ID   uint `gorm:"primaryKey"`
	Shop string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&testRun{}))
	return db
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

func countByOperation(m metricdata.Metrics) map[string]int64 {
	out := map[string]int64{}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		return out
	}
	for _, dp := range sum.DataPoints {
		if v, found := dp.Attributes.Value(AttrDBOperation); found {
			out[v.AsString()] += dp.Value
		}
	}
	return out
}

func TestInstrumentDatabase_RecordsQueries(t *testing.T) {
	db := openTestDB(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	require.NoError(t, InstrumentDatabase(db, DBInstrumentationConfig{TracingEnabled: true}, mp.Meter("db"), zap.NewNop()))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&testRun{Shop: "demo.myshopify.com"}).Error)
	var runs []testRun
	require.NoError(t, db.WithContext(ctx).Find(&runs).Error)
	require.NoError(t, db.WithContext(ctx).Model(&testRun{}).Where("id = ?", runs[0].ID).Update("shop", "other").Error)

	metrics := collectMetrics(t, reader)
	counts := countByOperation(metrics["db_query_total"])
	assert.Equal(t, int64(1), counts["INSERT"])
	assert.Equal(t, int64(1), counts["SELECT"])
	assert.Equal(t, int64(1), counts["UPDATE"])
	assert.Contains(t, metrics, "db_query_duration_seconds")

	gauge, ok := metrics["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Equal(t, int64(1), gauge.DataPoints[0].Value)
}

func TestDBMetricsPlugin_SlowQuery(t *testing.T) {
	db := openTestDB(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	core, logs := observer.New(zapcore.WarnLevel)
	plugin, err := NewDBMetricsPlugin(mp.Meter("db"), DBInstrumentationConfig{}, zap.New(core))
	require.NoError(t, err)
	plugin.config.SlowQueryThreshold = -1 // every query counts as slow
	require.NoError(t, db.Use(plugin))

	var runs []testRun
	require.NoError(t, db.Find(&runs).Error)

	metrics := collectMetrics(t, reader)
	slow, ok := metrics["db_slow_query_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, slow.DataPoints)
	table, _ := slow.DataPoints[0].Attributes.Value(AttrDBTable)
	assert.Equal(t, "test_runs", table.AsString())
	assert.Equal(t, 1, logs.FilterMessage("Slow query").Len())
}

func TestNewDBMetricsPlugin_NilMeter(t *testing.T) {
	_, err := NewDBMetricsPlugin(nil, DBInstrumentationConfig{}, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestDetectOperationType(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM reconciliation_runs", "SELECT"},
		{"  insert into reconciliation_runs", "INSERT"},
		{"UPDATE reconciliation_runs SET", "UPDATE"},
		{"delete from reconciliation_runs", "DELETE"},
		{"CREATE TABLE x", "OTHER"},
		{"", "OTHER"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, detectOperationType(tt.sql))
		})
	}
}

func TestDBInstrumentationConfig_Defaults(t *testing.T) {
	cfg := DBInstrumentationConfig{}.withDefaults()
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.Positive(t, cfg.SlowQueryThreshold)
}
