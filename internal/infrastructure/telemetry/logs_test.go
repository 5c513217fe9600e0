package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingExporter captures exported log records in memory.
type recordingExporter struct {
	records []sdklog.Record
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func newRecordingProvider(t *testing.T) (*LoggerProvider, *recordingExporter) {
	t.Helper()
	exp := &recordingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp)))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &LoggerProvider{provider: provider, logger: zap.NewNop()}, exp
}

func TestNewZapOTELCore_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())

	core := NewZapOTELCore("fulfillment-router", lp, zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestNewZapOTELCore_FiltersByLevel(t *testing.T) {
	lp, exp := newRecordingProvider(t)

	core := NewZapOTELCore("fulfillment-router", lp, zapcore.WarnLevel)
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))

	log := zap.New(core).With(zap.String("shop_domain", "demo.myshopify.com"))
	log.Info("dropped")
	log.Warn("reconciliation truncated")

	require.Len(t, exp.records, 1)
	assert.Equal(t, "reconciliation truncated", exp.records[0].Body().AsString())
}

func TestNewBridgedLogger_WritesToBoth(t *testing.T) {
	lp, exp := newRecordingProvider(t)
	baseCore, observed := observer.New(zapcore.InfoLevel)

	log := NewBridgedLogger(zap.New(baseCore), NewZapOTELCore("fulfillment-router", lp, zapcore.InfoLevel))
	log.Info("webhook received", zap.String("topic", "orders/create"))

	assert.Equal(t, 1, observed.FilterMessage("webhook received").Len())
	require.Len(t, exp.records, 1)
	assert.Equal(t, "webhook received", exp.records[0].Body().AsString())
}
