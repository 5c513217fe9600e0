package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// FulfillmentMetrics provides the business metrics of the fulfillment router.
// It tracks inbound webhooks, reconciliation runs, fulfillment order moves
// and Admin API latency.
type FulfillmentMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	webhooksReceivedTotal  *Counter
	webhooksDuplicateTotal *Counter
	runsTotal              *Counter
	movesTotal             *Counter
	gatewayRequestsTotal   *Counter

	runDuration     *Histogram
	gatewayDuration *Histogram
}

// FulfillmentMetricsConfig holds configuration for fulfillment metrics.
type FulfillmentMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewFulfillmentMetrics creates a new FulfillmentMetrics instance.
func NewFulfillmentMetrics(cfg FulfillmentMetricsConfig) (*FulfillmentMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fm := &FulfillmentMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	fm.webhooksReceivedTotal, err = NewCounter(
		cfg.Meter,
		"fr_webhooks_received_total",
		"Total number of webhooks received",
		"{webhooks}",
	)
	if err != nil {
		return nil, err
	}

	fm.webhooksDuplicateTotal, err = NewCounter(
		cfg.Meter,
		"fr_webhooks_duplicate_total",
		"Total number of redelivered webhooks skipped as already processed",
		"{webhooks}",
	)
	if err != nil {
		return nil, err
	}

	fm.runsTotal, err = NewCounter(
		cfg.Meter,
		"fr_reconciliation_runs_total",
		"Total number of reconciliation runs",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	fm.movesTotal, err = NewCounter(
		cfg.Meter,
		"fr_fulfillment_order_moves_total",
		"Total number of evaluated fulfillment orders by outcome",
		"{fulfillment_orders}",
	)
	if err != nil {
		return nil, err
	}

	fm.gatewayRequestsTotal, err = NewCounter(
		cfg.Meter,
		"fr_gateway_requests_total",
		"Total number of Admin GraphQL requests",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	fm.runDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "fr_reconciliation_duration_seconds",
		Description: "Reconciliation run duration",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	fm.gatewayDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "fr_gateway_request_duration_seconds",
		Description: "Admin GraphQL request duration",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return fm, nil
}

// =============================================================================
// Webhook Metrics
// =============================================================================

// RecordWebhookReceived records an inbound webhook delivery.
func (fm *FulfillmentMetrics) RecordWebhookReceived(ctx context.Context, topic, mode string) {
	fm.webhooksReceivedTotal.Inc(ctx,
		AttrWebhookTopic.String(topic),
		AttrPayloadMode.String(mode),
	)
}

// RecordWebhookDuplicate records a redelivery that was skipped.
func (fm *FulfillmentMetrics) RecordWebhookDuplicate(ctx context.Context, topic string) {
	fm.webhooksDuplicateTotal.Inc(ctx, AttrWebhookTopic.String(topic))
}

// =============================================================================
// Reconciliation Metrics
// =============================================================================

// RecordRun records a finished reconciliation run and its duration.
func (fm *FulfillmentMetrics) RecordRun(ctx context.Context, trigger, status string, success bool, d time.Duration) {
	attrs := []attribute.KeyValue{
		AttrRunTrigger.String(trigger),
		AttrRunStatus.String(status),
		AttrRunSuccess.Bool(success),
	}
	fm.runsTotal.Inc(ctx, attrs...)
	fm.runDuration.RecordDuration(ctx, d, attrs...)
}

// RecordMove records the outcome of one evaluated fulfillment order.
func (fm *FulfillmentMetrics) RecordMove(ctx context.Context, status string) {
	fm.movesTotal.Inc(ctx, AttrMoveStatus.String(status))
}

// =============================================================================
// Gateway Metrics
// =============================================================================

// Gateway request outcomes for metrics labeling.
const (
	GatewayOutcomeOK             = "ok"
	GatewayOutcomeGraphQLError   = "graphql_error"
	GatewayOutcomeTransportError = "transport_error"
)

// RecordGatewayRequest records one Admin GraphQL round trip.
func (fm *FulfillmentMetrics) RecordGatewayRequest(ctx context.Context, outcome string, d time.Duration) {
	fm.gatewayRequestsTotal.Inc(ctx, AttrGatewayOutcome.String(outcome))
	fm.gatewayDuration.RecordDuration(ctx, d, AttrGatewayOutcome.String(outcome))
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewFulfillmentMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
