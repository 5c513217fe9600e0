package integration

import (
	"context"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/domain/shared"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrInvalidFulfillmentMode is returned by manual runs whose mode the location policy does not know
var ErrInvalidFulfillmentMode = shared.NewDomainError("INVALID_FULFILLMENT_MODE", "Unknown fulfillment mode")

// OrderWebhookService handles order created webhooks and manual reconciliation requests.
// Both paths share the same resolve, reconcile and aggregate pipeline.
type OrderWebhookService struct {
	policy     *integration.LocationPolicy
	reconciler *Reconciler

	runs           integration.ReconciliationRunRepository
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	archive        integration.PayloadArchive
	metrics        *telemetry.FulfillmentMetrics
}

// OrderWebhookServiceOption configures an OrderWebhookService
type OrderWebhookServiceOption func(*OrderWebhookService)

// WithRunRepository enables the reconciliation run journal
func WithRunRepository(repo integration.ReconciliationRunRepository) OrderWebhookServiceOption {
	return func(s *OrderWebhookService) {
		s.runs = repo
	}
}

// WithIdempotencyStore enables delivery de-duplication by webhook ID
func WithIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) OrderWebhookServiceOption {
	return func(s *OrderWebhookService) {
		if !cfg.Enabled {
			return
		}
		s.idempotency = store
		s.idempotencyTTL = cfg.TTL
	}
}

// WithPayloadArchive enables raw payload archiving
func WithPayloadArchive(archive integration.PayloadArchive) OrderWebhookServiceOption {
	return func(s *OrderWebhookService) {
		s.archive = archive
	}
}

// WithFulfillmentMetrics sets the metrics collector
func WithFulfillmentMetrics(fm *telemetry.FulfillmentMetrics) OrderWebhookServiceOption {
	return func(s *OrderWebhookService) {
		s.metrics = fm
	}
}

// NewOrderWebhookService creates a new OrderWebhookService
func NewOrderWebhookService(
	policy *integration.LocationPolicy,
	reconciler *Reconciler,
	opts ...OrderWebhookServiceOption,
) *OrderWebhookService {
	s := &OrderWebhookService{
		policy:         policy,
		reconciler:     reconciler,
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------------------------------
// Webhook Path
// ---------------------------------------------------------------------------

// HandleOrderCreated normalizes an order webhook and reconciles its fulfillment orders.
//
// Errors:
//   - ErrOrderEventInvalidPayload, ErrOrderEventMissingOrderID: the body is unusable
//   - ErrOrderEventMissingShop: no shop to act on
//   - ErrFulfillmentFetchFailed: the run was aborted
func (s *OrderWebhookService) HandleOrderCreated(
	ctx context.Context,
	body []byte,
	delivery integration.WebhookDelivery,
) (*ReconcileResult, error) {
	if delivery.ID != "" {
		ctx = logger.WithWebhookID(ctx, delivery.ID)
	}
	if s.metrics != nil {
		s.metrics.RecordWebhookReceived(ctx, delivery.Topic, delivery.Mode.String())
	}

	if s.alreadyProcessed(ctx, delivery.ID) {
		logger.L(ctx).Info("Webhook delivery already processed, skipping")
		if s.metrics != nil {
			s.metrics.RecordWebhookDuplicate(ctx, delivery.Topic)
		}
		result := emptyReconcileResult()
		result.Duplicate = true
		return result, nil
	}

	// redeliveries of processed ids were archived on their first attempt
	s.archivePayload(ctx, delivery, body)

	event, err := NormalizeOrderEvent(body, delivery)
	if err != nil {
		logger.L(ctx).Warn("Rejected order webhook", zap.Error(err))
		return nil, err
	}
	ctx = logger.WithShopDomain(ctx, event.ShopDomain)

	logger.L(ctx).Info("Order webhook received",
		zap.String("order_id", event.OrderID),
		zap.String("order_name", event.OrderName),
		zap.String("total_price", event.TotalPrice.String()),
		zap.Stringp("fulfillment_mode", event.FulfillmentModeHint),
	)

	result, err := s.reconcile(ctx, event.ShopDomain, event.OrderID, event.FulfillmentModeHint,
		integration.RunTriggerWebhook, delivery.ID)
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.markProcessed(ctx, delivery.ID)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Manual Path
// ---------------------------------------------------------------------------

// ReconcileOrder runs a manual reconciliation for an order.
// Unlike the webhook path an unknown fulfillment mode is rejected.
func (s *OrderWebhookService) ReconcileOrder(ctx context.Context, req ReconcileOrderRequest) (*ReconcileResult, error) {
	mode := req.FulfillmentMode
	if _, ok := s.policy.Resolve(&mode); !ok {
		return nil, ErrInvalidFulfillmentMode
	}
	ctx = logger.WithShopDomain(ctx, req.Shop)

	logger.L(ctx).Info("Manual reconciliation requested",
		zap.String("order_id", req.OrderID),
		zap.String("fulfillment_mode", mode),
		zap.String("requested_by", logger.GetUserID(ctx)),
	)
	return s.reconcile(ctx, req.Shop, integration.OrderGlobalID(req.OrderID), &mode,
		integration.RunTriggerManual, "")
}

// ---------------------------------------------------------------------------
// Shared Pipeline
// ---------------------------------------------------------------------------

func (s *OrderWebhookService) reconcile(
	ctx context.Context,
	shop, orderID string,
	hint *string,
	trigger integration.RunTrigger,
	webhookID string,
) (*ReconcileResult, error) {
	target, ok := s.policy.Resolve(hint)
	if !ok {
		logger.L(ctx).Info("No recognized fulfillment mode, nothing to reconcile",
			zap.String("order_id", orderID),
		)
		result := emptyReconcileResult()
		result.NothingToDo = true
		return result, nil
	}

	run, err := integration.NewReconciliationRun(shop, orderID, trigger)
	if err != nil {
		return nil, err
	}
	run.WebhookID = webhookID
	run.SetTarget(integration.FulfillmentMode(*hint), target)

	var reconciled *integration.ReconciliationResult
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationReconcile, shop), func(ctx context.Context) {
		reconciled, err = s.reconciler.Reconcile(ctx, shop, orderID, target)
	})
	if err != nil {
		logger.L(ctx).Error("Reconciliation aborted",
			zap.String("order_id", orderID),
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
		run.Abort(err)
		s.recordRun(ctx, run)
		return nil, err
	}

	run.Complete(reconciled)
	s.recordRun(ctx, run)

	logger.L(ctx).Info("Reconciliation completed",
		zap.String("order_id", orderID),
		zap.String("run_id", run.ID.String()),
		zap.Bool("success", reconciled.Success),
		zap.Bool("truncated", reconciled.Truncated),
		zap.Int("moved", reconciled.CountByStatus(integration.MoveStatusMoved)),
		zap.Int("skipped", reconciled.CountByStatus(integration.MoveStatusSkipped)),
		zap.Int("failed", reconciled.CountByStatus(integration.MoveStatusFailed)),
	)

	runID := run.ID
	return &ReconcileResult{
		Success:     reconciled.Success,
		MoveResults: ToMoveOutcomeResponses(reconciled.Outcomes),
		Truncated:   reconciled.Truncated,
		RunID:       &runID,
	}, nil
}

// recordRun journals the run. Failures are logged and never change the outcome.
func (s *OrderWebhookService) recordRun(ctx context.Context, run *integration.ReconciliationRun) {
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, run.Trigger.String(), string(run.Status), run.Success, run.Duration())
	}
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		logger.L(ctx).Error("Failed to record reconciliation run",
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *OrderWebhookService) archivePayload(ctx context.Context, delivery integration.WebhookDelivery, body []byte) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.Store(ctx, delivery, body)
	if err != nil {
		logger.L(ctx).Warn("Failed to archive webhook payload", zap.Error(err))
		return
	}
	if key != "" {
		logger.L(ctx).Debug("Webhook payload archived", zap.String("key", key))
	}
}

func (s *OrderWebhookService) alreadyProcessed(ctx context.Context, webhookID string) bool {
	if s.idempotency == nil || webhookID == "" {
		return false
	}
	processed, err := s.idempotency.IsProcessed(ctx, webhookID)
	if err != nil {
		logger.L(ctx).Warn("Idempotency check failed, processing delivery", zap.Error(err))
		return false
	}
	return processed
}

func (s *OrderWebhookService) markProcessed(ctx context.Context, webhookID string) {
	if s.idempotency == nil || webhookID == "" {
		return
	}
	if _, err := s.idempotency.MarkProcessed(context.WithoutCancel(ctx), webhookID, s.idempotencyTTL); err != nil {
		logger.L(ctx).Warn("Failed to mark webhook delivery processed", zap.Error(err))
	}
}
