package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReconcilerConfig bounds how much work one reconciliation run may do
type ReconcilerConfig struct {
	// PageSize is the number of fulfillment orders requested per page
	PageSize int
	// MaxPages caps the pages read per order; reaching it marks the result truncated
	MaxPages int
	// MoveConcurrency is the number of move mutations in flight; 1 runs them sequentially
	MoveConcurrency int
}

// DefaultReconcilerConfig returns the default reconciler configuration
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		PageSize:        10,
		MaxPages:        10,
		MoveConcurrency: 1,
	}
}

func (c ReconcilerConfig) withDefaults() ReconcilerConfig {
	defaults := DefaultReconcilerConfig()
	if c.PageSize <= 0 {
		c.PageSize = defaults.PageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaults.MaxPages
	}
	if c.MoveConcurrency <= 0 {
		c.MoveConcurrency = defaults.MoveConcurrency
	}
	return c
}

// Reconciler brings every fulfillment order of an order to a target location.
// It holds no per-run state and is safe for concurrent use.
type Reconciler struct {
	platform integration.FulfillmentPlatform
	config   ReconcilerConfig
	metrics  *telemetry.FulfillmentMetrics
}

// NewReconciler creates a new Reconciler
func NewReconciler(platform integration.FulfillmentPlatform, config ReconcilerConfig) *Reconciler {
	return &Reconciler{
		platform: platform,
		config:   config.withDefaults(),
	}
}

// SetFulfillmentMetrics sets the metrics collector
func (r *Reconciler) SetFulfillmentMetrics(fm *telemetry.FulfillmentMetrics) {
	r.metrics = fm
}

// Reconcile fetches the order's fulfillment orders and moves each one that is not
// already at target. A fetch failure aborts the run and is returned wrapped in
// ErrFulfillmentFetchFailed; per fulfillment order failures are recorded as outcomes.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	shop, orderID string,
	target integration.TargetLocation,
) (*integration.ReconciliationResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "reconcile",
		telemetry.WithAttribute(telemetry.SpanAttrShopDomain, shop),
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
		telemetry.WithAttribute(telemetry.SpanAttrTargetLocation, target.String()),
	)
	defer span.End()

	orders, truncated, err := r.fetchAll(ctx, shop, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: %w", integration.ErrFulfillmentFetchFailed, err)
	}

	if len(orders) == 0 {
		logger.L(ctx).Info("Order has no fulfillment orders", zap.String("order_id", orderID))
		result := integration.NoopReconciliationResult()
		result.Truncated = truncated
		return result, nil
	}

	outcomes := r.evaluate(ctx, shop, orders, target)
	result := Aggregate(outcomes, truncated)

	telemetry.SetAttributes(span,
		"fulfillment_orders", len(orders),
		"moved", result.CountByStatus(integration.MoveStatusMoved),
		"failed", result.CountByStatus(integration.MoveStatusFailed),
	)
	if result.Success {
		telemetry.SetOK(span)
	}
	return result, nil
}

// fetchAll pages through the order's fulfillment orders until the platform reports
// no further page or MaxPages is reached.
func (r *Reconciler) fetchAll(ctx context.Context, shop, orderID string) ([]integration.FulfillmentOrder, bool, error) {
	var orders []integration.FulfillmentOrder
	page := integration.PageRequest{First: r.config.PageSize}

	for pageNum := 1; ; pageNum++ {
		p, err := r.platform.FetchFulfillmentOrders(ctx, shop, orderID, page)
		if err != nil {
			return nil, false, err
		}
		if !p.OrderFound {
			logger.L(ctx).Warn("Order not found on platform, nothing to reconcile",
				zap.String("order_id", orderID),
			)
			return nil, false, nil
		}
		orders = append(orders, p.Orders...)

		if !p.HasNextPage {
			return orders, false, nil
		}
		if pageNum >= r.config.MaxPages || p.EndCursor == "" {
			logger.L(ctx).Warn("Fulfillment order listing truncated",
				zap.String("order_id", orderID),
				zap.Int("pages", pageNum),
				zap.Int("fulfillment_orders", len(orders)),
			)
			return orders, true, nil
		}
		page.After = p.EndCursor
	}
}

// evaluate decides and applies the move for each fulfillment order.
// Outcomes are written by index so the slice always follows fetch order.
func (r *Reconciler) evaluate(
	ctx context.Context,
	shop string,
	orders []integration.FulfillmentOrder,
	target integration.TargetLocation,
) []integration.MoveOutcome {
	outcomes := make([]integration.MoveOutcome, len(orders))

	if r.config.MoveConcurrency <= 1 {
		for i, fo := range orders {
			outcomes[i] = r.reconcileOne(ctx, shop, fo, target)
		}
		return outcomes
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.config.MoveConcurrency)
	for i, fo := range orders {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, fo integration.FulfillmentOrder) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = r.reconcileOne(ctx, shop, fo, target)
		}(i, fo)
	}
	wg.Wait()
	return outcomes
}

func (r *Reconciler) reconcileOne(
	ctx context.Context,
	shop string,
	fo integration.FulfillmentOrder,
	target integration.TargetLocation,
) integration.MoveOutcome {
	outcome := integration.MoveOutcome{
		FulfillmentOrderID: fo.ID,
		PreviousLocationID: fo.AssignedLocationID,
		TargetLocationID:   target,
	}
	log := logger.L(ctx).With(
		zap.String("fulfillment_order_id", fo.ID),
		zap.String("target_location", target.String()),
	)

	switch {
	case fo.IsAt(target):
		outcome.Status = integration.MoveStatusSkipped
		log.Debug("Fulfillment order already at target")
	default:
		resp, err := r.platform.MoveFulfillmentOrder(ctx, shop, fo.ID, target)
		switch {
		case err != nil:
			outcome.Status = integration.MoveStatusFailed
			outcome.ErrorDetail = err.Error()
			log.Warn("Fulfillment order move failed", zap.Error(err))
		case len(resp.UserErrors) > 0:
			outcome.Status = integration.MoveStatusFailed
			outcome.ErrorDetail = integration.FirstUserErrorMessage(resp.UserErrors)
			log.Warn("Fulfillment order move rejected",
				zap.String("user_error", outcome.ErrorDetail),
				zap.Int("user_errors", len(resp.UserErrors)),
			)
		default:
			outcome.Status = integration.MoveStatusMoved
			outcome.MovedFulfillmentOrderID = resp.MovedFulfillmentOrderID
			log.Info("Fulfillment order moved",
				zap.String("moved_fulfillment_order_id", resp.MovedFulfillmentOrderID),
				zap.String("remaining_fulfillment_order_id", resp.RemainingFulfillmentOrderID),
			)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordMove(ctx, outcome.Status.String())
	}
	return outcome
}
