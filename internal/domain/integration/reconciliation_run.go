package integration

import (
	"context"
	"errors"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/shared"
	"github.com/google/uuid"
)

// Reconciliation run errors
var (
	ErrRunNotFound       = shared.NewDomainError("RUN_NOT_FOUND", "Reconciliation run not found")
	ErrRunInvalidShop    = errors.New("integration: reconciliation run requires a shop domain")
	ErrRunInvalidOrderID = errors.New("integration: reconciliation run requires an order ID")
	ErrRunInvalidTrigger = errors.New("integration: invalid reconciliation run trigger")
)

// ---------------------------------------------------------------------------
// RunTrigger
// ---------------------------------------------------------------------------

// RunTrigger identifies what started a reconciliation run
type RunTrigger string

const (
	// RunTriggerWebhook is a run started by an order created webhook
	RunTriggerWebhook RunTrigger = "WEBHOOK"
	// RunTriggerManual is a run started through the admin API
	RunTriggerManual RunTrigger = "MANUAL"
)

// IsValid returns true if the trigger is valid
func (t RunTrigger) IsValid() bool {
	return t == RunTriggerWebhook || t == RunTriggerManual
}

// String returns the string representation of RunTrigger
func (t RunTrigger) String() string {
	return string(t)
}

// RunStatus is the state of a reconciliation run
type RunStatus string

const (
	// RunStatusRunning means the run has started and not finished
	RunStatusRunning RunStatus = "RUNNING"
	// RunStatusCompleted means every fulfillment order was evaluated
	RunStatusCompleted RunStatus = "COMPLETED"
	// RunStatusAborted means the fulfillment orders could not be fetched
	RunStatusAborted RunStatus = "ABORTED"
)

// ---------------------------------------------------------------------------
// ReconciliationRun
// ---------------------------------------------------------------------------

// ReconciliationRun is the journal entry of one reconciliation of an order
type ReconciliationRun struct {
	shared.BaseEntity
	ShopDomain     string
	OrderID        string
	WebhookID      string
	Trigger        RunTrigger
	Mode           FulfillmentMode
	TargetLocation TargetLocation
	Status         RunStatus
	Success        bool
	Truncated      bool
	ErrorMessage   string
	Outcomes       []MoveOutcome
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// SetTarget records the resolved mode and location of the run
func (r *ReconciliationRun) SetTarget(mode FulfillmentMode, location TargetLocation) {
	r.Mode = mode
	r.TargetLocation = location
}

// NewReconciliationRun creates a new run for an order
func NewReconciliationRun(shop, orderID string, trigger RunTrigger) (*ReconciliationRun, error) {
	if shop == "" {
		return nil, ErrRunInvalidShop
	}
	if orderID == "" {
		return nil, ErrRunInvalidOrderID
	}
	if !trigger.IsValid() {
		return nil, ErrRunInvalidTrigger
	}
	base := shared.NewBaseEntity()
	return &ReconciliationRun{
		BaseEntity: base,
		ShopDomain: shop,
		OrderID:    orderID,
		Trigger:    trigger,
		Status:     RunStatusRunning,
		Outcomes:   []MoveOutcome{},
		StartedAt:  base.CreatedAt,
	}, nil
}

// Complete records the result of a run that evaluated the order
func (r *ReconciliationRun) Complete(result *ReconciliationResult) {
	r.Status = RunStatusCompleted
	r.Success = result.Success
	r.Truncated = result.Truncated
	r.Outcomes = result.Outcomes
	r.finish()
}

// Abort records a run that could not read the fulfillment orders
func (r *ReconciliationRun) Abort(err error) {
	r.Status = RunStatusAborted
	r.Success = false
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	r.finish()
}

// Duration returns how long the run took, zero while it is still running
func (r *ReconciliationRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *ReconciliationRun) finish() {
	now := time.Now()
	r.FinishedAt = &now
	r.UpdatedAt = now
}

// ---------------------------------------------------------------------------
// Repository
// ---------------------------------------------------------------------------

// ReconciliationRunFilter filters the run journal
type ReconciliationRunFilter struct {
	ShopDomain string
	OrderID    string
	Limit      int
}

// Run journal page limits
const (
	DefaultRunListLimit = 20
	MaxRunListLimit     = 100
)

// Normalize clamps the limit into range
func (f *ReconciliationRunFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultRunListLimit
	}
	if f.Limit > MaxRunListLimit {
		f.Limit = MaxRunListLimit
	}
}

// ReconciliationRunRepository persists the run journal
type ReconciliationRunRepository interface {
	Save(ctx context.Context, run *ReconciliationRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*ReconciliationRun, error)
	FindRecent(ctx context.Context, filter ReconciliationRunFilter) ([]ReconciliationRun, error)
	// DeleteStartedBefore purges runs started before cutoff and returns how many were removed
	DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
