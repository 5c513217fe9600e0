package integration

import "errors"

// ErrFulfillmentFetchFailed is returned when the fulfillment orders of an order cannot be read.
// It aborts the whole run.
var ErrFulfillmentFetchFailed = errors.New("integration: failed to fetch fulfillment orders")

// ---------------------------------------------------------------------------
// Fulfillment Orders
// ---------------------------------------------------------------------------

// FulfillmentOrder is a read-only snapshot of a platform fulfillment order.
// It is fetched fresh for every run and never cached.
type FulfillmentOrder struct {
	// ID is the fulfillment order global ID
	ID string
	// AssignedLocationID is the assigned location global ID, nil when not yet assigned
	AssignedLocationID *string
	// AssignedLocationName is the assigned location display name
	AssignedLocationName string
}

// IsAt returns true if the fulfillment order is already assigned to the target
func (fo FulfillmentOrder) IsAt(target TargetLocation) bool {
	return fo.AssignedLocationID != nil && *fo.AssignedLocationID == string(target)
}

// PageRequest is a cursor page request
type PageRequest struct {
	// First is the page size
	First int
	// After is the end cursor of the previous page, empty for the first page
	After string
}

// FulfillmentOrderPage is one page of an order's fulfillment orders
type FulfillmentOrderPage struct {
	// Orders in platform order
	Orders []FulfillmentOrder
	// HasNextPage indicates more fulfillment orders exist
	HasNextPage bool
	// EndCursor is the cursor to request the next page
	EndCursor string
	// OrderFound is false when the platform returned a null order
	OrderFound bool
}

// MoveResponse is the platform response to a move mutation
type MoveResponse struct {
	// MovedFulfillmentOrderID is the fulfillment order now at the new location.
	// It differs from the original when only part of the order could be moved.
	MovedFulfillmentOrderID string
	// MovedLocationID is the location the moved fulfillment order is assigned to
	MovedLocationID string
	// OriginalFulfillmentOrderID is the fulfillment order that was requested to move
	OriginalFulfillmentOrderID string
	// RemainingFulfillmentOrderID holds line items that stayed at the old location
	RemainingFulfillmentOrderID string
	// UserErrors are semantic rejections of the move
	UserErrors []UserError
}

// ---------------------------------------------------------------------------
// MoveStatus
// ---------------------------------------------------------------------------

// MoveStatus represents the outcome of evaluating one fulfillment order
type MoveStatus string

const (
	// MoveStatusMoved indicates the fulfillment order was moved to the target
	MoveStatusMoved MoveStatus = "MOVED"
	// MoveStatusSkipped indicates the fulfillment order was already at the target
	MoveStatusSkipped MoveStatus = "SKIPPED_ALREADY_AT_TARGET"
	// MoveStatusFailed indicates the move was rejected or could not be sent
	MoveStatusFailed MoveStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s MoveStatus) IsValid() bool {
	switch s {
	case MoveStatusMoved, MoveStatusSkipped, MoveStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of MoveStatus
func (s MoveStatus) String() string {
	return string(s)
}

// MoveOutcome records what happened to one fulfillment order during a run
type MoveOutcome struct {
	// FulfillmentOrderID is the evaluated fulfillment order
	FulfillmentOrderID string
	// PreviousLocationID is the location it was assigned to before the run, nil if unassigned
	PreviousLocationID *string
	// TargetLocationID is the location resolved from the fulfillment mode
	TargetLocationID TargetLocation
	// Status is the outcome
	Status MoveStatus
	// ErrorDetail is the first user error or the transport failure, empty otherwise
	ErrorDetail string
	// MovedFulfillmentOrderID is the fulfillment order reported at the target after a move
	MovedFulfillmentOrderID string
}

// ---------------------------------------------------------------------------
// ReconciliationResult
// ---------------------------------------------------------------------------

// ReconciliationResult is the ordered set of outcomes of one run.
// Outcomes follow the order the platform returned the fulfillment orders in.
type ReconciliationResult struct {
	// Outcomes has one entry per evaluated fulfillment order
	Outcomes []MoveOutcome
	// Success is true if no outcome failed
	Success bool
	// Truncated is true if more fulfillment orders existed than the page limit allowed to read
	Truncated bool
}

// NoopReconciliationResult is the successful empty result for orders with nothing to reconcile
func NoopReconciliationResult() *ReconciliationResult {
	return &ReconciliationResult{
		Outcomes: []MoveOutcome{},
		Success:  true,
	}
}

// CountByStatus returns how many outcomes have the given status
func (r *ReconciliationResult) CountByStatus(status MoveStatus) int {
	count := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			count++
		}
	}
	return count
}
