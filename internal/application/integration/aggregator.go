package integration

import "github.com/erp/fulfillment-router/internal/domain/integration"

// Aggregate folds per fulfillment order outcomes into a result.
// The outcomes slice must already be in fetch order; Aggregate never reorders it.
func Aggregate(outcomes []integration.MoveOutcome, truncated bool) *integration.ReconciliationResult {
	result := &integration.ReconciliationResult{
		Outcomes:  make([]integration.MoveOutcome, len(outcomes)),
		Success:   true,
		Truncated: truncated,
	}
	copy(result.Outcomes, outcomes)
	for _, o := range outcomes {
		if o.Status == integration.MoveStatusFailed {
			result.Success = false
			break
		}
	}
	return result
}
