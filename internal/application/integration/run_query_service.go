package integration

import (
	"context"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/google/uuid"
)

// RunQueryService reads the reconciliation run journal
type RunQueryService struct {
	runs integration.ReconciliationRunRepository
}

// NewRunQueryService creates a new RunQueryService
func NewRunQueryService(runs integration.ReconciliationRunRepository) *RunQueryService {
	return &RunQueryService{runs: runs}
}

// GetRun retrieves a run by ID
func (s *RunQueryService) GetRun(ctx context.Context, id uuid.UUID) (*ReconciliationRunResponse, error) {
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReconciliationRunResponse(run)
	return &resp, nil
}

// ListRuns lists the most recent runs, newest first
func (s *RunQueryService) ListRuns(ctx context.Context, query ListRunsQuery) ([]ReconciliationRunResponse, error) {
	filter := integration.ReconciliationRunFilter{
		ShopDomain: query.Shop,
		OrderID:    query.OrderID,
		Limit:      query.Limit,
	}
	if filter.OrderID != "" {
		filter.OrderID = integration.OrderGlobalID(filter.OrderID)
	}
	filter.Normalize()

	runs, err := s.runs.FindRecent(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReconciliationRunResponse, len(runs))
	for i := range runs {
		responses[i] = ToReconciliationRunResponse(&runs[i])
	}
	return responses, nil
}
