package integration

import (
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Reconciliation DTOs
// ---------------------------------------------------------------------------

// MoveOutcomeResponse is the wire form of one fulfillment order outcome
type MoveOutcomeResponse struct {
	FulfillmentOrderID      string                 `json:"fulfillmentOrderId"`
	PreviousLocationID      *string                `json:"previousLocationId"`
	TargetLocationID        string                 `json:"targetLocationId"`
	Status                  integration.MoveStatus `json:"status"`
	ErrorDetail             string                 `json:"errorDetail,omitempty"`
	MovedFulfillmentOrderID string                 `json:"movedFulfillmentOrderId,omitempty"`
}

// ReconcileResult is the outcome of handling one order
type ReconcileResult struct {
	Success     bool                  `json:"success"`
	MoveResults []MoveOutcomeResponse `json:"moveResults"`
	Truncated   bool                  `json:"truncated,omitempty"`
	RunID       *uuid.UUID            `json:"runId,omitempty"`
	// Duplicate is set when the delivery was already processed
	Duplicate bool `json:"-"`
	// NothingToDo is set when the order carried no recognized fulfillment mode
	NothingToDo bool `json:"-"`
}

// ReconcileOrderRequest is a manual reconciliation request from the admin API
type ReconcileOrderRequest struct {
	Shop            string `json:"shop" binding:"required"`
	OrderID         string `json:"orderId" binding:"required"`
	FulfillmentMode string `json:"fulfillmentMode" binding:"required"`
}

// ToMoveOutcomeResponses converts domain outcomes to their wire form
func ToMoveOutcomeResponses(outcomes []integration.MoveOutcome) []MoveOutcomeResponse {
	responses := make([]MoveOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		responses[i] = MoveOutcomeResponse{
			FulfillmentOrderID:      o.FulfillmentOrderID,
			PreviousLocationID:      o.PreviousLocationID,
			TargetLocationID:        o.TargetLocationID.String(),
			Status:                  o.Status,
			ErrorDetail:             o.ErrorDetail,
			MovedFulfillmentOrderID: o.MovedFulfillmentOrderID,
		}
	}
	return responses
}

func emptyReconcileResult() *ReconcileResult {
	return &ReconcileResult{Success: true, MoveResults: []MoveOutcomeResponse{}}
}

// ---------------------------------------------------------------------------
// Run Journal DTOs
// ---------------------------------------------------------------------------

// ReconciliationRunResponse is a journal entry in API responses
type ReconciliationRunResponse struct {
	ID             uuid.UUID             `json:"id"`
	ShopDomain     string                `json:"shopDomain"`
	OrderID        string                `json:"orderId"`
	WebhookID      string                `json:"webhookId,omitempty"`
	Trigger        string                `json:"trigger"`
	Mode           string                `json:"fulfillmentMode"`
	TargetLocation string                `json:"targetLocationId"`
	Status         string                `json:"status"`
	Success        bool                  `json:"success"`
	Truncated      bool                  `json:"truncated"`
	ErrorMessage   string                `json:"errorMessage,omitempty"`
	MoveResults    []MoveOutcomeResponse `json:"moveResults"`
	StartedAt      time.Time             `json:"startedAt"`
	FinishedAt     *time.Time            `json:"finishedAt,omitempty"`
	DurationMs     int64                 `json:"durationMs"`
}

// ListRunsQuery filters the run journal listing
type ListRunsQuery struct {
	Shop    string `form:"shop"`
	OrderID string `form:"order_id"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ToReconciliationRunResponse converts a journal entry to its API form
func ToReconciliationRunResponse(run *integration.ReconciliationRun) ReconciliationRunResponse {
	return ReconciliationRunResponse{
		ID:             run.ID,
		ShopDomain:     run.ShopDomain,
		OrderID:        run.OrderID,
		WebhookID:      run.WebhookID,
		Trigger:        run.Trigger.String(),
		Mode:           run.Mode.String(),
		TargetLocation: run.TargetLocation.String(),
		Status:         string(run.Status),
		Success:        run.Success,
		Truncated:      run.Truncated,
		ErrorMessage:   run.ErrorMessage,
		MoveResults:    ToMoveOutcomeResponses(run.Outcomes),
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		DurationMs:     run.Duration().Milliseconds(),
	}
}

// ---------------------------------------------------------------------------
// Company Proxy DTOs
// ---------------------------------------------------------------------------

// Proxy action types
const (
	ActionFetchCompany      = "fetchCompany"
	ActionFetchRepCompanies = "fetchRepCompanies"
	ActionAssignCompany     = "assignCompany"
)

// ProxyRequest is the storefront app proxy request body
type ProxyRequest struct {
	ActionType string `json:"actionType"`
	CustomerID string `json:"customerId"`
	RepCode    string `json:"repCode"`
	CompanyID  string `json:"companyId" binding:"omitempty,shopify_gid"`
}

// CompanyLocationResponse is a company location in proxy responses
type CompanyLocationResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	FormattedAddress []string `json:"formattedAddress"`
}

// CompanyResponse is a company in proxy responses
type CompanyResponse struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	ExternalID string                    `json:"externalId,omitempty"`
	RepCodes   string                    `json:"repCodes,omitempty"`
	Locations  []CompanyLocationResponse `json:"locations"`
}

// FetchCompanyResponse is the fetchCompany action result
type FetchCompanyResponse struct {
	Company *CompanyResponse `json:"company"`
	RepCode string           `json:"repCode"`
}

// FetchRepCompaniesResponse is the fetchRepCompanies action result
type FetchRepCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// AssignCompanyResponse is the assignCompany action result
type AssignCompanyResponse struct {
	Success bool `json:"success"`
}

// ToCompanyResponse converts a domain company to its proxy form
func ToCompanyResponse(c *integration.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	resp := &CompanyResponse{
		ID:         c.ID,
		Name:       c.Name,
		ExternalID: c.ExternalID,
		RepCodes:   c.RepCodes,
		Locations:  make([]CompanyLocationResponse, 0, len(c.Locations)),
	}
	for _, loc := range c.Locations {
		address := loc.FormattedAddress
		if address == nil {
			address = []string{}
		}
		resp.Locations = append(resp.Locations, CompanyLocationResponse{
			ID:               loc.ID,
			Name:             loc.Name,
			FormattedAddress: address,
		})
	}
	return resp
}
