package models

import (
	"encoding/json"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"go.uber.org/zap"
)

var modelLogger = zap.L().Named("integration.models")

// ReconciliationRunModel is the persistence model for the ReconciliationRun journal entry.
type ReconciliationRunModel struct {
	BaseModel
	ShopDomain     string     `gorm:"type:varchar(255);not null;index:idx_reconciliation_runs_shop_order,priority:1"`
	OrderID        string     `gorm:"type:varchar(100);not null;index:idx_reconciliation_runs_shop_order,priority:2"`
	WebhookID      string     `gorm:"type:varchar(100);index"`
	Trigger        string     `gorm:"column:run_trigger;type:varchar(20);not null"`
	Mode           string     `gorm:"type:varchar(50)"`
	TargetLocation string     `gorm:"type:varchar(100)"`
	Status         string     `gorm:"type:varchar(20);not null"`
	Success        bool       `gorm:"not null;default:false"`
	Truncated      bool       `gorm:"not null;default:false"`
	ErrorMessage   string     `gorm:"type:text"`
	OutcomesJSON   string     `gorm:"column:outcomes;type:jsonb;not null;default:'[]'"`
	StartedAt      time.Time  `gorm:"not null;index"`
	FinishedAt     *time.Time
}

// TableName returns the table name for GORM
func (ReconciliationRunModel) TableName() string {
	return "reconciliation_runs"
}

// moveOutcomeRecord is the stored shape of one move outcome
type moveOutcomeRecord struct {
	FulfillmentOrderID      string  `json:"fulfillmentOrderId"`
	PreviousLocationID      *string `json:"previousLocationId"`
	TargetLocationID        string  `json:"targetLocationId"`
	Status                  string  `json:"status"`
	ErrorDetail             string  `json:"errorDetail,omitempty"`
	MovedFulfillmentOrderID string  `json:"movedFulfillmentOrderId,omitempty"`
}

// ReconciliationRunModelFromDomain converts a domain run to its persistence model
func ReconciliationRunModelFromDomain(run *integration.ReconciliationRun) *ReconciliationRunModel {
	m := &ReconciliationRunModel{
		ShopDomain:     run.ShopDomain,
		OrderID:        run.OrderID,
		WebhookID:      run.WebhookID,
		Trigger:        run.Trigger.String(),
		Mode:           string(run.Mode),
		TargetLocation: string(run.TargetLocation),
		Status:         string(run.Status),
		Success:        run.Success,
		Truncated:      run.Truncated,
		ErrorMessage:   run.ErrorMessage,
		OutcomesJSON:   "[]",
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
	}
	m.FromDomainBaseEntity(run.BaseEntity)

	if len(run.Outcomes) > 0 {
		records := make([]moveOutcomeRecord, 0, len(run.Outcomes))
		for _, o := range run.Outcomes {
			records = append(records, moveOutcomeRecord{
				FulfillmentOrderID:      o.FulfillmentOrderID,
				PreviousLocationID:      o.PreviousLocationID,
				TargetLocationID:        string(o.TargetLocationID),
				Status:                  string(o.Status),
				ErrorDetail:             o.ErrorDetail,
				MovedFulfillmentOrderID: o.MovedFulfillmentOrderID,
			})
		}
		if jsonBytes, err := json.Marshal(records); err == nil {
			m.OutcomesJSON = string(jsonBytes)
		}
	}
	return m
}

// ToDomain converts the persistence model to a domain ReconciliationRun
func (m *ReconciliationRunModel) ToDomain() *integration.ReconciliationRun {
	run := &integration.ReconciliationRun{
		BaseEntity:     m.BaseModel.ToDomain(),
		ShopDomain:     m.ShopDomain,
		OrderID:        m.OrderID,
		WebhookID:      m.WebhookID,
		Trigger:        integration.RunTrigger(m.Trigger),
		Mode:           integration.FulfillmentMode(m.Mode),
		TargetLocation: integration.TargetLocation(m.TargetLocation),
		Status:         integration.RunStatus(m.Status),
		Success:        m.Success,
		Truncated:      m.Truncated,
		ErrorMessage:   m.ErrorMessage,
		Outcomes:       []integration.MoveOutcome{},
		StartedAt:      m.StartedAt,
		FinishedAt:     m.FinishedAt,
	}

	if m.OutcomesJSON != "" && m.OutcomesJSON != "[]" {
		var records []moveOutcomeRecord
		if err := json.Unmarshal([]byte(m.OutcomesJSON), &records); err != nil {
			modelLogger.Warn("failed to parse outcomes JSON",
				zap.String("run_id", m.ID.String()),
				zap.Error(err),
			)
			return run
		}
		for _, r := range records {
			run.Outcomes = append(run.Outcomes, integration.MoveOutcome{
				FulfillmentOrderID:      r.FulfillmentOrderID,
				PreviousLocationID:      r.PreviousLocationID,
				TargetLocationID:        integration.TargetLocation(r.TargetLocationID),
				Status:                  integration.MoveStatus(r.Status),
				ErrorDetail:             r.ErrorDetail,
				MovedFulfillmentOrderID: r.MovedFulfillmentOrderID,
			})
		}
	}
	return run
}
