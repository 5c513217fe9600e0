package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/domain/shared"
	"github.com/erp/fulfillment-router/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReconciliationRunRepository implements ReconciliationRunRepository using GORM
type GormReconciliationRunRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRunRepository creates a new GormReconciliationRunRepository
func NewGormReconciliationRunRepository(db *gorm.DB) *GormReconciliationRunRepository {
	return &GormReconciliationRunRepository{db: db}
}

var _ integration.ReconciliationRunRepository = (*GormReconciliationRunRepository)(nil)

// Save inserts the run or overwrites it when the ID already exists
func (r *GormReconciliationRunRepository) Save(ctx context.Context, run *integration.ReconciliationRun) error {
	model := models.ReconciliationRunModelFromDomain(run)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByID finds a run by its ID
func (r *GormReconciliationRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ReconciliationRun, error) {
	var model models.ReconciliationRunModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent lists runs newest first, optionally narrowed to a shop and order
func (r *GormReconciliationRunRepository) FindRecent(ctx context.Context, filter integration.ReconciliationRunFilter) ([]integration.ReconciliationRun, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.ReconciliationRunModel{})
	if filter.ShopDomain != "" {
		query = query.Where("shop_domain = ?", filter.ShopDomain)
	}
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}

	var rows []models.ReconciliationRunModel
	if err := query.Order("started_at DESC").Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]integration.ReconciliationRun, 0, len(rows))
	for i := range rows {
		runs = append(runs, *rows[i].ToDomain())
	}
	return runs, nil
}

// DeleteStartedBefore removes runs whose started_at precedes cutoff
func (r *GormReconciliationRunRepository) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("started_at < ?", cutoff).
		Delete(&models.ReconciliationRunModel{})
	return result.RowsAffected, result.Error
}
