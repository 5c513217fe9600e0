package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/domain/shared"
)

const (
	testShop   = "demo.myshopify.com"
	testOrder  = "gid://shopify/Order/820982911946154508"
	booking    = integration.TargetLocation("gid://shopify/Location/77507559507")
	otherPlace = "gid://shopify/Location/11111111111"
)

// newSQLiteDatabase opens an in-memory SQLite database with the journal schema
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &Database{DB: gormDB}
	require.NoError(t, db.AutoMigrate())
	return db
}

func completedRun(t *testing.T, shop, orderID string, startedAt time.Time) *integration.ReconciliationRun {
	t.Helper()
	run, err := integration.NewReconciliationRun(shop, orderID, integration.RunTriggerWebhook)
	require.NoError(t, err)
	run.StartedAt = startedAt
	run.WebhookID = "delivery-" + uuid.NewString()
	run.SetTarget(integration.FulfillmentMode("booking"), booking)

	previous := otherPlace
	run.Complete(&integration.ReconciliationResult{
		Success: false,
		Outcomes: []integration.MoveOutcome{
			{
				FulfillmentOrderID:      "gid://shopify/FulfillmentOrder/1",
				PreviousLocationID:      &previous,
				TargetLocationID:        booking,
				Status:                  integration.MoveStatusMoved,
				MovedFulfillmentOrderID: "gid://shopify/FulfillmentOrder/1",
			},
			{
				FulfillmentOrderID: "gid://shopify/FulfillmentOrder/2",
				TargetLocationID:   booking,
				Status:             integration.MoveStatusFailed,
				ErrorDetail:        "Fulfillment order is closed",
			},
		},
	})
	return run
}

func TestGormReconciliationRunRepository_SaveAndFind(t *testing.T) {
	repo := NewGormReconciliationRunRepository(newSQLiteDatabase(t).DB)
	ctx := context.Background()

	run := completedRun(t, testShop, testOrder, time.Now().Add(-time.Second))
	require.NoError(t, repo.Save(ctx, run))

	found, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, testShop, found.ShopDomain)
	assert.Equal(t, testOrder, found.OrderID)
	assert.Equal(t, run.WebhookID, found.WebhookID)
	assert.Equal(t, integration.RunTriggerWebhook, found.Trigger)
	assert.Equal(t, integration.FulfillmentMode("booking"), found.Mode)
	assert.Equal(t, booking, found.TargetLocation)
	assert.Equal(t, integration.RunStatusCompleted, found.Status)
	assert.False(t, found.Success)
	require.NotNil(t, found.FinishedAt)
	assert.WithinDuration(t, *run.FinishedAt, *found.FinishedAt, time.Millisecond)

	require.Len(t, found.Outcomes, 2)
	assert.Equal(t, integration.MoveStatusMoved, found.Outcomes[0].Status)
	require.NotNil(t, found.Outcomes[0].PreviousLocationID)
	assert.Equal(t, otherPlace, *found.Outcomes[0].PreviousLocationID)
	assert.Nil(t, found.Outcomes[1].PreviousLocationID)
	assert.Equal(t, "Fulfillment order is closed", found.Outcomes[1].ErrorDetail)
}

func TestGormReconciliationRunRepository_SaveOverwrites(t *testing.T) {
	repo := NewGormReconciliationRunRepository(newSQLiteDatabase(t).DB)
	ctx := context.Background()

	run, err := integration.NewReconciliationRun(testShop, testOrder, integration.RunTriggerManual)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, run))

	run.Abort(errors.New("integration: platform unavailable"))
	require.NoError(t, repo.Save(ctx, run))

	found, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.RunStatusAborted, found.Status)
	assert.Equal(t, "integration: platform unavailable", found.ErrorMessage)
	assert.Empty(t, found.Outcomes)

	runs, err := repo.FindRecent(ctx, integration.ReconciliationRunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGormReconciliationRunRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormReconciliationRunRepository(newSQLiteDatabase(t).DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReconciliationRunRepository_FindRecent(t *testing.T) {
	repo := NewGormReconciliationRunRepository(newSQLiteDatabase(t).DB)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	oldest := completedRun(t, testShop, testOrder, base)
	newest := completedRun(t, testShop, testOrder, base.Add(2*time.Minute))
	otherOrder := completedRun(t, testShop, "gid://shopify/Order/2", base.Add(time.Minute))
	otherShop := completedRun(t, "other.myshopify.com", testOrder, base.Add(3*time.Minute))
	for _, run := range []*integration.ReconciliationRun{oldest, newest, otherOrder, otherShop} {
		require.NoError(t, repo.Save(ctx, run))
	}

	tests := []struct {
		name   string
		filter integration.ReconciliationRunFilter
		want   []uuid.UUID
	}{
		{
			name:   "all runs newest first",
			filter: integration.ReconciliationRunFilter{},
			want:   []uuid.UUID{otherShop.ID, newest.ID, otherOrder.ID, oldest.ID},
		},
		{
			name:   "by shop",
			filter: integration.ReconciliationRunFilter{ShopDomain: testShop},
			want:   []uuid.UUID{newest.ID, otherOrder.ID, oldest.ID},
		},
		{
			name:   "by shop and order",
			filter: integration.ReconciliationRunFilter{ShopDomain: testShop, OrderID: testOrder},
			want:   []uuid.UUID{newest.ID, oldest.ID},
		},
		{
			name:   "limited",
			filter: integration.ReconciliationRunFilter{Limit: 2},
			want:   []uuid.UUID{otherShop.ID, newest.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.FindRecent(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]uuid.UUID, 0, len(runs))
			for _, run := range runs {
				got = append(got, run.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGormReconciliationRunRepository_DeleteStartedBefore(t *testing.T) {
	repo := NewGormReconciliationRunRepository(newSQLiteDatabase(t).DB)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := completedRun(t, testShop, testOrder, now.Add(-48*time.Hour))
	recent := completedRun(t, testShop, testOrder, now.Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, expired))
	require.NoError(t, repo.Save(ctx, recent))

	deleted, err := repo.DeleteStartedBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	found, err := repo.FindByID(ctx, recent.ID)
	require.NoError(t, err)
	assert.Equal(t, recent.ID, found.ID)

	deleted, err = repo.DeleteStartedBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
