package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func firstPage() integration.PageRequest {
	return integration.PageRequest{First: 10}
}

func TestReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("moves, skips and records failures in fetch order", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
			Return(singlePage(
				fo("fo-1", strPtr(testOtherLocation)),
				fo("fo-2", strPtr(testBookingLocation.String())),
				fo("fo-3", nil),
				fo("fo-4", strPtr(testOtherLocation)),
			), nil)
		platform.On("MoveFulfillmentOrder", mock.Anything, testShop, "fo-1", testBookingLocation).
			Return(movedTo("fo-1"), nil)
		platform.On("MoveFulfillmentOrder", mock.Anything, testShop, "fo-3", testBookingLocation).
			Return(&integration.MoveResponse{UserErrors: []integration.UserError{
				{Field: []string{"id"}, Message: "Fulfillment order is closed"},
				{Message: "second"},
			}}, nil)
		platform.On("MoveFulfillmentOrder", mock.Anything, testShop, "fo-4", testBookingLocation).
			Return(nil, fmt.Errorf("%w: connection reset", integration.ErrPlatformUnavailable))

		r := NewReconciler(platform, DefaultReconcilerConfig())
		result, err := r.Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 4)
		assert.False(t, result.Success)
		assert.False(t, result.Truncated)

		assert.Equal(t, "fo-1", result.Outcomes[0].FulfillmentOrderID)
		assert.Equal(t, integration.MoveStatusMoved, result.Outcomes[0].Status)
		assert.Equal(t, "fo-1", result.Outcomes[0].MovedFulfillmentOrderID)
		assert.Equal(t, testOtherLocation, *result.Outcomes[0].PreviousLocationID)

		assert.Equal(t, integration.MoveStatusSkipped, result.Outcomes[1].Status)
		assert.Empty(t, result.Outcomes[1].ErrorDetail)

		assert.Equal(t, integration.MoveStatusFailed, result.Outcomes[2].Status)
		assert.Equal(t, "Fulfillment order is closed", result.Outcomes[2].ErrorDetail)
		assert.Nil(t, result.Outcomes[2].PreviousLocationID)

		assert.Equal(t, integration.MoveStatusFailed, result.Outcomes[3].Status)
		assert.Contains(t, result.Outcomes[3].ErrorDetail, "connection reset")

		for _, o := range result.Outcomes {
			assert.Equal(t, testBookingLocation, o.TargetLocationID)
		}
		platform.AssertNotCalled(t, "MoveFulfillmentOrder", mock.Anything, testShop, "fo-2", mock.Anything)
		platform.AssertExpectations(t)
	})

	t.Run("all at target is success without moves", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
			Return(singlePage(fo("fo-1", strPtr(testBookingLocation.String()))), nil)

		result, err := NewReconciler(platform, DefaultReconcilerConfig()).
			Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)

		assert.True(t, result.Success)
		require.Len(t, result.Outcomes, 1)
		assert.Equal(t, integration.MoveStatusSkipped, result.Outcomes[0].Status)
		platform.AssertNotCalled(t, "MoveFulfillmentOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero fulfillment orders", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
			Return(singlePage(), nil)

		result, err := NewReconciler(platform, DefaultReconcilerConfig()).
			Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.NotNil(t, result.Outcomes)
		assert.Empty(t, result.Outcomes)
		platform.AssertNotCalled(t, "MoveFulfillmentOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order not found is an empty success", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
			Return(&integration.FulfillmentOrderPage{OrderFound: false}, nil)

		result, err := NewReconciler(platform, DefaultReconcilerConfig()).
			Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Empty(t, result.Outcomes)
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
			Return(nil, fmt.Errorf("%w: HTTP 502", integration.ErrPlatformRequestFailed))

		result, err := NewReconciler(platform, DefaultReconcilerConfig()).
			Reconcile(ctx, testShop, testOrderID, testBookingLocation)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, integration.ErrFulfillmentFetchFailed)
		assert.ErrorIs(t, err, integration.ErrPlatformRequestFailed)
		platform.AssertNotCalled(t, "MoveFulfillmentOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReconciler_Pagination(t *testing.T) {
	ctx := context.Background()

	t.Run("follows cursors until the last page", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, integration.PageRequest{First: 2}).
			Return(&integration.FulfillmentOrderPage{
				Orders:      []integration.FulfillmentOrder{fo("fo-1", nil), fo("fo-2", nil)},
				HasNextPage: true,
				EndCursor:   "cursor-1",
				OrderFound:  true,
			}, nil)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, integration.PageRequest{First: 2, After: "cursor-1"}).
			Return(singlePage(fo("fo-3", nil)), nil)
		platform.On("MoveFulfillmentOrder", mock.Anything, testShop, mock.Anything, testBookingLocation).
			Return(movedTo("moved"), nil)

		r := NewReconciler(platform, ReconcilerConfig{PageSize: 2, MaxPages: 5})
		result, err := r.Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 3)
		assert.Equal(t, "fo-3", result.Outcomes[2].FulfillmentOrderID)
		assert.False(t, result.Truncated)
		assert.True(t, result.Success)
	})

	t.Run("stops at max pages and marks truncated", func(t *testing.T) {
		platform := new(MockFulfillmentPlatform)
		platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, integration.PageRequest{First: 1}).
			Return(&integration.FulfillmentOrderPage{
				Orders:      []integration.FulfillmentOrder{fo("fo-1", strPtr(testBookingLocation.String()))},
				HasNextPage: true,
				EndCursor:   "cursor-1",
				OrderFound:  true,
			}, nil).Once()

		r := NewReconciler(platform, ReconcilerConfig{PageSize: 1, MaxPages: 1})
		result, err := r.Reconcile(ctx, testShop, testOrderID, testBookingLocation)
		require.NoError(t, err)

		assert.True(t, result.Truncated)
		assert.True(t, result.Success)
		require.Len(t, result.Outcomes, 1)
		platform.AssertNumberOfCalls(t, "FetchFulfillmentOrders", 1)
	})
}

func TestReconciler_BoundedConcurrencyKeepsFetchOrder(t *testing.T) {
	platform := new(MockFulfillmentPlatform)
	orders := make([]integration.FulfillmentOrder, 8)
	for i := range orders {
		orders[i] = fo(fmt.Sprintf("fo-%d", i), strPtr(testOtherLocation))
	}
	platform.On("FetchFulfillmentOrders", mock.Anything, testShop, testOrderID, firstPage()).
		Return(singlePage(orders...), nil)

	var inFlight, maxInFlight int32
	platform.On("MoveFulfillmentOrder", mock.Anything, testShop, mock.Anything, testBookingLocation).
		Run(func(args mock.Arguments) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				m := atomic.LoadInt32(&maxInFlight)
				if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).
		Return(movedTo("moved"), nil)

	r := NewReconciler(platform, ReconcilerConfig{MoveConcurrency: 3})
	result, err := r.Reconcile(context.Background(), testShop, testOrderID, testBookingLocation)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, len(orders))
	for i, o := range result.Outcomes {
		assert.Equal(t, orders[i].ID, o.FulfillmentOrderID)
		assert.Equal(t, integration.MoveStatusMoved, o.Status)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(3))
}

// fakeFulfillmentPlatform keeps assignments in memory so moves are visible to later fetches
type fakeFulfillmentPlatform struct {
	mu        sync.Mutex
	order     []string
	locations map[string]string
	moves     int
}

func newFakeFulfillmentPlatform(orders ...integration.FulfillmentOrder) *fakeFulfillmentPlatform {
	p := &fakeFulfillmentPlatform{locations: make(map[string]string)}
	for _, o := range orders {
		p.order = append(p.order, o.ID)
		if o.AssignedLocationID != nil {
			p.locations[o.ID] = *o.AssignedLocationID
		}
	}
	return p
}

func (p *fakeFulfillmentPlatform) FetchFulfillmentOrders(_ context.Context, _, _ string, _ integration.PageRequest) (*integration.FulfillmentOrderPage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	orders := make([]integration.FulfillmentOrder, 0, len(p.order))
	for _, id := range p.order {
		var location *string
		if loc, ok := p.locations[id]; ok {
			location = strPtr(loc)
		}
		orders = append(orders, fo(id, location))
	}
	return singlePage(orders...), nil
}

func (p *fakeFulfillmentPlatform) MoveFulfillmentOrder(_ context.Context, _, id string, target integration.TargetLocation) (*integration.MoveResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locations[id] = target.String()
	p.moves++
	return &integration.MoveResponse{
		MovedFulfillmentOrderID:    id,
		OriginalFulfillmentOrderID: id,
		MovedLocationID:            target.String(),
	}, nil
}

func (p *fakeFulfillmentPlatform) moveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.moves
}

func TestReconciler_RepeatedRunIsIdempotent(t *testing.T) {
	platform := newFakeFulfillmentPlatform(
		fo("fo-1", strPtr(testOtherLocation)),
		fo("fo-2", strPtr(testBookingLocation.String())),
		fo("fo-3", nil),
		fo("fo-4", strPtr(testOtherLocation)),
		fo("fo-5", strPtr(testOtherLocation)),
	)
	r := NewReconciler(platform, ReconcilerConfig{MoveConcurrency: 3})
	ctx := context.Background()

	first, err := r.Reconcile(ctx, testShop, testOrderID, testBookingLocation)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, 4, first.CountByStatus(integration.MoveStatusMoved))
	assert.Equal(t, 1, first.CountByStatus(integration.MoveStatusSkipped))
	assert.Equal(t, 4, platform.moveCount())

	second, err := r.Reconcile(ctx, testShop, testOrderID, testBookingLocation)
	require.NoError(t, err)
	assert.True(t, second.Success)
	require.Len(t, second.Outcomes, 5)
	for i, o := range second.Outcomes {
		assert.Equal(t, fmt.Sprintf("fo-%d", i+1), o.FulfillmentOrderID)
		assert.Equal(t, integration.MoveStatusSkipped, o.Status)
	}
	assert.Equal(t, 4, platform.moveCount(), "second run must not move anything")
}

func TestAggregate(t *testing.T) {
	t.Run("empty is success", func(t *testing.T) {
		result := Aggregate(nil, false)
		assert.True(t, result.Success)
		assert.NotNil(t, result.Outcomes)
		assert.Empty(t, result.Outcomes)
	})

	t.Run("any failure fails the result", func(t *testing.T) {
		outcomes := []integration.MoveOutcome{
			{FulfillmentOrderID: "a", Status: integration.MoveStatusMoved},
			{FulfillmentOrderID: "b", Status: integration.MoveStatusFailed},
			{FulfillmentOrderID: "c", Status: integration.MoveStatusSkipped},
		}
		result := Aggregate(outcomes, true)
		assert.False(t, result.Success)
		assert.True(t, result.Truncated)
		assert.Equal(t, []string{"a", "b", "c"}, []string{
			result.Outcomes[0].FulfillmentOrderID,
			result.Outcomes[1].FulfillmentOrderID,
			result.Outcomes[2].FulfillmentOrderID,
		})
	})

	t.Run("does not alias input", func(t *testing.T) {
		outcomes := []integration.MoveOutcome{{FulfillmentOrderID: "a", Status: integration.MoveStatusMoved}}
		result := Aggregate(outcomes, false)
		outcomes[0].FulfillmentOrderID = "changed"
		assert.Equal(t, "a", result.Outcomes[0].FulfillmentOrderID)
	})
}

func TestDefaultReconcilerConfig(t *testing.T) {
	cfg := ReconcilerConfig{}.withDefaults()
	assert.Equal(t, DefaultReconcilerConfig(), cfg)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, 1, cfg.MoveConcurrency)
}
