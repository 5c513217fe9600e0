package integration

import (
	"context"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFulfillmentPlatform is a mock implementation of FulfillmentPlatform
type MockFulfillmentPlatform struct {
	mock.Mock
}

func (m *MockFulfillmentPlatform) FetchFulfillmentOrders(ctx context.Context, shop, orderID string, page integration.PageRequest) (*integration.FulfillmentOrderPage, error) {
	args := m.Called(ctx, shop, orderID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.FulfillmentOrderPage), args.Error(1)
}

func (m *MockFulfillmentPlatform) MoveFulfillmentOrder(ctx context.Context, shop, fulfillmentOrderID string, target integration.TargetLocation) (*integration.MoveResponse, error) {
	args := m.Called(ctx, shop, fulfillmentOrderID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MoveResponse), args.Error(1)
}

// MockCompanyDirectory is a mock implementation of CompanyDirectory
type MockCompanyDirectory struct {
	mock.Mock
}

func (m *MockCompanyDirectory) FetchCustomerCompany(ctx context.Context, shop, customerID string) (*integration.CustomerCompany, error) {
	args := m.Called(ctx, shop, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.CustomerCompany), args.Error(1)
}

func (m *MockCompanyDirectory) ListRepCompanies(ctx context.Context, shop, repCode string) ([]integration.Company, error) {
	args := m.Called(ctx, shop, repCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Company), args.Error(1)
}

func (m *MockCompanyDirectory) ListCompanyContactIDs(ctx context.Context, shop, customerID string) ([]string, error) {
	args := m.Called(ctx, shop, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCompanyDirectory) RemoveCompanyContact(ctx context.Context, shop, companyContactID string) ([]integration.UserError, error) {
	args := m.Called(ctx, shop, companyContactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.UserError), args.Error(1)
}

func (m *MockCompanyDirectory) AssignCustomerAsContact(ctx context.Context, shop, companyID, customerID string) ([]integration.UserError, error) {
	args := m.Called(ctx, shop, companyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.UserError), args.Error(1)
}

// MockReconciliationRunRepository is a mock implementation of ReconciliationRunRepository
type MockReconciliationRunRepository struct {
	mock.Mock
}

func (m *MockReconciliationRunRepository) Save(ctx context.Context, run *integration.ReconciliationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockReconciliationRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ReconciliationRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ReconciliationRun), args.Error(1)
}

func (m *MockReconciliationRunRepository) FindRecent(ctx context.Context, filter integration.ReconciliationRunFilter) ([]integration.ReconciliationRun, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.ReconciliationRun), args.Error(1)
}

func (m *MockReconciliationRunRepository) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockPayloadArchive is a mock implementation of PayloadArchive
type MockPayloadArchive struct {
	mock.Mock
}

func (m *MockPayloadArchive) Store(ctx context.Context, delivery integration.WebhookDelivery, payload []byte) (string, error) {
	args := m.Called(ctx, delivery, payload)
	return args.String(0), args.Error(1)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	testShop            = "demo.myshopify.com"
	testOrderID         = "gid://shopify/Order/820982911946154508"
	testBookingLocation = integration.TargetLocation("gid://shopify/Location/77507559507")
	testOtherLocation   = "gid://shopify/Location/1"
)

func strPtr(s string) *string {
	return &s
}

func fo(id string, location *string) integration.FulfillmentOrder {
	return integration.FulfillmentOrder{ID: id, AssignedLocationID: location}
}

func singlePage(orders ...integration.FulfillmentOrder) *integration.FulfillmentOrderPage {
	return &integration.FulfillmentOrderPage{Orders: orders, OrderFound: true}
}

func movedTo(id string) *integration.MoveResponse {
	return &integration.MoveResponse{
		MovedFulfillmentOrderID:    id,
		OriginalFulfillmentOrderID: id,
		MovedLocationID:            testBookingLocation.String(),
	}
}
