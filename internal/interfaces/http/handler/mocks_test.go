package handler

import (
	"context"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockOrderCreatedProcessor is a mock implementation of OrderCreatedProcessor
type MockOrderCreatedProcessor struct {
	mock.Mock
}

func (m *MockOrderCreatedProcessor) HandleOrderCreated(ctx context.Context, body []byte, delivery integration.WebhookDelivery) (*integrationapp.ReconcileResult, error) {
	args := m.Called(ctx, body, delivery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integrationapp.ReconcileResult), args.Error(1)
}

// MockCompanyActionHandler is a mock implementation of CompanyActionHandler
type MockCompanyActionHandler struct {
	mock.Mock
}

func (m *MockCompanyActionHandler) HandleAction(ctx context.Context, shop string, req integrationapp.ProxyRequest) (any, error) {
	args := m.Called(ctx, shop, req)
	return args.Get(0), args.Error(1)
}

// MockManualReconciler is a mock implementation of ManualReconciler
type MockManualReconciler struct {
	mock.Mock
}

func (m *MockManualReconciler) ReconcileOrder(ctx context.Context, req integrationapp.ReconcileOrderRequest) (*integrationapp.ReconcileResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integrationapp.ReconcileResult), args.Error(1)
}

// MockRunQuerier is a mock implementation of RunQuerier
type MockRunQuerier struct {
	mock.Mock
}

func (m *MockRunQuerier) GetRun(ctx context.Context, id uuid.UUID) (*integrationapp.ReconciliationRunResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integrationapp.ReconciliationRunResponse), args.Error(1)
}

func (m *MockRunQuerier) ListRuns(ctx context.Context, query integrationapp.ListRunsQuery) ([]integrationapp.ReconciliationRunResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integrationapp.ReconciliationRunResponse), args.Error(1)
}

// MockGraphQLGateway is a mock implementation of integration.GraphQLGateway
type MockGraphQLGateway struct {
	mock.Mock
}

func (m *MockGraphQLGateway) Execute(ctx context.Context, shop, query string, variables map[string]any) (*integration.GraphQLResult, error) {
	args := m.Called(ctx, shop, query, variables)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.GraphQLResult), args.Error(1)
}
