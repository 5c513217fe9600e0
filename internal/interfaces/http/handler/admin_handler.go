package handler

import (
	"context"
	"errors"
	"net/http"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/ecommerce"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/erp/fulfillment-router/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManualReconciler runs a reconciliation requested by an operator
type ManualReconciler interface {
	ReconcileOrder(ctx context.Context, req integrationapp.ReconcileOrderRequest) (*integrationapp.ReconcileResult, error)
}

// RunQuerier reads the reconciliation run journal
type RunQuerier interface {
	GetRun(ctx context.Context, id uuid.UUID) (*integrationapp.ReconciliationRunResponse, error)
	ListRuns(ctx context.Context, query integrationapp.ListRunsQuery) ([]integrationapp.ReconciliationRunResponse, error)
}

// GraphQLRequest is the body of the admin GraphQL passthrough
type GraphQLRequest struct {
	Shop      string         `json:"shop" binding:"omitempty,hostname"`
	Query     string         `json:"query" binding:"required"`
	Variables map[string]any `json:"variables"`
}

// AdminHandler serves the JWT-protected operator API
type AdminHandler struct {
	BaseHandler
	gateway     integration.GraphQLGateway
	reconciler  ManualReconciler
	runs        RunQuerier
	defaultShop string
}

// AdminHandlerOption configures an AdminHandler
type AdminHandlerOption func(*AdminHandler)

// WithRunQuerier exposes the run journal endpoints
func WithRunQuerier(runs RunQuerier) AdminHandlerOption {
	return func(h *AdminHandler) {
		h.runs = runs
	}
}

// WithDefaultShop sets the shop used when a request names none
func WithDefaultShop(shop string) AdminHandlerOption {
	return func(h *AdminHandler) {
		h.defaultShop = shop
	}
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(gateway integration.GraphQLGateway, reconciler ManualReconciler, opts ...AdminHandlerOption) *AdminHandler {
	h := &AdminHandler{
		gateway:    gateway,
		reconciler: reconciler,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HasRunJournal reports whether the run endpoints can be served
func (h *AdminHandler) HasRunJournal() bool {
	return h.runs != nil
}

// ExecuteGraphQL godoc
// @ID           executeAdminGraphQL
// @Summary      Execute an Admin API GraphQL document
// @Description  Forwards the document to the shop's Admin API. The platform response is returned as is, GraphQL errors included.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body GraphQLRequest true "GraphQL document"
// @Success      200 {object} integration.GraphQLResult
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/graphql [post]
func (h *AdminHandler) ExecuteGraphQL(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	shop := req.Shop
	if shop == "" {
		shop = h.defaultShop
	}
	ctx := logger.WithShopDomain(c.Request.Context(), shop)

	var (
		result *integration.GraphQLResult
		err    error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationGraphQL, shop), func(ctx context.Context) {
		result, err = h.gateway.Execute(ctx, shop, req.Query, req.Variables)
	})
	if err != nil {
		h.handleGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReconcileOrder godoc
// @ID           reconcileAdminOrder
// @Summary      Reconcile an order
// @Description  Moves the order's fulfillment orders to the location of the given fulfillment mode
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body integrationapp.ReconcileOrderRequest true "Order to reconcile"
// @Success      200 {object} dto.Response{data=integrationapp.ReconcileResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/orders/reconcile [post]
func (h *AdminHandler) ReconcileOrder(c *gin.Context) {
	var req integrationapp.ReconcileOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.reconciler.ReconcileOrder(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, integration.ErrFulfillmentFetchFailed) {
			logger.L(c.Request.Context()).Warn("Manual reconciliation aborted", zap.Error(err))
			h.ErrorWithCode(c, dto.ErrCodeFulfillmentFetch, "Failed to fetch fulfillment orders")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListRuns godoc
// @ID           listAdminReconciliationRuns
// @Summary      List reconciliation runs
// @Description  Returns the most recent journal entries, newest first
// @Tags         admin
// @Produce      json
// @Param        shop query string false "Shop domain"
// @Param        order_id query string false "Order ID"
// @Param        limit query int false "Maximum entries" minimum(1) maximum(100) default(20)
// @Success      200 {object} dto.Response{data=[]integrationapp.ReconciliationRunResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/reconciliation-runs [get]
func (h *AdminHandler) ListRuns(c *gin.Context) {
	var query integrationapp.ListRunsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	runs, err := h.runs.ListRuns(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	limit := query.Limit
	if limit == 0 {
		limit = integration.DefaultRunListLimit
	}
	h.SuccessWithMeta(c, runs, len(runs), limit)
}

// GetRun godoc
// @ID           getAdminReconciliationRun
// @Summary      Get a reconciliation run
// @Tags         admin
// @Produce      json
// @Param        id path string true "Run ID" format(uuid)
// @Success      200 {object} dto.Response{data=integrationapp.ReconciliationRunResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/reconciliation-runs/{id} [get]
func (h *AdminHandler) GetRun(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid run ID")
		return
	}

	run, err := h.runs.GetRun(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, run)
}

func (h *AdminHandler) handleGatewayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, integration.ErrGatewayShopRequired):
		h.BadRequest(c, "shop is required")
		return
	case errors.Is(err, integration.ErrGatewayQueryRequired):
		h.BadRequest(c, "query is required")
		return
	}

	logger.L(c.Request.Context()).Warn("GraphQL passthrough failed", zap.Error(err))
	if gwErr, ok := ecommerce.IsGatewayError(err); ok {
		h.ErrorWithCode(c, dto.ErrCodeGateway, gwErr.Err.Error())
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}
