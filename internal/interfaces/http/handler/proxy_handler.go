package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CompanyActionHandler dispatches storefront company actions
type CompanyActionHandler interface {
	HandleAction(ctx context.Context, shop string, req integrationapp.ProxyRequest) (any, error)
}

// ProxySignatureVerifier checks the signature query parameter Shopify adds to app proxy requests
type ProxySignatureVerifier interface {
	VerifyProxySignature(query url.Values) bool
}

// ProxyConfig controls app proxy request handling
type ProxyConfig struct {
	VerifySignatures bool
	// StoreDomain takes precedence over the shop query parameter
	StoreDomain string
}

// ProxyHandler serves the storefront app proxy. Errors use the {"error": msg}
// body the storefront script expects rather than the API envelope.
type ProxyHandler struct {
	companies CompanyActionHandler
	verifier  ProxySignatureVerifier
	config    ProxyConfig
}

// NewProxyHandler creates a new ProxyHandler
func NewProxyHandler(companies CompanyActionHandler, verifier ProxySignatureVerifier, config ProxyConfig) *ProxyHandler {
	return &ProxyHandler{
		companies: companies,
		verifier:  verifier,
		config:    config,
	}
}

// Ping godoc
// @ID           pingProxy
// @Summary      App proxy liveness
// @Tags         proxy
// @Produce      json
// @Param        signature query string false "App proxy signature, required in production"
// @Success      200 {object} dto.ProxyPing
// @Failure      401 {object} dto.ProxyErrorBody
// @Router       /proxy [get]
func (h *ProxyHandler) Ping(c *gin.Context) {
	if !h.verified(c) {
		c.JSON(http.StatusUnauthorized, dto.ProxyErrorBody{Error: "Invalid signature"})
		return
	}
	c.JSON(http.StatusOK, dto.ProxyPing{OK: true})
}

// HandleAction godoc
// @ID           handleProxyAction
// @Summary      Run a storefront company action
// @Description  actionType is one of fetchCompany, fetchRepCompanies or assignCompany
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Param        shop query string false "Shop domain, used when no store domain is configured"
// @Param        signature query string false "App proxy signature, required in production"
// @Param        request body integrationapp.ProxyRequest true "Company action"
// @Success      200 {object} integrationapp.FetchCompanyResponse
// @Success      200 {object} integrationapp.FetchRepCompaniesResponse
// @Success      200 {object} integrationapp.AssignCompanyResponse
// @Failure      400 {object} dto.ProxyErrorBody
// @Failure      401 {object} dto.ProxyErrorBody
// @Failure      429 {object} dto.ProxyErrorBody
// @Failure      500 {object} dto.ProxyErrorBody
// @Router       /proxy [post]
func (h *ProxyHandler) HandleAction(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.verified(c) {
		c.JSON(http.StatusUnauthorized, dto.ProxyErrorBody{Error: "Invalid signature"})
		return
	}

	var req integrationapp.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ProxyErrorBody{Error: proxyBindingMessage(err)})
		return
	}

	shop := h.config.StoreDomain
	if shop == "" {
		shop = c.Query("shop")
	}
	if shop == "" {
		c.JSON(http.StatusBadRequest, dto.ProxyErrorBody{Error: "Missing shop"})
		return
	}
	ctx = logger.WithShopDomain(ctx, shop)

	var (
		result any
		err    error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationProxy, shop), func(ctx context.Context) {
		result, err = h.companies.HandleAction(ctx, shop, req)
	})
	if err != nil {
		var proxyErr *integrationapp.ProxyError
		if errors.As(err, &proxyErr) {
			c.JSON(http.StatusBadRequest, dto.ProxyErrorBody{Error: proxyErr.Message})
			return
		}
		logger.L(ctx).Error("Proxy action failed",
			zap.String("action_type", req.ActionType),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ProxyErrorBody{Error: "Internal proxy error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProxyHandler) verified(c *gin.Context) bool {
	if !h.config.VerifySignatures {
		return true
	}
	if h.verifier.VerifyProxySignature(c.Request.URL.Query()) {
		return true
	}
	logger.L(c.Request.Context()).Warn("App proxy signature verification failed",
		zap.String("shop", c.Query("shop")),
	)
	return false
}

func proxyBindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Invalid " + verrs[0].Field()
	}
	return "Invalid request body"
}
