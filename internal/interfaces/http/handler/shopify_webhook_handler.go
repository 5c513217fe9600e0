package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/ecommerce"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderCreatedProcessor runs the reconciliation for an orders/create delivery
type OrderCreatedProcessor interface {
	HandleOrderCreated(ctx context.Context, body []byte, delivery integration.WebhookDelivery) (*integrationapp.ReconcileResult, error)
}

// WebhookVerifier checks the X-Shopify-Hmac-Sha256 signature of a raw body
type WebhookVerifier interface {
	VerifyWebhook(body []byte, signature string) bool
}

// ShopifyWebhookConfig controls signature verification and body limits
type ShopifyWebhookConfig struct {
	// VerifySignatures rejects deliveries whose HMAC does not match (production)
	VerifySignatures bool
	MaxBodySize      int64
}

// ShopifyWebhookHandler handles Shopify webhook endpoints.
// These endpoints are called by Shopify and are authenticated by HMAC, not JWT.
type ShopifyWebhookHandler struct {
	orders   OrderCreatedProcessor
	verifier WebhookVerifier
	config   ShopifyWebhookConfig
}

// NewShopifyWebhookHandler creates a new ShopifyWebhookHandler
func NewShopifyWebhookHandler(orders OrderCreatedProcessor, verifier WebhookVerifier, config ShopifyWebhookConfig) *ShopifyWebhookHandler {
	return &ShopifyWebhookHandler{
		orders:   orders,
		verifier: verifier,
		config:   config,
	}
}

// HandleOrderCreated handles POST /webhooks/orders/create.
//
// Responses: 200 with {success, moveResults} on completion (including duplicates
// and orders with nothing to move), 400 for unusable payloads, 401 for bad
// signatures, 413 for oversized bodies and 500 when the run cannot proceed.
//
// @ID           handleOrdersCreateWebhook
// @Summary      Shopify orders/create webhook
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Shopify-Hmac-Sha256 header string false "Body signature, required in production"
// @Param        X-Shopify-Shop-Domain header string false "Shop domain"
// @Param        X-Shopify-Webhook-Id header string false "Delivery ID used for de-duplication"
// @Param        payload body object true "Order payload"
// @Success      200 {object} integrationapp.ReconcileResult
// @Failure      400 {object} dto.WebhookFailure
// @Failure      401 {object} dto.WebhookFailure
// @Failure      413 {object} dto.WebhookFailure
// @Failure      500 {object} dto.WebhookFailure
// @Router       /webhooks/orders/create [post]
func (h *ShopifyWebhookHandler) HandleOrderCreated(c *gin.Context) {
	ctx := c.Request.Context()

	body, mode, status := h.readVerified(c)
	if status != 0 {
		c.JSON(status, dto.WebhookFailure{Success: false})
		return
	}

	result, err := h.orders.HandleOrderCreated(ctx, body, webhookDelivery(c, mode))
	if err != nil {
		status := orderWebhookErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.L(ctx).Error("Order webhook failed", zap.Error(err))
		}
		c.JSON(status, dto.WebhookFailure{Success: false})
		return
	}

	c.JSON(http.StatusOK, result)
}

func orderWebhookErrorStatus(err error) int {
	switch {
	case errors.Is(err, integration.ErrOrderEventInvalidPayload),
		errors.Is(err, integration.ErrOrderEventMissingOrderID):
		return http.StatusBadRequest
	default:
		// Missing shop, fetch failures and anything unexpected
		return http.StatusInternalServerError
	}
}

// fulfillmentOrdersMovedPayload is the subset of the fulfillment_orders/moved body that gets logged
type fulfillmentOrdersMovedPayload struct {
	OriginalFulfillmentOrder struct {
		ID                 string `json:"id"`
		Status             string `json:"status"`
		AssignedLocationID string `json:"assigned_location_id"`
	} `json:"original_fulfillment_order"`
	MovedFulfillmentOrder struct {
		ID                 string `json:"id"`
		Status             string `json:"status"`
		AssignedLocationID string `json:"assigned_location_id"`
	} `json:"moved_fulfillment_order"`
	DestinationLocationID string `json:"destination_location_id"`
}

// HandleFulfillmentOrdersMoved handles POST /webhooks/fulfillment_orders/moved.
// Shopify sends it after a move completes; it is only logged.
//
// @ID           handleFulfillmentOrdersMovedWebhook
// @Summary      Shopify fulfillment_orders/moved webhook
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Param        X-Shopify-Hmac-Sha256 header string false "Body signature, required in production"
// @Param        payload body object true "Move confirmation"
// @Success      200 {string} string "OK"
// @Failure      400 {string} string
// @Failure      401 {string} string
// @Router       /webhooks/fulfillment_orders/moved [post]
func (h *ShopifyWebhookHandler) HandleFulfillmentOrdersMoved(c *gin.Context) {
	body, _, status := h.readVerified(c)
	if status != 0 {
		c.String(status, http.StatusText(status))
		return
	}

	var payload fulfillmentOrdersMovedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.L(c.Request.Context()).Warn("Rejected fulfillment_orders/moved webhook", zap.Error(err))
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}

	logger.L(c.Request.Context()).Info("Fulfillment order move confirmed",
		zap.String("shop_domain", c.GetHeader(ecommerce.ShopifyShopDomainHeader)),
		zap.String("webhook_id", c.GetHeader(ecommerce.ShopifyWebhookIDHeader)),
		zap.String("original_fulfillment_order_id", payload.OriginalFulfillmentOrder.ID),
		zap.String("original_status", payload.OriginalFulfillmentOrder.Status),
		zap.String("moved_fulfillment_order_id", payload.MovedFulfillmentOrder.ID),
		zap.String("destination_location_id", payload.DestinationLocationID),
	)

	c.String(http.StatusOK, "OK")
}

// readVerified reads the raw body and checks its signature when verification
// is on. A non-zero status means the request was rejected.
func (h *ShopifyWebhookHandler) readVerified(c *gin.Context) ([]byte, integration.PayloadMode, int) {
	ctx := c.Request.Context()

	body, err := readLimitedBody(c, h.config.MaxBodySize)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			logger.L(ctx).Warn("Webhook body exceeds size limit", zap.Int64("limit", h.config.MaxBodySize))
			return nil, "", http.StatusRequestEntityTooLarge
		}
		logger.L(ctx).Warn("Failed to read webhook body", zap.Error(err))
		return nil, "", http.StatusBadRequest
	}

	if !h.config.VerifySignatures {
		return body, integration.PayloadModeTrusted, 0
	}

	if !h.verifier.VerifyWebhook(body, c.GetHeader(ecommerce.ShopifyHmacHeader)) {
		logger.L(ctx).Warn("Webhook signature verification failed",
			zap.String("topic", c.GetHeader(ecommerce.ShopifyTopicHeader)),
			zap.String("shop_domain", c.GetHeader(ecommerce.ShopifyShopDomainHeader)),
		)
		return nil, "", http.StatusUnauthorized
	}
	return body, integration.PayloadModeVerified, 0
}
