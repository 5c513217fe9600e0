package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/ecommerce"
	"github.com/gin-gonic/gin"
)

// DefaultWebhookMaxBodySize bounds webhook bodies when no limit is configured
const DefaultWebhookMaxBodySize int64 = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// readLimitedBody reads the whole body, failing with errBodyTooLarge when it
// exceeds limit. The raw bytes are needed for signature checks.
func readLimitedBody(c *gin.Context, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultWebhookMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, errBodyTooLarge
	}
	return body, nil
}

// webhookDelivery collects the Shopify delivery headers
func webhookDelivery(c *gin.Context, mode integration.PayloadMode) integration.WebhookDelivery {
	return integration.WebhookDelivery{
		ID:         c.GetHeader(ecommerce.ShopifyWebhookIDHeader),
		Topic:      c.GetHeader(ecommerce.ShopifyTopicHeader),
		ShopDomain: c.GetHeader(ecommerce.ShopifyShopDomainHeader),
		APIVersion: c.GetHeader(ecommerce.ShopifyAPIVersionHeader),
		Mode:       mode,
	}
}
