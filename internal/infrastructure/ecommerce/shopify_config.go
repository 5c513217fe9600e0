package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ShopifyConfig holds configuration for the Shopify Admin GraphQL API
type ShopifyConfig struct {
	// AdminToken is the Admin API access token sent as X-Shopify-Access-Token
	AdminToken string
	// APIVersion is the Admin API version segment of the endpoint path
	APIVersion string
	// WebhookSecret signs webhook deliveries (X-Shopify-Hmac-Sha256)
	WebhookSecret string
	// APISecret is the app secret used to sign app proxy requests
	APISecret string
	// StoreDomain is the shop used by the storefront proxy when the request names none
	StoreDomain string
	// APIBaseURL overrides https://{shop} as the endpoint origin
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ShopifyDefaultAPIVersion is the Admin API version used when none is configured
	ShopifyDefaultAPIVersion = "2026-04"
	// ShopifyAccessTokenHeader carries the Admin API token
	ShopifyAccessTokenHeader = "X-Shopify-Access-Token"

	// Webhook delivery headers
	ShopifyHmacHeader       = "X-Shopify-Hmac-Sha256"
	ShopifyTopicHeader      = "X-Shopify-Topic"
	ShopifyWebhookIDHeader  = "X-Shopify-Webhook-Id"
	ShopifyShopDomainHeader = "X-Shopify-Shop-Domain"
	ShopifyAPIVersionHeader = "X-Shopify-API-Version"

	shopifyDefaultTimeoutSeconds = 30
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingAdminToken = errors.New("shopify: admin token is required")
	ErrShopifyConfigInvalidBaseURL    = errors.New("shopify: invalid API base URL")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(adminToken string) *ShopifyConfig {
	return &ShopifyConfig{
		AdminToken:     adminToken,
		APIVersion:     ShopifyDefaultAPIVersion,
		TimeoutSeconds: shopifyDefaultTimeoutSeconds,
	}
}

// Validate validates the configuration and fills in defaults
func (c *ShopifyConfig) Validate() error {
	if c.AdminToken == "" {
		return ErrShopifyConfigMissingAdminToken
	}
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrShopifyConfigInvalidBaseURL
		}
	}
	if c.APIVersion == "" {
		c.APIVersion = ShopifyDefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = shopifyDefaultTimeoutSeconds
	}
	return nil
}

// GraphQLEndpoint returns the Admin GraphQL URL for a shop
func (c *ShopifyConfig) GraphQLEndpoint(shop string) string {
	origin := "https://" + shop
	if c.APIBaseURL != "" {
		origin = strings.TrimRight(c.APIBaseURL, "/")
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", origin, c.APIVersion)
}

// SignWebhook returns the base64 HMAC-SHA256 of a webhook body
func (c *ShopifyConfig) SignWebhook(body []byte) string {
	h := hmac.New(sha256.New, []byte(c.WebhookSecret))
	h.Write(body)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyWebhook checks the X-Shopify-Hmac-Sha256 header against the raw body.
// It always fails when no webhook secret is configured.
func (c *ShopifyConfig) VerifyWebhook(body []byte, signature string) bool {
	if c.WebhookSecret == "" || signature == "" {
		return false
	}
	expected := c.SignWebhook(body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignProxy generates the app proxy signature.
// Parameters are sorted by key and written as key=value without separators,
// multiple values of one key joined by commas; the signature parameter itself is excluded.
func (c *ShopifyConfig) SignProxy(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(strings.Join(params[k], ","))
	}

	h := hmac.New(sha256.New, []byte(c.APISecret))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyProxySignature checks the signature query parameter of an app proxy request
func (c *ShopifyConfig) VerifyProxySignature(query url.Values) bool {
	signature := query.Get("signature")
	if c.APISecret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(c.SignProxy(query)), []byte(signature))
}
