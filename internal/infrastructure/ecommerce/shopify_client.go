package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
)

const (
	// maxShopifyResponseSize limits the response body size to prevent memory exhaustion
	maxShopifyResponseSize = 10 * 1024 * 1024
)

// GatewayError is a transport failure of an Admin GraphQL call.
// Err is one of the integration platform sentinels; StatusCode is zero when no
// HTTP response was received.
type GatewayError struct {
	StatusCode int
	Err        error
	Detail     string
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ShopifyGraphQLClient implements integration.GraphQLGateway against the Shopify Admin API
type ShopifyGraphQLClient struct {
	config     *ShopifyConfig
	httpClient *http.Client
	metrics    *telemetry.FulfillmentMetrics
}

// NewShopifyGraphQLClient creates a new client with the given configuration
func NewShopifyGraphQLClient(config *ShopifyConfig) (*ShopifyGraphQLClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShopifyGraphQLClient{
		config: config,
		httpClient: &http.Client{
			Timeout:   time.Duration(config.TimeoutSeconds) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// SetFulfillmentMetrics sets the metrics collector
func (c *ShopifyGraphQLClient) SetFulfillmentMetrics(fm *telemetry.FulfillmentMetrics) {
	c.metrics = fm
}

// Config returns the client configuration
func (c *ShopifyGraphQLClient) Config() *ShopifyConfig {
	return c.config
}

// Execute performs one Admin GraphQL round trip. A well-formed response that carries
// an errors array is returned as a result; transport and parse failures are
// returned as *GatewayError.
func (c *ShopifyGraphQLClient) Execute(
	ctx context.Context,
	shop, query string,
	variables map[string]any,
) (*integration.GraphQLResult, error) {
	if strings.TrimSpace(shop) == "" {
		return nil, integration.ErrGatewayShopRequired
	}
	if strings.TrimSpace(query) == "" {
		return nil, integration.ErrGatewayQueryRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "shopify.graphql",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrShopDomain, shop),
		telemetry.WithAttribute(telemetry.SpanAttrAPIVersion, c.config.APIVersion),
	)
	defer span.End()

	start := time.Now()
	result, err := c.do(ctx, shop, query, variables)
	elapsed := time.Since(start)

	outcome := telemetry.GatewayOutcomeOK
	switch {
	case err != nil:
		outcome = telemetry.GatewayOutcomeTransportError
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Shopify GraphQL request failed",
			zap.String("shop", shop),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	case result.HasErrors():
		outcome = telemetry.GatewayOutcomeGraphQLError
		telemetry.SetAttributes(span, "graphql_errors", len(result.Errors))
		logger.L(ctx).Warn("Shopify GraphQL returned errors",
			zap.String("shop", shop),
			zap.String("first_error", result.FirstErrorMessage()),
			zap.Int("errors", len(result.Errors)),
		)
	default:
		telemetry.SetOK(span)
		logger.L(ctx).Debug("Shopify GraphQL request completed",
			zap.String("shop", shop),
			zap.Duration("elapsed", elapsed),
		)
	}
	if c.metrics != nil {
		c.metrics.RecordGatewayRequest(ctx, outcome, elapsed)
	}
	return result, err
}

func (c *ShopifyGraphQLClient) do(
	ctx context.Context,
	shop, query string,
	variables map[string]any,
) (*integration.GraphQLResult, error) {
	bodyBytes, err := json.Marshal(ShopifyGraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GraphQLEndpoint(shop), bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(ShopifyAccessTokenHeader, c.config.AdminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Err: integration.ErrPlatformUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: integration.ErrPlatformUnavailable, Detail: err.Error()}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: integration.ErrPlatformAuthFailed}
	case http.StatusTooManyRequests:
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: integration.ErrPlatformRateLimited}
	}

	var result integration.GraphQLResult
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode >= 300 {
		// A non-2xx status with a GraphQL errors body is still a structured result
		if decodeErr == nil && result.HasErrors() {
			return &result, nil
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: integration.ErrPlatformRequestFailed}
	}
	if decodeErr != nil {
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Err:        integration.ErrPlatformInvalidResponse,
			Detail:     decodeErr.Error(),
		}
	}
	if !result.HasData() && !result.HasErrors() {
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Err:        integration.ErrPlatformInvalidResponse,
			Detail:     "response carries neither data nor errors",
		}
	}
	return &result, nil
}

// IsGatewayError reports whether err is a *GatewayError and returns it
func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}
