package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	// Gateway input errors
	ErrGatewayShopRequired  = errors.New("integration: shop domain is required")
	ErrGatewayQueryRequired = errors.New("integration: graphql query is required")

	// Transport errors (network, HTTP status, malformed body)
	ErrPlatformNotConfigured    = errors.New("integration: platform not configured")
	ErrPlatformUnavailable      = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed    = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse  = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed       = errors.New("integration: platform authentication failed")
	ErrPlatformRateLimited      = errors.New("integration: platform rate limited")
	ErrPlatformInvalidSignature = errors.New("integration: invalid platform signature")

	// Semantic errors reported inside a well-formed GraphQL response
	ErrPlatformGraphQL = errors.New("integration: graphql operation returned errors")
	ErrPlatformUser    = errors.New("integration: platform rejected mutation")
)

// IsTransportError returns true if err is a gateway transport/parse failure rather than
// a semantic error reported by the platform.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrPlatformUnavailable) ||
		errors.Is(err, ErrPlatformRequestFailed) ||
		errors.Is(err, ErrPlatformInvalidResponse) ||
		errors.Is(err, ErrPlatformAuthFailed) ||
		errors.Is(err, ErrPlatformRateLimited)
}

// ---------------------------------------------------------------------------
// GraphQL Result
// ---------------------------------------------------------------------------

// GraphQLError is an operation or field level error from a GraphQL response
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLResult is a syntactically valid GraphQL response.
// Data and Errors may both be present: GraphQL allows partial success.
type GraphQLResult struct {
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []GraphQLError  `json:"errors,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

// HasErrors returns true if the response carries an errors array
func (r *GraphQLResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasData returns true if the response carries a non-null data object
func (r *GraphQLResult) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// FirstErrorMessage returns the message of the first GraphQL error, or empty string
func (r *GraphQLResult) FirstErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Err returns an ErrPlatformGraphQL wrapped error when the response carries errors
func (r *GraphQLResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPlatformGraphQL, r.FirstErrorMessage())
}

// DecodeData unmarshals the data object into v
func (r *GraphQLResult) DecodeData(v any) error {
	if !r.HasData() {
		if err := r.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: response has no data", ErrPlatformInvalidResponse)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrPlatformInvalidResponse, err)
	}
	return nil
}

// UserError is a semantic, field-level rejection returned in a mutation payload
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// FirstUserErrorMessage returns the first user error message, or empty string
func FirstUserErrorMessage(errs []UserError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Message
}

// ---------------------------------------------------------------------------
// Port Interfaces
// ---------------------------------------------------------------------------

// GraphQLGateway defines the port for the platform's Admin GraphQL endpoint.
// Implementations perform exactly one round trip per call and never retry.
// A response with an errors array is returned as a result, not as an error;
// the error return is reserved for transport and parse failures.
type GraphQLGateway interface {
	Execute(ctx context.Context, shop, query string, variables map[string]any) (*GraphQLResult, error)
}

// FulfillmentPlatform defines the port for reading and relocating fulfillment orders
type FulfillmentPlatform interface {
	// FetchFulfillmentOrders returns one page of the order's fulfillment orders in platform order
	FetchFulfillmentOrders(ctx context.Context, shop, orderID string, page PageRequest) (*FulfillmentOrderPage, error)

	// MoveFulfillmentOrder requests that the fulfillment order be moved to the target location.
	// Platform user errors are returned inside MoveResponse; the error return is for
	// transport failures and operation-level GraphQL errors.
	MoveFulfillmentOrder(ctx context.Context, shop, fulfillmentOrderID string, target TargetLocation) (*MoveResponse, error)
}

// CompanyDirectory defines the port for B2B company operations used by the storefront proxy
type CompanyDirectory interface {
	// FetchCustomerCompany returns the customer's rep code and first company, if any
	FetchCustomerCompany(ctx context.Context, shop, customerID string) (*CustomerCompany, error)

	// ListRepCompanies returns companies whose rep codes metafield matches repCode
	ListRepCompanies(ctx context.Context, shop, repCode string) ([]Company, error)

	// ListCompanyContactIDs returns the customer's current company contact profile IDs
	ListCompanyContactIDs(ctx context.Context, shop, customerID string) ([]string, error)

	// RemoveCompanyContact removes a company contact from its company
	RemoveCompanyContact(ctx context.Context, shop, companyContactID string) ([]UserError, error)

	// AssignCustomerAsContact makes the customer a contact of the company
	AssignCustomerAsContact(ctx context.Context, shop, companyID, customerID string) ([]UserError, error)
}

// PayloadArchive defines the port for archiving raw inbound webhook payloads
type PayloadArchive interface {
	// Store persists the payload and returns the storage key
	Store(ctx context.Context, delivery WebhookDelivery, payload []byte) (string, error)
}
