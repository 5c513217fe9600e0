package integration

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// Order event errors
var (
	// ErrOrderEventInvalidPayload is returned when the webhook body is not a JSON order object
	ErrOrderEventInvalidPayload = errors.New("integration: invalid order event payload")
	// ErrOrderEventMissingOrderID is returned when neither the global ID nor the numeric ID is present
	ErrOrderEventMissingOrderID = errors.New("integration: order event has no order identifier")
	// ErrOrderEventMissingShop is returned when the shop domain is neither in the header nor the payload.
	// The run cannot proceed without a shop, so callers treat it as unrecoverable.
	ErrOrderEventMissingShop = errors.New("integration: shop domain not found in header or payload")
)

// FulfillmentModeAttribute is the note attribute name carrying the fulfillment mode
const FulfillmentModeAttribute = "fulfillment_mode"

// ---------------------------------------------------------------------------
// PayloadMode
// ---------------------------------------------------------------------------

// PayloadMode tells how an inbound payload was authenticated
type PayloadMode string

const (
	// PayloadModeVerified indicates the payload signature was checked against the webhook secret
	PayloadModeVerified PayloadMode = "VERIFIED"
	// PayloadModeTrusted indicates a raw payload accepted without verification (development)
	PayloadModeTrusted PayloadMode = "TRUSTED"
)

// IsValid returns true if the mode is valid
func (m PayloadMode) IsValid() bool {
	return m == PayloadModeVerified || m == PayloadModeTrusted
}

// String returns the string representation of PayloadMode
func (m PayloadMode) String() string {
	return string(m)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// WebhookDelivery carries the delivery metadata sent as webhook headers
type WebhookDelivery struct {
	// ID is the platform delivery ID (X-Shopify-Webhook-Id), stable across redeliveries
	ID string
	// Topic is the webhook topic (e.g. orders/create)
	Topic string
	// ShopDomain is the shop domain header value, empty when absent
	ShopDomain string
	// APIVersion is the API version the payload was rendered with
	APIVersion string
	// Mode tells whether the payload was verified
	Mode PayloadMode
}

// NoteAttribute is a name/value pair attached to an order at checkout
type NoteAttribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// OrderEvent is the canonical, immutable view of an inbound order webhook.
// It is built once per request and discarded after the run.
type OrderEvent struct {
	// OrderID is the platform-qualified global ID, or the bare numeric ID when absent
	OrderID string
	// ShopDomain is the shop the order belongs to
	ShopDomain string
	// FulfillmentModeHint is the value of the fulfillment_mode note attribute, nil when absent
	FulfillmentModeHint *string
	// OrderName is the human readable order name (e.g. #1001)
	OrderName string
	// TotalPrice is the order total in the shop currency
	TotalPrice decimal.Decimal
	// Currency is the shop currency code
	Currency string
	// Delivery is the webhook delivery metadata
	Delivery WebhookDelivery
	// Raw is the original payload
	Raw json.RawMessage
}

// HasFulfillmentMode returns true if the order carries a fulfillment mode hint
func (e *OrderEvent) HasFulfillmentMode() bool {
	return e.FulfillmentModeHint != nil && *e.FulfillmentModeHint != ""
}

// FulfillmentMode returns the hinted mode, or empty when absent
func (e *OrderEvent) FulfillmentMode() FulfillmentMode {
	if e.FulfillmentModeHint == nil {
		return ""
	}
	return FulfillmentMode(*e.FulfillmentModeHint)
}
