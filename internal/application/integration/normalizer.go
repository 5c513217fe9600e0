package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// orderPayload is the subset of the order webhook body the router reads
type orderPayload struct {
	ID                any                         `json:"id"`
	AdminGraphQLAPIID string                      `json:"admin_graphql_api_id"`
	ShopDomain        string                      `json:"shop_domain"`
	Name              string                      `json:"name"`
	TotalPrice        any                         `json:"total_price"`
	Currency          string                      `json:"currency"`
	NoteAttributes    []integration.NoteAttribute `json:"note_attributes"`
}

// NormalizeOrderEvent builds the canonical OrderEvent from a raw order webhook body.
// Verified and trusted payloads produce the same event; only Delivery.Mode differs.
func NormalizeOrderEvent(body []byte, delivery integration.WebhookDelivery) (*integration.OrderEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, integration.ErrOrderEventInvalidPayload
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var payload orderPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrOrderEventInvalidPayload, err)
	}

	orderID := strings.TrimSpace(payload.AdminGraphQLAPIID)
	if orderID == "" {
		orderID = scalarString(payload.ID)
	}
	if orderID == "" {
		return nil, integration.ErrOrderEventMissingOrderID
	}

	shop := strings.TrimSpace(delivery.ShopDomain)
	if shop == "" {
		shop = strings.TrimSpace(payload.ShopDomain)
	}
	if shop == "" {
		return nil, integration.ErrOrderEventMissingShop
	}

	event := &integration.OrderEvent{
		OrderID:             orderID,
		ShopDomain:          shop,
		FulfillmentModeHint: fulfillmentModeHint(payload.NoteAttributes),
		OrderName:           payload.Name,
		Currency:            payload.Currency,
		Delivery:            delivery,
		Raw:                 json.RawMessage(trimmed),
	}
	if price, err := decimal.NewFromString(scalarString(payload.TotalPrice)); err == nil {
		event.TotalPrice = price
	}
	return event, nil
}

// fulfillmentModeHint returns the value of the first fulfillment_mode note attribute.
// Only the first matching entry is considered, even when its value is not a string.
func fulfillmentModeHint(attrs []integration.NoteAttribute) *string {
	for _, attr := range attrs {
		if attr.Name != integration.FulfillmentModeAttribute {
			continue
		}
		value, ok := attr.Value.(string)
		if !ok {
			return nil
		}
		return &value
	}
	return nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case json.Number:
		return val.String()
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}
