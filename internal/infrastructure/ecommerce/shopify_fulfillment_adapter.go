package ecommerce

import (
	"context"
	"fmt"

	"github.com/erp/fulfillment-router/internal/domain/integration"
)

// ShopifyFulfillmentAdapter implements integration.FulfillmentPlatform over the GraphQL gateway
type ShopifyFulfillmentAdapter struct {
	gateway integration.GraphQLGateway
}

// NewShopifyFulfillmentAdapter creates a new fulfillment adapter
func NewShopifyFulfillmentAdapter(gateway integration.GraphQLGateway) *ShopifyFulfillmentAdapter {
	return &ShopifyFulfillmentAdapter{gateway: gateway}
}

// FetchFulfillmentOrders returns one page of the order's fulfillment orders.
// A null order yields an empty page with OrderFound=false. GraphQL errors fail
// the fetch even when partial data is present.
func (a *ShopifyFulfillmentAdapter) FetchFulfillmentOrders(
	ctx context.Context,
	shop, orderID string,
	page integration.PageRequest,
) (*integration.FulfillmentOrderPage, error) {
	variables := map[string]any{
		"orderId": integration.OrderGlobalID(orderID),
		"first":   page.First,
		"after":   nil,
	}
	if page.After != "" {
		variables["after"] = page.After
	}

	result, err := a.gateway.Execute(ctx, shop, fulfillmentOrdersQuery, variables)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	var data ShopifyFulfillmentOrdersData
	if err := result.DecodeData(&data); err != nil {
		return nil, err
	}

	out := &integration.FulfillmentOrderPage{Orders: make([]integration.FulfillmentOrder, 0)}
	if data.Order == nil {
		return out, nil
	}
	out.OrderFound = true
	connection := data.Order.FulfillmentOrders
	for _, edge := range connection.Edges {
		out.Orders = append(out.Orders, edge.Node.toDomain())
	}
	out.HasNextPage = connection.PageInfo.HasNextPage
	out.EndCursor = connection.PageInfo.EndCursor
	return out, nil
}

// MoveFulfillmentOrder issues fulfillmentOrderMove. User errors are returned in the response.
func (a *ShopifyFulfillmentAdapter) MoveFulfillmentOrder(
	ctx context.Context,
	shop, fulfillmentOrderID string,
	target integration.TargetLocation,
) (*integration.MoveResponse, error) {
	result, err := a.gateway.Execute(ctx, shop, fulfillmentOrderMoveMutation, map[string]any{
		"fulfillmentOrderId": fulfillmentOrderID,
		"newLocationId":      target.String(),
	})
	if err != nil {
		return nil, err
	}

	var data ShopifyFulfillmentOrderMoveData
	if result.HasData() {
		if err := result.DecodeData(&data); err != nil {
			return nil, err
		}
	}
	if data.FulfillmentOrderMove == nil {
		if err := result.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fulfillmentOrderMove payload missing", integration.ErrPlatformInvalidResponse)
	}

	payload := data.FulfillmentOrderMove
	resp := &integration.MoveResponse{UserErrors: payload.UserErrors}
	if payload.MovedFulfillmentOrder != nil {
		resp.MovedFulfillmentOrderID = payload.MovedFulfillmentOrder.ID
		moved := payload.MovedFulfillmentOrder.toDomain()
		if moved.AssignedLocationID != nil {
			resp.MovedLocationID = *moved.AssignedLocationID
		}
	}
	if payload.OriginalFulfillmentOrder != nil {
		resp.OriginalFulfillmentOrderID = payload.OriginalFulfillmentOrder.ID
	}
	if payload.RemainingFulfillmentOrder != nil {
		resp.RemainingFulfillmentOrderID = payload.RemainingFulfillmentOrder.ID
	}
	// operation-level errors with an empty payload fail the move
	if len(resp.UserErrors) == 0 && resp.MovedFulfillmentOrderID == "" {
		if err := result.Err(); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
