package ecommerce

import (
	"github.com/erp/fulfillment-router/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Common Shopify Types
// ---------------------------------------------------------------------------

// ShopifyGraphQLRequest is the body of an Admin GraphQL call
type ShopifyGraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// ShopifyNode is an object reference carrying only its global ID
type ShopifyNode struct {
	ID string `json:"id"`
}

// ShopifyMetafield is a metafield value
type ShopifyMetafield struct {
	Value string `json:"value"`
}

// ShopifyPageInfo is the connection pagination info
type ShopifyPageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// ---------------------------------------------------------------------------
// Fulfillment Order Types
// ---------------------------------------------------------------------------

// ShopifyLocation is a merchant location
type ShopifyLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShopifyFulfillmentOrder is a fulfillment order node
type ShopifyFulfillmentOrder struct {
	ID               string `json:"id"`
	AssignedLocation *struct {
		Location *ShopifyLocation `json:"location"`
	} `json:"assignedLocation"`
}

// ShopifyFulfillmentOrdersData is the data object of the fulfillment orders query
type ShopifyFulfillmentOrdersData struct {
	Order *struct {
		FulfillmentOrders struct {
			PageInfo ShopifyPageInfo `json:"pageInfo"`
			Edges    []struct {
				Node ShopifyFulfillmentOrder `json:"node"`
			} `json:"edges"`
		} `json:"fulfillmentOrders"`
	} `json:"order"`
}

// ShopifyFulfillmentOrderMoveData is the data object of the fulfillmentOrderMove mutation
type ShopifyFulfillmentOrderMoveData struct {
	FulfillmentOrderMove *struct {
		MovedFulfillmentOrder     *ShopifyFulfillmentOrder `json:"movedFulfillmentOrder"`
		OriginalFulfillmentOrder  *ShopifyNode             `json:"originalFulfillmentOrder"`
		RemainingFulfillmentOrder *ShopifyNode             `json:"remainingFulfillmentOrder"`
		UserErrors                []integration.UserError  `json:"userErrors"`
	} `json:"fulfillmentOrderMove"`
}

// toDomain converts a fulfillment order node to the domain type
func (fo *ShopifyFulfillmentOrder) toDomain() integration.FulfillmentOrder {
	out := integration.FulfillmentOrder{ID: fo.ID}
	if fo.AssignedLocation != nil && fo.AssignedLocation.Location != nil {
		id := fo.AssignedLocation.Location.ID
		out.AssignedLocationID = &id
		out.AssignedLocationName = fo.AssignedLocation.Location.Name
	}
	return out
}

// ---------------------------------------------------------------------------
// Company Types
// ---------------------------------------------------------------------------

// ShopifyCompanyLocation is a company location node
type ShopifyCompanyLocation struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ShippingAddress *struct {
		FormattedAddress []string `json:"formattedAddress"`
	} `json:"shippingAddress"`
}

// ShopifyCompany is a B2B company node
type ShopifyCompany struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ExternalID string            `json:"externalId"`
	Metafield  *ShopifyMetafield `json:"metafield"`
	Locations  struct {
		Nodes []ShopifyCompanyLocation `json:"nodes"`
	} `json:"locations"`
}

// toDomain converts a company node to the domain type
func (c *ShopifyCompany) toDomain() integration.Company {
	company := integration.Company{
		ID:         c.ID,
		Name:       c.Name,
		ExternalID: c.ExternalID,
		Locations:  make([]integration.CompanyLocation, 0, len(c.Locations.Nodes)),
	}
	if c.Metafield != nil {
		company.RepCodes = c.Metafield.Value
	}
	for _, loc := range c.Locations.Nodes {
		location := integration.CompanyLocation{ID: loc.ID, Name: loc.Name}
		if loc.ShippingAddress != nil {
			location.FormattedAddress = loc.ShippingAddress.FormattedAddress
		}
		company.Locations = append(company.Locations, location)
	}
	return company
}

// ShopifyCustomerCompanyData is the data object of the customer company query
type ShopifyCustomerCompanyData struct {
	Customer *struct {
		DisplayName            string            `json:"displayName"`
		Email                  string            `json:"email"`
		Metafield              *ShopifyMetafield `json:"metafield"`
		CompanyContactProfiles []struct {
			ID      string          `json:"id"`
			Company *ShopifyCompany `json:"company"`
		} `json:"companyContactProfiles"`
	} `json:"customer"`
}

// ShopifyCompaniesData is the data object of the companies query
type ShopifyCompaniesData struct {
	Companies struct {
		Edges []struct {
			Node ShopifyCompany `json:"node"`
		} `json:"edges"`
	} `json:"companies"`
}

// ShopifyContactProfilesData is the data object of the contact profiles query
type ShopifyContactProfilesData struct {
	Customer *struct {
		CompanyContactProfiles []ShopifyNode `json:"companyContactProfiles"`
	} `json:"customer"`
}

// ShopifyContactRemoveData is the data object of companyContactRemoveFromCompany
type ShopifyContactRemoveData struct {
	CompanyContactRemoveFromCompany *struct {
		RemovedCompanyContactID string                  `json:"removedCompanyContactId"`
		UserErrors              []integration.UserError `json:"userErrors"`
	} `json:"companyContactRemoveFromCompany"`
}

// ShopifyAssignContactData is the data object of companyAssignCustomerAsContact
type ShopifyAssignContactData struct {
	CompanyAssignCustomerAsContact *struct {
		CompanyContact *ShopifyNode             `json:"companyContact"`
		UserErrors     []integration.UserError `json:"userErrors"`
	} `json:"companyAssignCustomerAsContact"`
}
