package integration

import "strings"


// CompanyLocation is a company location with its formatted shipping address
type CompanyLocation struct {
	ID               string
	Name             string
	FormattedAddress []string
}

// Company is a B2B company on the platform
type Company struct {
	ID         string
	Name       string
	ExternalID string
	// RepCodes is the raw value of the custom.rep_codes metafield
	RepCodes  string
	Locations []CompanyLocation
}

// CustomerCompany is a customer's rep code and current company
type CustomerCompany struct {
	// DisplayName is the customer's display name
	DisplayName string
	// Email is the customer's email
	Email string
	// RepCode is the customer's custom.rep_code metafield value, empty when unset
	RepCode string
	// Company is the company of the first contact profile, nil when the customer has none
	Company *Company
}

// CustomerGlobalID expands a numeric customer ID to a global ID
func CustomerGlobalID(customerID string) string {
	return GlobalID("Customer", customerID)
}

// OrderGlobalID expands a numeric order ID to a global ID
func OrderGlobalID(orderID string) string {
	return GlobalID("Order", orderID)
}

// GlobalID expands a numeric resource ID to gid://shopify/<resource>/<id>.
// Values that are already global IDs are returned unchanged.
func GlobalID(resource, id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/" + resource + "/" + id
}
