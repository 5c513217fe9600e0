package ecommerce

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/fulfillment-router/internal/domain/integration"
)

// ShopifyCompanyAdapter implements integration.CompanyDirectory over the GraphQL gateway
type ShopifyCompanyAdapter struct {
	gateway integration.GraphQLGateway
}

// NewShopifyCompanyAdapter creates a new company adapter
func NewShopifyCompanyAdapter(gateway integration.GraphQLGateway) *ShopifyCompanyAdapter {
	return &ShopifyCompanyAdapter{gateway: gateway}
}

// FetchCustomerCompany returns the customer's rep code and the company of the
// first contact profile. A missing customer returns nil.
func (a *ShopifyCompanyAdapter) FetchCustomerCompany(ctx context.Context, shop, customerID string) (*integration.CustomerCompany, error) {
	var data ShopifyCustomerCompanyData
	if err := a.query(ctx, shop, customerCompanyQuery, map[string]any{"id": customerID}, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	cc := &integration.CustomerCompany{
		DisplayName: data.Customer.DisplayName,
		Email:       data.Customer.Email,
	}
	if data.Customer.Metafield != nil {
		cc.RepCode = data.Customer.Metafield.Value
	}
	if len(data.Customer.CompanyContactProfiles) > 0 && data.Customer.CompanyContactProfiles[0].Company != nil {
		company := data.Customer.CompanyContactProfiles[0].Company.toDomain()
		cc.Company = &company
	}
	return cc, nil
}

// searchTermEscaper escapes a value for a quoted search syntax term
var searchTermEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ListRepCompanies searches companies by the custom.rep_codes metafield
func (a *ShopifyCompanyAdapter) ListRepCompanies(ctx context.Context, shop, repCode string) ([]integration.Company, error) {
	search := fmt.Sprintf(`metafields.custom.rep_codes:"%s"`, searchTermEscaper.Replace(repCode))

	var data ShopifyCompaniesData
	if err := a.query(ctx, shop, repCompaniesQuery, map[string]any{"query": search}, &data); err != nil {
		return nil, err
	}

	companies := make([]integration.Company, 0, len(data.Companies.Edges))
	for _, edge := range data.Companies.Edges {
		companies = append(companies, edge.Node.toDomain())
	}
	return companies, nil
}

// ListCompanyContactIDs returns the IDs of the customer's company contact profiles
func (a *ShopifyCompanyAdapter) ListCompanyContactIDs(ctx context.Context, shop, customerID string) ([]string, error) {
	var data ShopifyContactProfilesData
	if err := a.query(ctx, shop, customerContactProfilesQuery, map[string]any{"id": customerID}, &data); err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	if data.Customer == nil {
		return ids, nil
	}
	for _, profile := range data.Customer.CompanyContactProfiles {
		ids = append(ids, profile.ID)
	}
	return ids, nil
}

// RemoveCompanyContact issues companyContactRemoveFromCompany
func (a *ShopifyCompanyAdapter) RemoveCompanyContact(ctx context.Context, shop, companyContactID string) ([]integration.UserError, error) {
	var data ShopifyContactRemoveData
	if err := a.query(ctx, shop, companyContactRemoveMutation, map[string]any{"companyContactId": companyContactID}, &data); err != nil {
		return nil, err
	}
	if data.CompanyContactRemoveFromCompany == nil {
		return nil, fmt.Errorf("%w: companyContactRemoveFromCompany payload missing", integration.ErrPlatformInvalidResponse)
	}
	return data.CompanyContactRemoveFromCompany.UserErrors, nil
}

// AssignCustomerAsContact issues companyAssignCustomerAsContact
func (a *ShopifyCompanyAdapter) AssignCustomerAsContact(ctx context.Context, shop, companyID, customerID string) ([]integration.UserError, error) {
	var data ShopifyAssignContactData
	err := a.query(ctx, shop, companyAssignCustomerMutation, map[string]any{
		"companyId":  companyID,
		"customerId": customerID,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.CompanyAssignCustomerAsContact == nil {
		return nil, fmt.Errorf("%w: companyAssignCustomerAsContact payload missing", integration.ErrPlatformInvalidResponse)
	}
	return data.CompanyAssignCustomerAsContact.UserErrors, nil
}

// query executes a GraphQL operation and decodes its data into v.
// GraphQL errors without usable data fail the call.
func (a *ShopifyCompanyAdapter) query(ctx context.Context, shop, query string, variables map[string]any, v any) error {
	result, err := a.gateway.Execute(ctx, shop, query, variables)
	if err != nil {
		return err
	}
	return result.DecodeData(v)
}
