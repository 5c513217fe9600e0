package integration

import (
	"context"
	"strings"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProxyError is a client-facing rejection of a proxy action (HTTP 400)
type ProxyError struct {
	Message string
}

// Error implements the error interface
func (e *ProxyError) Error() string {
	return e.Message
}

func proxyError(msg string) *ProxyError {
	return &ProxyError{Message: msg}
}

// CompanyService serves the storefront company actions
type CompanyService struct {
	directory integration.CompanyDirectory
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(directory integration.CompanyDirectory) *CompanyService {
	return &CompanyService{directory: directory}
}

// HandleAction dispatches a proxy request to its action.
// A *ProxyError is returned for invalid requests and platform user errors;
// any other error is an internal failure.
func (s *CompanyService) HandleAction(ctx context.Context, shop string, req ProxyRequest) (any, error) {
	switch req.ActionType {
	case "":
		return nil, proxyError("Missing actionType")
	case ActionFetchCompany:
		return s.FetchCompany(ctx, shop, req.CustomerID)
	case ActionFetchRepCompanies:
		return s.FetchRepCompanies(ctx, shop, req.RepCode)
	case ActionAssignCompany:
		return s.AssignCompany(ctx, shop, req.CustomerID, req.CompanyID)
	default:
		return nil, proxyError("Invalid actionType")
	}
}

// FetchCompany returns the customer's current company and rep code
func (s *CompanyService) FetchCompany(ctx context.Context, shop, customerID string) (*FetchCompanyResponse, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, proxyError("Missing customerId")
	}

	cc, err := s.directory.FetchCustomerCompany(ctx, shop, integration.CustomerGlobalID(customerID))
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return &FetchCompanyResponse{}, nil
	}
	return &FetchCompanyResponse{
		Company: ToCompanyResponse(cc.Company),
		RepCode: cc.RepCode,
	}, nil
}

// FetchRepCompanies lists the companies a sales rep code is linked to.
// An empty rep code yields an empty list without calling the platform.
func (s *CompanyService) FetchRepCompanies(ctx context.Context, shop, repCode string) (*FetchRepCompaniesResponse, error) {
	resp := &FetchRepCompaniesResponse{Companies: []CompanyResponse{}}
	if strings.TrimSpace(repCode) == "" {
		return resp, nil
	}

	companies, err := s.directory.ListRepCompanies(ctx, shop, repCode)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		resp.Companies = append(resp.Companies, *ToCompanyResponse(&companies[i]))
	}
	return resp, nil
}

// AssignCompany moves the customer to a company: every existing contact profile is
// removed first, then the customer is assigned as a contact of companyID.
func (s *CompanyService) AssignCompany(ctx context.Context, shop, customerID, companyID string) (*AssignCompanyResponse, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(companyID) == "" {
		return nil, proxyError("Missing customerId or companyId")
	}
	customerGID := integration.CustomerGlobalID(customerID)

	contactIDs, err := s.directory.ListCompanyContactIDs(ctx, shop, customerGID)
	if err != nil {
		return nil, err
	}
	for _, contactID := range contactIDs {
		userErrors, err := s.directory.RemoveCompanyContact(ctx, shop, contactID)
		if err != nil {
			return nil, err
		}
		if len(userErrors) > 0 {
			logger.L(ctx).Warn("Company contact removal rejected",
				zap.String("company_contact_id", contactID),
				zap.String("user_error", integration.FirstUserErrorMessage(userErrors)),
			)
		}
	}

	userErrors, err := s.directory.AssignCustomerAsContact(ctx, shop, companyID, customerGID)
	if err != nil {
		return nil, err
	}
	if len(userErrors) > 0 {
		return nil, proxyError(integration.FirstUserErrorMessage(userErrors))
	}

	logger.L(ctx).Info("Customer assigned to company",
		zap.String("customer_id", customerGID),
		zap.String("company_id", companyID),
		zap.Int("removed_contacts", len(contactIDs)),
	)
	return &AssignCompanyResponse{Success: true}, nil
}
