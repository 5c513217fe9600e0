package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProxyRouter(companies CompanyActionHandler, cfg ProxyConfig) *gin.Engine {
	h := NewProxyHandler(companies, testShopifyConfig(), cfg)
	r := gin.New()
	r.GET("/proxy", h.Ping)
	r.POST("/proxy", h.HandleAction)
	return r
}

func signedProxyQuery(params url.Values) string {
	params.Set("signature", testShopifyConfig().SignProxy(params))
	return params.Encode()
}

func TestProxyHandler_Ping(t *testing.T) {
	valid := signedProxyQuery(url.Values{
		"shop":        {"demo.myshopify.com"},
		"path_prefix": {"/apps/company"},
		"timestamp":   {"1700000000"},
	})

	tests := []struct {
		name       string
		verify     bool
		query      string
		wantStatus int
		wantBody   string
	}{
		{"unverified", false, "", http.StatusOK, `{"ok":true}`},
		{"valid signature", true, valid, http.StatusOK, `{"ok":true}`},
		{"missing signature", true, "shop=demo.myshopify.com", http.StatusUnauthorized, `{"error":"Invalid signature"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newProxyRouter(new(MockCompanyActionHandler), ProxyConfig{VerifySignatures: tt.verify}).
				ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proxy?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestProxyHandler_HandleAction(t *testing.T) {
	fetchReq := integrationapp.ProxyRequest{ActionType: integrationapp.ActionFetchCompany, CustomerID: "42"}

	tests := []struct {
		name       string
		config     ProxyConfig
		query      string
		body       string
		setup      func(m *MockCompanyActionHandler)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "store domain from config",
			config: ProxyConfig{StoreDomain: "store.myshopify.com"},
			query:  "shop=other.myshopify.com",
			body:   `{"actionType":"fetchCompany","customerId":"42"}`,
			setup: func(m *MockCompanyActionHandler) {
				m.On("HandleAction", mock.Anything, "store.myshopify.com", fetchReq).
					Return(&integrationapp.FetchCompanyResponse{RepCode: "R7"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"company":null,"repCode":"R7"}`,
		},
		{
			name:  "shop from query",
			query: "shop=demo.myshopify.com",
			body:  `{"actionType":"fetchRepCompanies","repCode":""}`,
			setup: func(m *MockCompanyActionHandler) {
				m.On("HandleAction", mock.Anything, "demo.myshopify.com",
					integrationapp.ProxyRequest{ActionType: integrationapp.ActionFetchRepCompanies}).
					Return(&integrationapp.FetchRepCompaniesResponse{Companies: []integrationapp.CompanyResponse{}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"companies":[]}`,
		},
		{
			name:       "no shop",
			body:       `{"actionType":"fetchCompany","customerId":"42"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing shop"}`,
		},
		{
			name:       "malformed body",
			query:      "shop=demo.myshopify.com",
			body:       `{"actionType":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:       "company id is not a gid",
			query:      "shop=demo.myshopify.com",
			body:       `{"actionType":"assignCompany","customerId":"42","companyId":"7"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid companyId"}`,
		},
		{
			name:  "client error from action",
			query: "shop=demo.myshopify.com",
			body:  `{"actionType":"dance"}`,
			setup: func(m *MockCompanyActionHandler) {
				m.On("HandleAction", mock.Anything, "demo.myshopify.com", mock.Anything).
					Return(nil, &integrationapp.ProxyError{Message: "Invalid actionType"})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid actionType"}`,
		},
		{
			name:  "internal failure",
			query: "shop=demo.myshopify.com",
			body:  `{"actionType":"fetchCompany","customerId":"42"}`,
			setup: func(m *MockCompanyActionHandler) {
				m.On("HandleAction", mock.Anything, "demo.myshopify.com", fetchReq).
					Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal proxy error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companies := new(MockCompanyActionHandler)
			if tt.setup != nil {
				tt.setup(companies)
			}

			req := httptest.NewRequest(http.MethodPost, "/proxy?"+tt.query, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			newProxyRouter(companies, tt.config).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			companies.AssertExpectations(t)
		})
	}
}

func TestProxyHandler_HandleAction_RejectsUnsigned(t *testing.T) {
	companies := new(MockCompanyActionHandler)

	req := httptest.NewRequest(http.MethodPost, "/proxy?shop=demo.myshopify.com&signature=deadbeef",
		strings.NewReader(`{"actionType":"fetchCompany","customerId":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newProxyRouter(companies, ProxyConfig{VerifySignatures: true}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	companies.AssertNotCalled(t, "HandleAction", mock.Anything, mock.Anything, mock.Anything)
}
