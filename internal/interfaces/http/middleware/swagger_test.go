package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/fulfillment-router/internal/infrastructure/auth"
	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig, jwt gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func TestSwaggerProtection(t *testing.T) {
	// httptest requests come from 192.0.2.1
	tests := []struct {
		name     string
		cfg      SwaggerConfig
		wantCode int
		wantErr  string
	}{
		{
			name:     "disabled",
			cfg:      SwaggerConfig{Enabled: false},
			wantCode: http.StatusNotFound,
			wantErr:  dto.ErrCodeNotFound,
		},
		{
			name:     "enabled without restrictions",
			cfg:      SwaggerConfig{Enabled: true},
			wantCode: http.StatusOK,
		},
		{
			name:     "client in allowed network",
			cfg:      SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.0.2.0/24"}},
			wantCode: http.StatusOK,
		},
		{
			name:     "client matches allowed address",
			cfg:      SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1", "192.0.2.1"}},
			wantCode: http.StatusOK,
		},
		{
			name:     "client outside allow list",
			cfg:      SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}},
			wantCode: http.StatusForbidden,
			wantErr:  dto.ErrCodeForbidden,
		},
		{
			name:     "malformed allow list rejects everyone",
			cfg:      SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip"}},
			wantCode: http.StatusForbidden,
			wantErr:  dto.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newSwaggerRouter(tt.cfg, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
			}
		})
	}
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	svc := newTestJWTService()
	r := newSwaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, JWTAuthMiddleware(svc))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, auth.ScopeRunsRead))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "docs", rec.Body.String())
	})
}
