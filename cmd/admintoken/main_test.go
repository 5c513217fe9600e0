package main

import (
	"testing"

	"github.com/erp/fulfillment-router/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []auth.Scope
		wantErr bool
	}{
		{"empty means all", "", auth.AllScopes(), false},
		{"single", "runs:read", []auth.Scope{auth.ScopeRunsRead}, false},
		{"trimmed list", " runs:read , orders:reconcile ,", []auth.Scope{auth.ScopeRunsRead, auth.ScopeOrdersReconcile}, false},
		{"unknown", "runs:write", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScopes(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
