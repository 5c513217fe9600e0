package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestLocationPolicy_Resolve(t *testing.T) {
	policy := DefaultLocationPolicy()

	tests := []struct {
		name     string
		hint     *string
		expected TargetLocation
		ok       bool
	}{
		{"booking", strPtr("booking"), "gid://shopify/Location/77507559507", true},
		{"immediate", strPtr("immediate"), "gid://shopify/Location/77507592275", true},
		{"absent", nil, "", false},
		{"empty", strPtr(""), "", false},
		{"unknown", strPtr("pickup"), "", false},
		{"case sensitive", strPtr("Booking"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, ok := policy.Resolve(tt.hint)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, location)
		})
	}
}

func TestNewLocationPolicy(t *testing.T) {
	t.Run("custom table", func(t *testing.T) {
		policy, err := NewLocationPolicy(map[string]string{"pickup": "gid://shopify/Location/1"})
		require.NoError(t, err)

		location, ok := policy.Resolve(strPtr("pickup"))
		assert.True(t, ok)
		assert.Equal(t, TargetLocation("gid://shopify/Location/1"), location)

		_, ok = policy.Resolve(strPtr("booking"))
		assert.False(t, ok)
	})

	t.Run("keys are trimmed but not case folded", func(t *testing.T) {
		policy, err := NewLocationPolicy(map[string]string{" pickup ": " gid://shopify/Location/1 "})
		require.NoError(t, err)

		location, ok := policy.Resolve(strPtr("pickup"))
		assert.True(t, ok)
		assert.Equal(t, TargetLocation("gid://shopify/Location/1"), location)

		_, ok = policy.Resolve(strPtr("Pickup"))
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := NewLocationPolicy(nil)
		assert.ErrorIs(t, err, ErrLocationPolicyEmpty)
	})

	t.Run("blank location", func(t *testing.T) {
		_, err := NewLocationPolicy(map[string]string{"booking": "  "})
		assert.ErrorIs(t, err, ErrLocationPolicyInvalidEntry)
	})
}

func TestLocationPolicy_Modes(t *testing.T) {
	assert.Equal(t,
		[]FulfillmentMode{FulfillmentModeBooking, FulfillmentModeImmediate},
		DefaultLocationPolicy().Modes(),
	)
}

func TestOrderEvent_FulfillmentMode(t *testing.T) {
	e := &OrderEvent{}
	assert.False(t, e.HasFulfillmentMode())
	assert.Equal(t, FulfillmentMode(""), e.FulfillmentMode())

	e.FulfillmentModeHint = strPtr("booking")
	assert.True(t, e.HasFulfillmentMode())
	assert.Equal(t, FulfillmentModeBooking, e.FulfillmentMode())
}
