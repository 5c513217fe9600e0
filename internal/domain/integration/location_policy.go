package integration

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Location policy errors
var (
	ErrLocationPolicyEmpty        = errors.New("integration: location policy has no entries")
	ErrLocationPolicyInvalidEntry = errors.New("integration: invalid location policy entry")
)

// ---------------------------------------------------------------------------
// FulfillmentMode represents how an order should be fulfilled
// ---------------------------------------------------------------------------

// FulfillmentMode represents how an order should be fulfilled
type FulfillmentMode string

const (
	// FulfillmentModeBooking is a scheduled booking fulfilled from the booking location
	FulfillmentModeBooking FulfillmentMode = "booking"
	// FulfillmentModeImmediate is fulfilled right away from the immediate location
	FulfillmentModeImmediate FulfillmentMode = "immediate"
)

// String returns the string representation of FulfillmentMode
func (m FulfillmentMode) String() string {
	return string(m)
}

// TargetLocation is the global ID of the location fulfillment orders should be assigned to
type TargetLocation string

// String returns the string representation of TargetLocation
func (l TargetLocation) String() string {
	return string(l)
}

// DefaultLocationTable is the production mapping of fulfillment modes to locations
func DefaultLocationTable() map[string]string {
	return map[string]string{
		string(FulfillmentModeBooking):   "gid://shopify/Location/77507559507",
		string(FulfillmentModeImmediate): "gid://shopify/Location/77507592275",
	}
}

// ---------------------------------------------------------------------------
// LocationPolicy
// ---------------------------------------------------------------------------

// LocationPolicy maps fulfillment modes to target locations.
// It is immutable after construction and safe for concurrent use.
type LocationPolicy struct {
	table map[FulfillmentMode]TargetLocation
}

// NewLocationPolicy builds a policy from a mode -> location ID table.
// Keys and locations are trimmed of surrounding whitespace. Resolve matches the
// trimmed key exactly and is case sensitive. Tables loaded through viper
// arrive with lowercased keys, so configured modes must be lowercase.
func NewLocationPolicy(table map[string]string) (*LocationPolicy, error) {
	if len(table) == 0 {
		return nil, ErrLocationPolicyEmpty
	}
	policy := &LocationPolicy{table: make(map[FulfillmentMode]TargetLocation, len(table))}
	for mode, location := range table {
		mode = strings.TrimSpace(mode)
		location = strings.TrimSpace(location)
		if mode == "" || location == "" {
			return nil, fmt.Errorf("%w: mode %q location %q", ErrLocationPolicyInvalidEntry, mode, location)
		}
		policy.table[FulfillmentMode(mode)] = TargetLocation(location)
	}
	return policy, nil
}

// DefaultLocationPolicy returns the policy built from DefaultLocationTable
func DefaultLocationPolicy() *LocationPolicy {
	policy, _ := NewLocationPolicy(DefaultLocationTable())
	return policy
}

// Resolve returns the target location for the mode hint.
// Absent or unknown hints resolve to false, meaning there is nothing to reconcile.
func (p *LocationPolicy) Resolve(hint *string) (TargetLocation, bool) {
	if hint == nil || *hint == "" {
		return "", false
	}
	location, ok := p.table[FulfillmentMode(*hint)]
	return location, ok
}

// Modes returns the recognized modes in lexical order
func (p *LocationPolicy) Modes() []FulfillmentMode {
	modes := make([]FulfillmentMode, 0, len(p.table))
	for mode := range p.table {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
