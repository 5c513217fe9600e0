package telemetry

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys.
const (
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelTopic     = "webhook_topic"
	ProfilingLabelShop      = "shop_domain"
	ProfilingLabelOperation = "operation"
)

// Operation label values.
const (
	OperationReconcile = "reconcile"
	OperationGraphQL   = "graphql"
	OperationProxy     = "proxy"
)

// MaxLabelValueLength bounds label values.
const MaxLabelValueLength = 128

// highCardinalityLabels would explode profile series and are dropped.
var highCardinalityLabels = map[string]bool{
	"order_id":             true,
	"fulfillment_order_id": true,
	"webhook_id":           true,
	"request_id":           true,
	"customer_id":          true,
	"trace_id":             true,
	"span_id":              true,
}

// WithProfilingLabels runs fn with pprof labels attached so Pyroscope can
// slice CPU samples by them. Empty and high-cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels labels a request by route and method.
func HTTPRequestLabels(route, method string) map[string]string {
	return map[string]string{
		ProfilingLabelRoute:  route,
		ProfilingLabelMethod: method,
	}
}

// OperationLabels labels work done by one operation on behalf of a shop.
func OperationLabels(operation, shop string) map[string]string {
	return map[string]string{
		ProfilingLabelOperation: operation,
		ProfilingLabelShop:      shop,
	}
}

// sanitizeLabels returns key/value pairs sorted by normalized key.
func sanitizeLabels(labels map[string]string) []string {
	clean := make(map[string]string, len(labels))
	for k, v := range labels {
		key := sanitizeLabelKey(k)
		if key == "" || v == "" || highCardinalityLabels[key] {
			continue
		}
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		clean[key] = v
	}

	keys := slices.Sorted(maps.Keys(clean))
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, clean[k])
	}
	return pairs
}

// sanitizeLabelKey lowercases key, maps spaces and dashes to underscores
// and drops anything else outside [a-z0-9_].
func sanitizeLabelKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
