package translate

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Raw event values arrive as an open mapping decoded from YAML, so a
// numeric field may surface as int, int64, float64, or a quoted string.
// The helpers below collapse those encodings.

func decimalValue(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return val, true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case uint64:
		return decimal.NewFromUint64(val), true
	case float64:
		return decimal.NewFromFloat(val), true
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

func intValue(v any) (int, bool) {
	d, ok := decimalValue(v)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

func int64Value(v any) (int64, bool) {
	d, ok := decimalValue(v)
	if !ok {
		return 0, false
	}
	return d.IntPart(), true
}

// amountOr reads a minor-unit amount field, falling back to a default.
func amountOr(values map[string]any, key string, def int64) int64 {
	if n, ok := int64Value(values[key]); ok {
		return n
	}
	return def
}

func stringOr(values map[string]any, key, def string) string {
	if s, ok := values[key].(string); ok && s != "" {
		return s
	}
	return def
}

func mapValue(values map[string]any, key string) map[string]any {
	m, _ := values[key].(map[string]any)
	return m
}

// stripRef removes the conventional "_ref" marker from a reference value,
// turning "customer_1_ref" into the plain entity key "customer_1".
func stripRef(ref string) string {
	return strings.TrimSuffix(ref, "_ref")
}
