package translate

import "github.com/shopspring/decimal"

// Terms defaults. Percentage fields are percentage units (10 means 10%);
// one_time_fee_rate is fractional.
var (
	defaultAnnualRate     = decimal.NewFromInt(12)
	defaultOneTimeFeeRate = decimal.RequireFromString("0.01")
	defaultInitialCVL     = decimal.NewFromInt(140)
	defaultMarginCallCVL  = decimal.NewFromInt(125)
	defaultLiquidationCVL = decimal.NewFromInt(105)
)

const (
	defaultDurationMonths       = 3
	defaultOverdueDays          = 50
	defaultAccrualInterval      = "EndOfDay"
	defaultAccrualCycleInterval = "EndOfMonth"
	defaultDisbursalPolicy      = "SingleDisbursal"
)

// TermsValues is the canonical form of a facility's terms. Whatever unit
// system the source data used (fractions vs percentages, nested duration
// objects), values here are in one canonical system: rates and CVLs as
// percentages, the fee rate fractional, durations as plain integers.
type TermsValues struct {
	AnnualRate     decimal.Decimal
	DurationMonths int

	InterestDueDays int
	OverdueDays     int

	// LiquidationDays is nil when the facility has no automatic
	// liquidation clause. No source field maps to it today.
	LiquidationDays *int

	AccrualInterval      string
	AccrualCycleInterval string

	OneTimeFeeRate decimal.Decimal

	InitialCVL     decimal.Decimal
	MarginCallCVL  decimal.Decimal
	LiquidationCVL decimal.Decimal

	DisbursalPolicy string
}

// NewTermsValues normalizes a raw "terms" sub-mapping from event values.
// Every field is optional; absent fields take the documented defaults.
func NewTermsValues(raw map[string]any) TermsValues {
	t := TermsValues{
		AnnualRate:           defaultAnnualRate,
		DurationMonths:       defaultDurationMonths,
		InterestDueDays:      0,
		OverdueDays:          defaultOverdueDays,
		AccrualInterval:      defaultAccrualInterval,
		AccrualCycleInterval: defaultAccrualCycleInterval,
		OneTimeFeeRate:       defaultOneTimeFeeRate,
		InitialCVL:           defaultInitialCVL,
		MarginCallCVL:        defaultMarginCallCVL,
		LiquidationCVL:       defaultLiquidationCVL,
		DisbursalPolicy:      defaultDisbursalPolicy,
	}
	if raw == nil {
		return t
	}

	if d, ok := decimalValue(raw["annual_rate"]); ok {
		t.AnnualRate = fractionToPercent(d, decimal.NewFromInt(1))
	}
	if months, ok := nestedInt(raw["duration"], "Months", "months"); ok {
		t.DurationMonths = months
	}
	if days, ok := nestedInt(raw["interest_due_duration_from_accrual"], "Days", "days"); ok {
		t.InterestDueDays = days
	}
	if d, ok := cvlValue(raw["initial_cvl"]); ok {
		t.InitialCVL = d
	}
	if d, ok := cvlValue(raw["margin_call_cvl"]); ok {
		t.MarginCallCVL = d
	}
	if d, ok := cvlValue(raw["liquidation_cvl"]); ok {
		t.LiquidationCVL = d
	}
	if d, ok := decimalValue(raw["one_time_fee_rate"]); ok {
		t.OneTimeFeeRate = d
	}
	if s, ok := raw["accrual_interval"].(string); ok && s != "" {
		t.AccrualInterval = s
	}
	if s, ok := raw["accrual_cycle_interval"].(string); ok && s != "" {
		t.AccrualCycleInterval = s
	}
	if s, ok := raw["disbursal_policy"].(string); ok && s != "" {
		t.DisbursalPolicy = s
	}

	return t
}

// cvlValue unwraps the {Finite: <value>} encoding CVL thresholds arrive in
// and rescales fractional encodings (< 10) to percentages.
func cvlValue(v any) (decimal.Decimal, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return decimal.Decimal{}, false
	}
	inner, ok := m["Finite"]
	if !ok {
		inner, ok = m["finite"]
	}
	if !ok {
		return decimal.Decimal{}, false
	}
	d, ok := decimalValue(inner)
	if !ok {
		return decimal.Decimal{}, false
	}
	return fractionToPercent(d, decimal.NewFromInt(10)), true
}

// fractionToPercent rescales values below the threshold by 100. Source
// data encodes rates inconsistently: "0.10" and "10" both mean 10%.
func fractionToPercent(d, threshold decimal.Decimal) decimal.Decimal {
	if d.LessThan(threshold) {
		return d.Mul(decimal.NewFromInt(100))
	}
	return d
}

// nestedInt reads an integer out of a nested mapping like {"Months": 6},
// trying each candidate key in order.
func nestedInt(v any, keys ...string) (int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, k := range keys {
		if inner, ok := m[k]; ok {
			if n, ok := intValue(inner); ok {
				return n, true
			}
		}
	}
	return 0, false
}
