package utils

import "github.com/shopspring/decimal"

// ReceiptTolerancePercent is the accepted deviation between expected and
// received quantity on a goods receipt, as a fraction (0.5%).
var ReceiptTolerancePercent = decimal.NewFromFloat(0.005)

// WithinTolerance reports whether a received quantity is acceptable
// against its expectation. A zero expectation requires an exact match;
// otherwise the absolute deviation must not exceed expected * 0.5%.
func WithinTolerance(expected, actual decimal.Decimal) bool {
	if expected.IsZero() {
		return actual.IsZero()
	}
	allowed := expected.Abs().Mul(ReceiptTolerancePercent)
	return actual.Sub(expected).Abs().LessThanOrEqual(allowed)
}
