package conversion

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var groupingReplacer = strings.NewReplacer(",", "", " ", "", "_", "")

// ParseAmount turns raw input text into a non-negative amount.
// Blank, unparseable and negative input all yield 0.
func ParseAmount(raw string) float64 {
	cleaned := groupingReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return 0
	}
	return sanitizeAmount(d.InexactFloat64())
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func convertAmount(amount float64, rate float64) float64 {
	if !isFinite(amount) || !isFinite(rate) {
		return 0
	}
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}

func sanitizeAmount(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
