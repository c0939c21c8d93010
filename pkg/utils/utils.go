package utils

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	ErrNonPositiveTenure  = errors.New("tenure must be at least 1 period")
	ErrNonPositivePeriods = errors.New("periods per year must be positive")
)

// CalculateInstallment calculates the fixed periodic installment of an
// amortizing loan.
// Formula: P * r * (1+r)^n / ((1+r)^n - 1), r = annualRatePercent / 100 / periodsPerYear
// A zero periodic rate falls back to P / n. The result is rounded to cents.
func CalculateInstallment(principal, annualRatePercent decimal.Decimal, tenure, periodsPerYear int) (decimal.Decimal, error) {
	if tenure < 1 {
		return decimal.Zero, ErrNonPositiveTenure
	}
	if periodsPerYear <= 0 {
		return decimal.Zero, ErrNonPositivePeriods
	}

	periodicRate := annualRatePercent.InexactFloat64() / 100 / float64(periodsPerYear)
	if periodicRate == 0 {
		return Round2(principal.Div(decimal.NewFromInt(int64(tenure)))), nil
	}

	// The power term stays in float64; money goes back to decimal before rounding.
	factor := math.Pow(1+periodicRate, float64(tenure))
	installment := principal.InexactFloat64() * periodicRate * factor / (factor - 1)

	return Round2(decimal.NewFromFloat(installment)), nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns amount * percent / 100 rounded to cents.
func PercentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(percent).Div(hundred))
}

// CeilDiv returns ceil(numerator / denominator) for a positive denominator.
// Non-positive numerators and non-positive denominators yield 0.
func CeilDiv(numerator, denominator decimal.Decimal) int64 {
	if !denominator.IsPositive() || !numerator.IsPositive() {
		return 0
	}
	return numerator.Div(denominator).Ceil().IntPart()
}

// TruncateToDay returns midnight of t's calendar day in t's location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the same calendar day as ref,
// with a first converted to ref's location.
func SameDay(a, ref time.Time) bool {
	return TruncateToDay(a.In(ref.Location())).Equal(TruncateToDay(ref))
}
