// Package money holds the rounding rules shared by every monetary field.
package money

import "github.com/shopspring/decimal"

var (
	// epsilon nudges values like 1.005 that are stored slightly below the
	// half-way point so they still round up.
	epsilon = decimal.New(1, -9)

	Zero    = decimal.Zero
	Hundred = decimal.NewFromInt(100)
)

// Round2 rounds half-up to two decimal places after adding epsilon.
// Negative values round symmetrically away from zero.
func Round2(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return Round2(v.Neg()).Neg()
	}
	return v.Add(epsilon).Round(2)
}

// Percent returns base * pct / 100, rounded.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Div(Hundred))
}

// Sum adds and rounds after each addition.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = Round2(total.Add(v))
	}
	return total
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Cap limits v to the range [0, ceiling].
func Cap(v, ceiling decimal.Decimal) decimal.Decimal {
	return Min(Max(v, decimal.Zero), ceiling)
}

func FromFloat(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}
