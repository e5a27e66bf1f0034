package money

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// FromCents converts an integer cent amount into a decimal dollar value.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(oneHundred)
}

// ToCents converts a decimal dollar value into integer cents, rounding
// half up to the smallest currency unit first.
func ToCents(amount decimal.Decimal) int64 {
	return RoundToCents(amount).Mul(oneHundred).IntPart()
}

// RoundToCents rounds to two decimal places, half up. This is the single
// rounding step used by the pricing calculator; display layers must not
// re-round.
func RoundToCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns pct% of amount rounded to cents.
func Percent(amount decimal.Decimal, pct int) decimal.Decimal {
	return RoundToCents(amount.Mul(decimal.NewFromInt(int64(pct))).Div(oneHundred))
}
