package valueobject

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for every amount.
const MoneyScale = 2

// HasMoneyScale reports whether d fits MoneyScale without rounding.
// Trailing zeros are fine: "10.500" is accepted, "10.505" is not.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
