package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies discountPercent to price. Zero and negative
// discounts leave the price unchanged; discounts above 100 are applied
// as given and yield a negative price.
func EffectivePrice(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return price
	}
	return price.Mul(hundred.Sub(decimal.NewFromInt(int64(discountPercent)))).Div(hundred)
}

// FormatBRL renders an amount as "R$ 40,50".
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
