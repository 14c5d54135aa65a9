// Package money converts between decimal currency amounts and the
// integer centavos stored in the database.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToCents parses a decimal amount such as "180.00" into centavos,
// rounding half up. Sub-centavo inputs like "99.995" round to 10000.
func ToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FromCents renders centavos as a fixed two-decimal string.
func FromCents(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
