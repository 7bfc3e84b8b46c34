package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary amount with a currency-code prefix and a
// fixed two-decimal fraction, e.g. "BDT 15.99".
func FormatAmount(code string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", code, amount.StringFixed(2))
}
