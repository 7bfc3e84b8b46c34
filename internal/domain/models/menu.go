package models

import "github.com/shopspring/decimal"

// TaxRate is applied once to the operator-entered base price when an item is
// created. Later price updates replace the price verbatim.
var TaxRate = decimal.RequireFromString("1.065")

// MenuItem is a priced, stocked entry of the menu catalog.
type MenuItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

// BasketLine pairs an item name with the quantity requested in one order.
type BasketLine struct {
	ItemName string
	Quantity int
}

// OrderLine is a committed basket line carrying the price snapshot taken at
// deduction time.
type OrderLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal returns quantity times the price snapshot.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
