package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used across the ledger and the API.
const DateLayout = "2006-01-02"

// SalesRecord is one sold line item. Once appended to the ledger it is
// immutable; later catalog price changes never touch it.
type SalesRecord struct {
	Date          time.Time       `json:"date"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// OrderRequest carries the operator input for one order.
type OrderRequest struct {
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	Items         map[string]int `json:"items"`
}

// Receipt summarizes a committed order.
type Receipt struct {
	OrderID       string          `json:"order_id"`
	Date          time.Time       `json:"date"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Lines         []SalesRecord   `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}
