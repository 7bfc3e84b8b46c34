package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary represents the aggregated ledger activity for one calendar day.
type DailySummary struct {
	Date      time.Time       `json:"date"`
	LinesSold int             `json:"lines_sold"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	TopItem   string          `json:"top_item,omitempty"`
}
