package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
)

// Service exposes lightweight sales analytics over the ledger.
type Service struct {
	ledger       *flatfile.SalesRepository
	currencyCode string
	logger       *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(ledger *flatfile.SalesRepository, currencyCode string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, currencyCode: currencyCode, logger: logger}
}

// DailySummary aggregates all ledger lines recorded on the given calendar day
// in a single pass over the ledger sequence.
func (s *Service) DailySummary(ctx context.Context, day time.Time) (models.DailySummary, error) {
	summary := models.DailySummary{
		Date:    day,
		Revenue: decimal.Zero,
	}
	target := day.Format(models.DateLayout)
	unitsByItem := make(map[string]int)

	for rec, err := range s.ledger.All() {
		if err != nil {
			return models.DailySummary{}, fmt.Errorf("load ledger: %w", err)
		}
		if ctx.Err() != nil {
			return models.DailySummary{}, ctx.Err()
		}
		if rec.Date.Format(models.DateLayout) != target {
			continue
		}

		summary.LinesSold++
		summary.UnitsSold += rec.Quantity
		summary.Revenue = summary.Revenue.Add(rec.LineTotal)
		unitsByItem[rec.ItemName] += rec.Quantity
	}

	summary.TopItem = topItem(unitsByItem)

	s.logger.Debug("daily summary computed",
		zap.String("date", target),
		zap.Int("lines", summary.LinesSold),
		zap.String("revenue", summary.Revenue.StringFixed(2)))
	return summary, nil
}

// FormatSummary renders the summary as a short human-readable report.
func (s *Service) FormatSummary(summary models.DailySummary) string {
	date := summary.Date.Format(models.DateLayout)
	if summary.LinesSold == 0 {
		return fmt.Sprintf("Sales summary (%s): no sales recorded.", date)
	}

	report := fmt.Sprintf("Sales summary (%s): %d units across %d order lines, revenue %s.",
		date, summary.UnitsSold, summary.LinesSold,
		models.FormatAmount(s.currencyCode, summary.Revenue))
	if summary.TopItem != "" {
		report += fmt.Sprintf(" Best seller: %s.", summary.TopItem)
	}
	return report
}

// topItem picks the item with the most units sold, breaking ties by name so
// the result is stable.
func topItem(unitsByItem map[string]int) string {
	var best string
	var bestUnits int
	for name, units := range unitsByItem {
		if units > bestUnits || (units == bestUnits && (best == "" || name < best)) {
			best = name
			bestUnits = units
		}
	}
	return best
}
