package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
	"github.com/tanvirhs/resto/internal/service/catalog"
	"github.com/tanvirhs/resto/pkg/clients/notify"
)

// Service executes the order transaction: validate the customer and basket,
// apply the all-or-nothing stock deduction through the catalog, append the
// sold lines to the ledger, and hand back a receipt.
type Service struct {
	catalog           *catalog.Service
	ledger            *flatfile.SalesRepository
	notifier          notify.Client
	lowStockThreshold int
	logger            *zap.Logger
	now               func() time.Time
}

// NewService constructs the order service. The notifier may be nil, in which
// case low-stock alerts are skipped.
func NewService(catalogSvc *catalog.Service, ledger *flatfile.SalesRepository, notifier notify.Client, lowStockThreshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:           catalogSvc,
		ledger:            ledger,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
		now:               time.Now,
	}
}

// PlaceOrder commits one order. The basket either applies in full or leaves
// the catalog untouched; ledger lines are appended only after the deduction
// and its snapshot persist succeeded. A persistence failure at any point is
// returned as-is and the order is not reported as placed.
func (s *Service) PlaceOrder(ctx context.Context, req models.OrderRequest) (models.Receipt, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	customerPhone := strings.TrimSpace(req.CustomerPhone)
	if customerName == "" || customerPhone == "" {
		return models.Receipt{}, models.ErrMissingCustomerInfo
	}

	lines := basketLines(req.Items)
	if len(lines) == 0 {
		return models.Receipt{}, models.ErrNoItemsSelected
	}

	committed, err := s.catalog.ApplyOrder(lines)
	if err != nil {
		return models.Receipt{}, err
	}

	orderDate := s.now()
	records := make([]models.SalesRecord, 0, len(committed))
	total := decimal.Zero
	for _, line := range committed {
		lineTotal := line.LineTotal()
		records = append(records, models.SalesRecord{
			Date:          orderDate,
			CustomerName:  customerName,
			CustomerPhone: customerPhone,
			ItemName:      line.ItemName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			LineTotal:     lineTotal,
		})
		total = total.Add(lineTotal)
	}

	if err := s.ledger.Append(records); err != nil {
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		OrderID:       uuid.New().String(),
		Date:          orderDate,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Lines:         records,
		Total:         total,
	}

	s.logger.Info("order placed",
		zap.String("order_id", receipt.OrderID),
		zap.String("customer", customerName),
		zap.Int("lines", len(records)),
		zap.String("total", total.StringFixed(2)))

	s.alertLowStock(ctx, committed)

	return receipt, nil
}

// Quote prices the basket at current catalog prices without touching stock.
// It mirrors the read-only total calculation offered before placing an order.
func (s *Service) Quote(items map[string]int) (decimal.Decimal, error) {
	lines := basketLines(items)
	if len(lines) == 0 {
		return decimal.Zero, models.ErrNoItemsSelected
	}

	total := decimal.Zero
	for _, line := range lines {
		item, err := s.catalog.Get(line.ItemName)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// alertLowStock reports committed items that fell to or below the threshold.
// Delivery is best effort and never affects the already-committed order.
func (s *Service) alertLowStock(ctx context.Context, committed []models.OrderLine) {
	if s.notifier == nil {
		return
	}

	for _, line := range committed {
		item, err := s.catalog.Get(line.ItemName)
		if err != nil {
			continue
		}
		if item.Stock > s.lowStockThreshold {
			continue
		}

		notifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = s.notifier.Notify(notifyCtx, notify.Event{
			Type:    notify.EventLowStock,
			Message: fmt.Sprintf("Stock for %q is down to %d units.", item.Name, item.Stock),
			Payload: item,
		})
		cancel()
		if err != nil {
			s.logger.Warn("low stock alert failed", zap.String("item", item.Name), zap.Error(err))
		}
	}
}

// basketLines filters out non-positive quantities and fixes a deterministic
// input order for validation errors.
func basketLines(items map[string]int) []models.BasketLine {
	names := make([]string, 0, len(items))
	for name, qty := range items {
		if qty > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	lines := make([]models.BasketLine, 0, len(names))
	for _, name := range names {
		lines = append(lines, models.BasketLine{ItemName: name, Quantity: items[name]})
	}
	return lines
}
