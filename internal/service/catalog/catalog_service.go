package catalog

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
)

// Service owns the authoritative in-memory catalog: an ordered mapping of item
// name to price and stock, loaded once from the snapshot file and persisted
// back after every mutation. A single mutex serializes all access, so the
// service is safe to share across HTTP handlers.
type Service struct {
	repo   *flatfile.MenuRepository
	logger *zap.Logger

	mu    sync.Mutex
	order []string
	items map[string]models.MenuItem
}

// NewService builds the catalog and performs the startup load. A missing
// snapshot file simply yields an empty catalog.
func NewService(repo *flatfile.MenuRepository, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{repo: repo, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards the in-memory state and re-reads the snapshot. It is the
// recovery path after a persistence failure left memory and disk diverged.
func (s *Service) Reload() error {
	items, err := s.repo.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.items = make(map[string]models.MenuItem, len(items))
	for _, item := range items {
		s.order = append(s.order, item.Name)
		s.items[item.Name] = item
	}

	s.logger.Info("catalog loaded", zap.Int("items", len(items)))
	return nil
}

// AddItem creates a new menu item. The unit price is the operator-entered base
// price with the tax multiplier applied once, rounded to two decimals.
func (s *Service) AddItem(name string, basePrice decimal.Decimal, stock int) (models.MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MenuItem{}, &models.InvalidInputError{Field: "name", Reason: "must not be empty"}
	}
	if basePrice.IsNegative() {
		return models.MenuItem{}, &models.InvalidInputError{Field: "base_price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return models.MenuItem{}, &models.InvalidInputError{Field: "stock", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[name]; exists {
		return models.MenuItem{}, &models.DuplicateItemError{Name: name}
	}

	item := models.MenuItem{
		Name:      name,
		UnitPrice: basePrice.Mul(models.TaxRate).Round(2),
		Stock:     stock,
	}

	s.order = append(s.order, name)
	s.items[name] = item

	if err := s.persistLocked(); err != nil {
		return models.MenuItem{}, err
	}

	s.logger.Info("item added",
		zap.String("name", name),
		zap.String("unit_price", item.UnitPrice.StringFixed(2)),
		zap.Int("stock", stock))
	return item, nil
}

// UpdateItem replaces the price and/or stock of an existing item. A nil field
// leaves the corresponding value untouched.
func (s *Service) UpdateItem(name string, newPrice *decimal.Decimal, newStock *int) (models.MenuItem, error) {
	if newPrice == nil && newStock == nil {
		return models.MenuItem{}, &models.InvalidInputError{Field: "update", Reason: "at least one of price or stock is required"}
	}
	if newPrice != nil && newPrice.IsNegative() {
		return models.MenuItem{}, &models.InvalidInputError{Field: "price", Reason: "must not be negative"}
	}
	if newStock != nil && *newStock < 0 {
		return models.MenuItem{}, &models.InvalidInputError{Field: "stock", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[name]
	if !exists {
		return models.MenuItem{}, &models.ItemNotFoundError{Name: name}
	}

	if newPrice != nil {
		item.UnitPrice = newPrice.Round(2)
	}
	if newStock != nil {
		item.Stock = *newStock
	}
	s.items[name] = item

	if err := s.persistLocked(); err != nil {
		return models.MenuItem{}, err
	}

	s.logger.Info("item updated",
		zap.String("name", name),
		zap.String("unit_price", item.UnitPrice.StringFixed(2)),
		zap.Int("stock", item.Stock))
	return item, nil
}

// Items returns a snapshot of all items in insertion order.
func (s *Service) Items() []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.MenuItem, 0, len(s.order))
	for _, name := range s.order {
		snapshot = append(snapshot, s.items[name])
	}
	return snapshot
}

// Get looks up a single item by name.
func (s *Service) Get(name string) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[name]
	if !exists {
		return models.MenuItem{}, &models.ItemNotFoundError{Name: name}
	}
	return item, nil
}

// ApplyOrder runs the two-pass order discipline under the catalog lock. The
// validation pass checks every line against current stock without mutating
// anything; the commit pass only runs once the whole basket is known to be
// satisfiable, so a rejected order leaves the catalog exactly as it was.
// Committed lines carry the price snapshot taken at deduction time and follow
// catalog display order.
func (s *Service) ApplyOrder(lines []models.BasketLine) ([]models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if _, exists := s.items[line.ItemName]; !exists {
			return nil, &models.ItemNotFoundError{Name: line.ItemName}
		}
		requested[line.ItemName] += line.Quantity
	}
	if len(requested) == 0 {
		return nil, models.ErrNoItemsSelected
	}

	committed := make([]models.OrderLine, 0, len(requested))
	for _, name := range s.order {
		qty, wanted := requested[name]
		if !wanted {
			continue
		}
		item := s.items[name]
		if qty > item.Stock {
			return nil, &models.InsufficientStockError{Item: name, Requested: qty, Available: item.Stock}
		}
		committed = append(committed, models.OrderLine{
			ItemName:  name,
			Quantity:  qty,
			UnitPrice: item.UnitPrice,
		})
	}

	for _, line := range committed {
		item := s.items[line.ItemName]
		item.Stock -= line.Quantity
		s.items[line.ItemName] = item
	}

	if err := s.persistLocked(); err != nil {
		return nil, err
	}

	return committed, nil
}

// persistLocked writes the full snapshot; callers must hold the mutex.
func (s *Service) persistLocked() error {
	snapshot := make([]models.MenuItem, 0, len(s.order))
	for _, name := range s.order {
		snapshot = append(snapshot, s.items[name])
	}
	return s.repo.Save(snapshot)
}
