package flatfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tanvirhs/resto/internal/domain/models"
)

const menuFieldCount = 3

// MenuRepository persists the catalog snapshot as one pipe-delimited line per
// item: name|unitPrice|stock. Every save overwrites the whole file.
type MenuRepository struct {
	store *Store
	file  string
}

// NewMenuRepository wires the snapshot codec over the given store and file name.
func NewMenuRepository(store *Store, file string) *MenuRepository {
	return &MenuRepository{store: store, file: file}
}

// Load parses the full snapshot in file order. A missing file yields an empty
// catalog.
func (r *MenuRepository) Load() ([]models.MenuItem, error) {
	lines, err := r.store.ReadLines(r.file)
	if err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(lines))
	for i, line := range lines {
		item, err := parseMenuLine(line)
		if err != nil {
			return nil, &models.PersistenceError{
				Op:  fmt.Sprintf("parse %s line %d", r.file, i+1),
				Err: err,
			}
		}
		items = append(items, item)
	}

	return items, nil
}

// Save serializes every item in order and atomically replaces the snapshot.
func (r *MenuRepository) Save(items []models.MenuItem) error {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, formatMenuLine(item))
	}
	return r.store.WriteAllLines(r.file, lines)
}

func formatMenuLine(item models.MenuItem) string {
	return strings.Join([]string{
		item.Name,
		item.UnitPrice.StringFixed(2),
		strconv.Itoa(item.Stock),
	}, "|")
}

func parseMenuLine(line string) (models.MenuItem, error) {
	fields := strings.Split(line, "|")
	if len(fields) != menuFieldCount {
		return models.MenuItem{}, fmt.Errorf("expected %d fields, got %d", menuFieldCount, len(fields))
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return models.MenuItem{}, fmt.Errorf("empty item name")
	}

	price, err := decimal.NewFromString(fields[1])
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("bad price %q: %w", fields[1], err)
	}

	stock, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("bad stock %q: %w", fields[2], err)
	}
	if stock < 0 {
		return models.MenuItem{}, fmt.Errorf("negative stock %d", stock)
	}

	return models.MenuItem{Name: name, UnitPrice: price, Stock: stock}, nil
}
