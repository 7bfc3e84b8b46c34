package flatfile

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvirhs/resto/internal/domain/models"
)

const salesFieldCount = 7

// SalesRepository is the append-only sales ledger. One pipe-delimited line per
// sold line item, in commit order:
// date|customer|phone|item|qty|unitPriceAtSale|lineTotal.
// The file is never rewritten or truncated.
type SalesRepository struct {
	store *Store
	file  string
	mu    sync.Mutex
}

// NewSalesRepository wires the ledger codec over the given store and file name.
func NewSalesRepository(store *Store, file string) *SalesRepository {
	return &SalesRepository{store: store, file: file}
}

// Append writes the records to the end of the ledger in the order given.
// Appends are serialized so batches from interleaved callers cannot mix.
func (r *SalesRepository) Append(records []models.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, formatSalesLine(rec))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.AppendLines(r.file, lines)
}

// All returns a lazy, restartable sequence over the ledger in file order.
// Each restart re-reads the file, so records appended between iterations are
// picked up. A malformed line stops the sequence with a PersistenceError: the
// format is fixed, so corruption means the file was tampered with externally.
func (r *SalesRepository) All() iter.Seq2[models.SalesRecord, error] {
	return func(yield func(models.SalesRecord, error) bool) {
		lines, err := r.store.ReadLines(r.file)
		if err != nil {
			yield(models.SalesRecord{}, err)
			return
		}

		for i, line := range lines {
			rec, err := parseSalesLine(line)
			if err != nil {
				yield(models.SalesRecord{}, &models.PersistenceError{
					Op:  fmt.Sprintf("parse %s line %d", r.file, i+1),
					Err: err,
				})
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// LoadAll materializes the full ledger, for display and reporting.
func (r *SalesRepository) LoadAll() ([]models.SalesRecord, error) {
	var records []models.SalesRecord
	for rec, err := range r.All() {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func formatSalesLine(rec models.SalesRecord) string {
	return strings.Join([]string{
		rec.Date.Format(models.DateLayout),
		rec.CustomerName,
		rec.CustomerPhone,
		rec.ItemName,
		strconv.Itoa(rec.Quantity),
		rec.UnitPrice.StringFixed(2),
		rec.LineTotal.StringFixed(2),
	}, "|")
}

func parseSalesLine(line string) (models.SalesRecord, error) {
	fields := strings.Split(line, "|")
	if len(fields) != salesFieldCount {
		return models.SalesRecord{}, fmt.Errorf("expected %d fields, got %d", salesFieldCount, len(fields))
	}

	date, err := time.Parse(models.DateLayout, fields[0])
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("bad date %q: %w", fields[0], err)
	}

	qty, err := strconv.Atoi(fields[4])
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("bad quantity %q: %w", fields[4], err)
	}
	if qty <= 0 {
		return models.SalesRecord{}, fmt.Errorf("non-positive quantity %d", qty)
	}

	unitPrice, err := decimal.NewFromString(fields[5])
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("bad unit price %q: %w", fields[5], err)
	}

	lineTotal, err := decimal.NewFromString(fields[6])
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("bad line total %q: %w", fields[6], err)
	}

	return models.SalesRecord{
		Date:          date,
		CustomerName:  fields[1],
		CustomerPhone: fields[2],
		ItemName:      fields[3],
		Quantity:      qty,
		UnitPrice:     unitPrice,
		LineTotal:     lineTotal,
	}, nil
}
