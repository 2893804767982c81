package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Store is an immutable two-way index over the purchase history.
// Built once at load time; all accessors are pure reads and safe for
// concurrent use.
type Store struct {
	records    []domain.HistoryRecord
	byCustomer map[string][]int
	byProduct  map[string][]int
}

// Load reads and parses the purchase history CSV at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse builds a Store from CSV data. The first row is the header; header
// names are trimmed and lowercased before column mapping. Rows missing the
// customer key or product ID are dropped with a warning, never fatal.
func Parse(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		log.Printf("[HISTORY] Empty history dataset")
		return emptyStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	store := emptyStore()
	row := 1
	dropped := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			log.Printf("[HISTORY] Skipping malformed row %d: %v", row, err)
			dropped++
			continue
		}

		record, ok := parseRow(fields, columns)
		if !ok {
			log.Printf("[HISTORY] Dropping row %d: missing customer key or product id", row)
			dropped++
			continue
		}

		store.records = append(store.records, record)
		idx := len(store.records) - 1
		custKey := customerKey(record.CustomerKey)
		store.byCustomer[custKey] = append(store.byCustomer[custKey], idx)
		store.byProduct[record.ProductID] = append(store.byProduct[record.ProductID], idx)
	}

	log.Printf("[HISTORY] Loaded %d purchase records (%d dropped)", len(store.records), dropped)
	return store, nil
}

func emptyStore() *Store {
	return &Store{
		byCustomer: make(map[string][]int),
		byProduct:  make(map[string][]int),
	}
}

// parseRow maps one CSV row to a HistoryRecord using the header column map.
func parseRow(fields []string, columns map[string]int) (domain.HistoryRecord, bool) {
	get := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	record := domain.HistoryRecord{
		DealID:      get("deal_id"),
		CustomerKey: get("company_name"),
		ProductID:   get("product_id"),
		ProductName: get("product_name"),
		Date:        get("date"),
		Outcome:     get("outcome"),
	}

	if qty := get("quantity"); qty != "" {
		if v, err := strconv.ParseFloat(qty, 64); err == nil {
			record.Quantity = v
		}
	}

	if record.CustomerKey == "" || record.ProductID == "" {
		return domain.HistoryRecord{}, false
	}
	return record, true
}

// ByCustomer returns all purchases by the given customer, case-insensitive,
// in dataset order.
func (s *Store) ByCustomer(key string) []domain.HistoryRecord {
	return s.collect(s.byCustomer[customerKey(key)])
}

// ByProduct returns all purchases of the given product, in dataset order.
func (s *Store) ByProduct(productID string) []domain.HistoryRecord {
	return s.collect(s.byProduct[productID])
}

// Len returns the number of loaded purchase records.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) collect(idxs []int) []domain.HistoryRecord {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]domain.HistoryRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.records[i])
	}
	return out
}

// customerKey normalizes a customer name for lookups
func customerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
