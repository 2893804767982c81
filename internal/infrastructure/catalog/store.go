package catalog

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Compiled regex patterns for catalog parsing
var (
	blockSplitRegex = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	fieldRegex      = regexp.MustCompile(`(?m)^\s*([A-Za-z ]+):\s*(.*)$`)
	slugRegex       = regexp.MustCompile(`[^a-z0-9]+`)
)

// Store is an immutable index over the product catalog. It is built once
// at load time; all accessors are pure reads and safe for concurrent use.
type Store struct {
	products []domain.ProductRecord
	byID     map[string]int
	byName   map[string]int
}

// Load reads and parses the catalog document at path.
// The document is semi-structured text: numbered blocks whose first line is
// the product name, followed by "Field: value" lines (Description, Use Case,
// Key Features, Keywords). Unparseable blocks are skipped with a warning,
// never fatal.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse builds a Store from catalog document text.
func Parse(r io.Reader) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	store := &Store{
		byID:   make(map[string]int),
		byName: make(map[string]int),
	}

	// Anything before the first numbered entry is preamble, not a product.
	blocks := blockSplitRegex.Split(string(raw), -1)
	if len(blocks) > 0 {
		blocks = blocks[1:]
	}

	seq := 0
	for _, block := range blocks {
		record, ok := parseBlock(block, seq+1)
		if !ok {
			if strings.TrimSpace(block) != "" {
				log.Printf("[CATALOG] Skipping unparseable entry: %.60q", block)
			}
			continue
		}

		nameKey := normalizeName(record.ProductName)
		if _, exists := store.byName[nameKey]; exists {
			log.Printf("[CATALOG] Skipping duplicate product name: %q", record.ProductName)
			continue
		}

		store.products = append(store.products, record)
		idx := len(store.products) - 1
		store.byID[record.ProductID] = idx
		store.byName[nameKey] = idx
		seq++
	}

	log.Printf("[CATALOG] Loaded %d products", len(store.products))
	return store, nil
}

// parseBlock converts one numbered block into a ProductRecord.
// Returns false if the block has no product name.
func parseBlock(block string, seq int) (domain.ProductRecord, bool) {
	lines := strings.SplitN(strings.TrimSpace(block), "\n", 2)
	if len(lines) == 0 {
		return domain.ProductRecord{}, false
	}

	name := strings.TrimSpace(lines[0])
	if name == "" || strings.Contains(name, ":") {
		// A field line in first position means the entry has no name.
		return domain.ProductRecord{}, false
	}

	record := domain.ProductRecord{
		ProductID:   fmt.Sprintf("P%03d-%s", seq, slugify(name)),
		ProductName: name,
		Attributes:  make(map[string]string),
	}

	if len(lines) > 1 {
		for _, m := range fieldRegex.FindAllStringSubmatch(lines[1], -1) {
			field := strings.ToLower(strings.TrimSpace(m[1]))
			value := strings.TrimSpace(m[2])
			switch field {
			case "description":
				record.Description = value
			case "use case":
				record.UseCase = value
			case "key features":
				record.KeyFeatures = value
			case "keywords":
				record.Keywords, record.Attributes = parseKeywords(value, record.Attributes)
			default:
				// Unknown labelled fields become attributes as-is.
				record.Attributes[slugify(field)] = value
			}
		}
	}

	return record, true
}

// parseKeywords splits a comma-separated keyword list. Tokens of the form
// "key:value" (e.g. "price_tier:low") become attributes; plain tokens stay
// keywords.
func parseKeywords(value string, attrs map[string]string) ([]string, map[string]string) {
	var keywords []string
	for _, token := range strings.Split(value, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if k, v, found := strings.Cut(token, ":"); found {
			attrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords, attrs
}

// LookupByName finds a product by name, ignoring case and punctuation.
func (s *Store) LookupByName(name string) (*domain.ProductRecord, bool) {
	idx, ok := s.byName[normalizeName(name)]
	if !ok {
		return nil, false
	}
	record := s.products[idx]
	return &record, true
}

// LookupByID finds a product by its catalog ID.
func (s *Store) LookupByID(productID string) (*domain.ProductRecord, bool) {
	idx, ok := s.byID[productID]
	if !ok {
		return nil, false
	}
	record := s.products[idx]
	return &record, true
}

// All returns every product ordered by product ID ascending, so iteration
// order is stable across calls.
func (s *Store) All() []domain.ProductRecord {
	out := make([]domain.ProductRecord, len(s.products))
	copy(out, s.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Len returns the number of loaded products.
func (s *Store) Len() int {
	return len(s.products)
}

// normalizeName lowercases and strips non-alphanumerics for name lookups
func normalizeName(name string) string {
	return slugRegex.ReplaceAllString(strings.ToLower(name), "")
}

// slugify converts a name to a lowercase dash-separated slug
func slugify(name string) string {
	slug := slugRegex.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
