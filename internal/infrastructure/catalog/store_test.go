package catalog

import (
	"strings"
	"testing"
)

const sampleCatalog = `Lab Product Catalog (2025 edition)

1. Endotoxin-Free Plasmid Maxi Kit
   Description: High-yield plasmid purification kit with endotoxin removal.
   Use Case: Transfection-grade plasmid preparation for cell culture work.
   Key Features: Endotoxin levels below 0.1 EU/ug, up to 500 ug yield.
   Keywords: plasmid, endotoxin-free, transfection, price_tier:high

2. WaterproofCase-X
   Description: Rugged waterproof casing for field instruments.
   Keywords: waterproof, casing, rugged, price_tier:low

3.
   Description: An entry that lost its product name during editing.

4. WaterproofCase-Premium
   Description: Premium waterproof casing with reinforced seals.
   Keywords: waterproof, casing, premium, price_tier:high
`

func TestParse(t *testing.T) {
	t.Run("parses well-formed blocks and skips nameless ones", func(t *testing.T) {
		store, err := Parse(strings.NewReader(sampleCatalog))
		if err != nil {
			t.Fatalf("Parse() error = %v, want nil", err)
		}
		if store.Len() != 3 {
			t.Fatalf("Len() = %d, want 3 (nameless block skipped)", store.Len())
		}
	})

	t.Run("extracts labelled fields", func(t *testing.T) {
		store, err := Parse(strings.NewReader(sampleCatalog))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		record, ok := store.LookupByName("Endotoxin-Free Plasmid Maxi Kit")
		if !ok {
			t.Fatal("LookupByName() miss for known product")
		}
		if !strings.Contains(record.Description, "plasmid purification") {
			t.Errorf("Description = %q, want plasmid purification text", record.Description)
		}
		if record.UseCase == "" {
			t.Error("UseCase is empty, want transfection text")
		}
		if record.KeyFeatures == "" {
			t.Error("KeyFeatures is empty")
		}
	})

	t.Run("splits keywords and promotes key:value tags to attributes", func(t *testing.T) {
		store, _ := Parse(strings.NewReader(sampleCatalog))

		record, ok := store.LookupByName("WaterproofCase-X")
		if !ok {
			t.Fatal("LookupByName() miss for WaterproofCase-X")
		}
		if record.Attributes["price_tier"] != "low" {
			t.Errorf("Attributes[price_tier] = %q, want low", record.Attributes["price_tier"])
		}
		found := false
		for _, kw := range record.Keywords {
			if kw == "waterproof" {
				found = true
			}
		}
		if !found {
			t.Errorf("Keywords = %v, want to contain waterproof", record.Keywords)
		}
	})

	t.Run("name lookup ignores case and punctuation", func(t *testing.T) {
		store, _ := Parse(strings.NewReader(sampleCatalog))

		if _, ok := store.LookupByName("waterproofcase x"); !ok {
			t.Error("LookupByName() should match ignoring case and punctuation")
		}
	})

	t.Run("assigns deterministic sequential IDs", func(t *testing.T) {
		store, _ := Parse(strings.NewReader(sampleCatalog))

		record, _ := store.LookupByName("WaterproofCase-X")
		if record.ProductID != "P002-waterproofcase-x" {
			t.Errorf("ProductID = %q, want P002-waterproofcase-x", record.ProductID)
		}
		if byID, ok := store.LookupByID(record.ProductID); !ok || byID.ProductName != record.ProductName {
			t.Errorf("LookupByID(%q) failed", record.ProductID)
		}
	})

	t.Run("All returns products in product ID order", func(t *testing.T) {
		store, _ := Parse(strings.NewReader(sampleCatalog))

		all := store.All()
		for i := 1; i < len(all); i++ {
			if all[i-1].ProductID >= all[i].ProductID {
				t.Errorf("All() not sorted: %q before %q", all[i-1].ProductID, all[i].ProductID)
			}
		}
	})

	t.Run("empty document yields empty store without error", func(t *testing.T) {
		store, err := Parse(strings.NewReader(""))
		if err != nil {
			t.Fatalf("Parse() error = %v, want nil", err)
		}
		if store.Len() != 0 {
			t.Errorf("Len() = %d, want 0", store.Len())
		}
		if len(store.All()) != 0 {
			t.Errorf("All() = %v, want empty", store.All())
		}
	})
}
