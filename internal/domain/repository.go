package domain

import (
	"context"
	"time"
)

// Backend is the pluggable text-understanding capability used by the
// extractor. Implementations must be safe for concurrent use.
type Backend interface {
	Analyze(ctx context.Context, text string, hints map[string]string) (*Analysis, error)
}

// CatalogIndex exposes read-only access to the loaded product catalog.
type CatalogIndex interface {
	LookupByName(name string) (*ProductRecord, bool)
	LookupByID(productID string) (*ProductRecord, bool)
	All() []ProductRecord
	Len() int
}

// HistoryIndex exposes read-only access to the loaded purchase history.
// Both lookup directions are supported so the matcher can compute
// customer-affinity and product-popularity signals.
type HistoryIndex interface {
	ByCustomer(key string) []HistoryRecord
	ByProduct(productID string) []HistoryRecord
	Len() int
}

// CacheRepository defines the interface for caching serialized analysis
// results.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
