package domain

import "errors"

var (
	// ErrInvalidInput is returned when caller input is empty or malformed
	ErrInvalidInput = errors.New("invalid input: text and structured fields are both empty")

	// ErrExtractionFailed is returned when the extraction backend is
	// unreachable or returns output that cannot be parsed
	ErrExtractionFailed = errors.New("requirement extraction failed")

	// ErrAssemblyFailed is returned when the assembler receives a
	// structurally invalid requirement or candidate list
	ErrAssemblyFailed = errors.New("result assembly failed")

	// ErrNotInitialized is returned when the catalog or history store has
	// not finished loading yet
	ErrNotInitialized = errors.New("catalog and history not yet initialized")

	// ErrProductNotFound is returned when a product lookup misses the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrNoBackend is returned by the factory for an unknown provider name
	ErrNoBackend = errors.New("unsupported extraction backend provider")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
