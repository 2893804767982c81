package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// textFileExtensions are the plain-text formats the file path accepts.
// Binary document formats (PDF, DOCX) are handled by an upstream converter,
// not here.
var textFileExtensions = map[string]bool{
	".txt": true, ".text": true, ".md": true, ".csv": true, ".log": true,
}

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL time.Duration
}

// AnalysisService runs the extraction -> matching -> assembly pipeline.
// Requests are independent and may run concurrently: the catalog and
// history indexes are immutable after Initialize, and the only mutable
// state (last requirement context, for product detail lookups) sits behind
// its own lock.
type AnalysisService struct {
	extractor *Extractor
	matcher   *Matcher
	cache     domain.CacheRepository
	cacheTTL  time.Duration

	ready   atomic.Bool
	catalog domain.CatalogIndex
	history domain.HistoryIndex

	mu      sync.RWMutex
	lastReq *domain.RequirementObject
}

// NewAnalysisService creates the service. It is not ready to serve until
// Initialize attaches the loaded stores.
func NewAnalysisService(
	extractor *Extractor,
	matcher *Matcher,
	cache domain.CacheRepository,
	config AnalysisServiceConfig,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &AnalysisService{
		extractor: extractor,
		matcher:   matcher,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Initialize attaches the loaded catalog and history indexes and marks the
// service ready. Requests arriving before this completes fail with
// ErrNotInitialized rather than reading partial state.
func (s *AnalysisService) Initialize(catalog domain.CatalogIndex, history domain.HistoryIndex) {
	s.catalog = catalog
	s.history = history
	s.ready.Store(true)
}

// Ready reports whether the stores have been attached.
func (s *AnalysisService) Ready() bool {
	return s.ready.Load()
}

// AnalyzeText runs the full pipeline for a sales note.
// Flow: check cache -> extract -> rank -> assemble -> cache -> return.
func (s *AnalysisService) AnalyzeText(
	ctx context.Context,
	text string,
	structured map[string]string,
) (*domain.AnalysisResult, error) {
	if !s.ready.Load() {
		return nil, domain.ErrNotInitialized
	}
	if strings.TrimSpace(text) == "" && len(structured) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Cache is transparent: a hit returns exactly what the pipeline
	// produced, so repeated identical requests stay byte-identical.
	cacheKey := analysisCacheKey(text, structured)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	req, err := s.extractor.Extract(ctx, text, structured)
	if err != nil {
		return nil, err
	}

	candidates := s.matcher.Rank(req, s.catalog, s.history, 0)

	result, err := Assemble(req, candidates, s.historyContext(req.Customer.CompanyName))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastReq = req
	s.mu.Unlock()

	s.setInCache(ctx, cacheKey, result)
	return result, nil
}

// AnalyzeFile runs the same pipeline on an uploaded plain-text file.
func (s *AnalysisService) AnalyzeFile(
	ctx context.Context,
	data []byte,
	filename string,
) (*domain.AnalysisResult, error) {
	if !s.ready.Load() {
		return nil, domain.ErrNotInitialized
	}

	text, err := extractFileText(data, filename)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeText(ctx, text, nil)
}

// ViewProduct re-derives pros, cons and the reason line for one named
// product against the last successful requirement context, or against
// catalog data alone when no request has been analyzed yet.
func (s *AnalysisService) ViewProduct(name string) (*domain.ProductView, error) {
	if !s.ready.Load() {
		return nil, domain.ErrNotInitialized
	}

	product, ok := s.catalog.LookupByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
	}

	s.mu.RLock()
	req := s.lastReq
	s.mu.RUnlock()

	if req == nil {
		return catalogOnlyView(product), nil
	}

	candidate := s.matcher.Evaluate(req, product, s.catalog, s.history)
	return &domain.ProductView{
		ProductID:   candidate.ProductID,
		ProductName: candidate.ProductName,
		Pros:        nonNil(candidate.Pros),
		Cons:        nonNil(candidate.Cons),
		ReasonToBuy: candidate.ReasonToBuy,
	}, nil
}

// Stats reports store sizes for the debug endpoint.
func (s *AnalysisService) Stats() map[string]int {
	if !s.ready.Load() {
		return map[string]int{"catalog_items": 0, "history_rows": 0}
	}
	return map[string]int{
		"catalog_items": s.catalog.Len(),
		"history_rows":  s.history.Len(),
	}
}

// historyContext summarizes what the history knows about the customer.
func (s *AnalysisService) historyContext(company string) domain.HistoryContext {
	if company == "" {
		return domain.HistoryContext{}
	}
	deals := s.history.ByCustomer(company)
	return domain.HistoryContext{
		CustomerSeenBefore: len(deals) > 0,
		PastDealCount:      len(deals),
	}
}

// catalogOnlyView derives the detail view with no requirement context:
// keywords and attribute tags become pros, the description the reason.
func catalogOnlyView(product *domain.ProductRecord) *domain.ProductView {
	pros := append([]string{}, product.Keywords...)
	tags := make([]string, 0, len(product.Attributes))
	for k, v := range product.Attributes {
		tags = append(tags, fmt.Sprintf("%s:%s", k, v))
	}
	sort.Strings(tags)
	pros = append(pros, tags...)

	reason := product.Description
	if reason == "" {
		reason = product.ProductName
	}

	return &domain.ProductView{
		ProductID:   product.ProductID,
		ProductName: product.ProductName,
		Pros:        pros,
		Cons:        []string{},
		ReasonToBuy: reason,
	}
}

// extractFileText pulls text out of an uploaded file. Known text extensions
// are accepted directly; anything else must at least look like valid,
// printable UTF-8.
func extractFileText(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file %q", domain.ErrInvalidInput, filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !textFileExtensions[ext] {
		if !utf8.Valid(data) || strings.ContainsRune(string(data), 0) {
			return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, filename)
		}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: no readable text in %q", domain.ErrInvalidInput, filename)
	}
	return text, nil
}

// analysisCacheKey derives a stable key from the note text and the sorted
// hint pairs. The text is normalized exactly as the pipeline normalizes it
// and no further: case is significant, raw_text preserves it.
func analysisCacheKey(text string, structured map[string]string) string {
	keys := make([]string, 0, len(structured))
	for k := range structured {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(cleanText(text))
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(structured[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "analysis:" + hex.EncodeToString(sum[:])
}

// getFromCache retrieves a previously assembled result, or nil.
func (s *AnalysisService) getFromCache(ctx context.Context, key string) *domain.AnalysisResult {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("[ANALYZE] Discarding corrupt cache entry %s: %v", key, err)
		return nil
	}
	return &result
}

// setInCache stores an assembled result. Cache failures are logged, never
// surfaced.
func (s *AnalysisService) setInCache(ctx context.Context, key string, result *domain.AnalysisResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Printf("[ANALYZE] Failed to cache result: %v", err)
	}
}
