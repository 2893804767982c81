package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// stubBackend implements domain.Backend with scripted behavior
type stubBackend struct {
	analysis *domain.Analysis
	err      error
	failures int32 // fail this many calls before succeeding
	block    bool  // block until the context is done
	calls    atomic.Int32
}

func (s *stubBackend) Analyze(ctx context.Context, text string, hints map[string]string) (*domain.Analysis, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.calls.Load() <= s.failures {
		return nil, errors.New("transient backend failure")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.analysis == nil {
		return &domain.Analysis{}, nil
	}
	return s.analysis, nil
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("fails when text and hints are both empty", func(t *testing.T) {
		extractor := NewExtractor(&stubBackend{}, ExtractorConfig{})
		_, err := extractor.Extract(ctx, "   ", nil)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("hints override inferred customer fields", func(t *testing.T) {
		backend := &stubBackend{analysis: &domain.Analysis{
			Customer: domain.Customer{CompanyName: "Inferred Inc", Region: "EU"},
		}}
		extractor := NewExtractor(backend, ExtractorConfig{})

		req, err := extractor.Extract(ctx, "some note", map[string]string{"company_name": "Acme"})
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if req.Customer.CompanyName != "Acme" {
			t.Errorf("CompanyName = %q, want hint value Acme", req.Customer.CompanyName)
		}
		if req.Customer.Region != "EU" {
			t.Errorf("Region = %q, want inferred EU kept", req.Customer.Region)
		}
	})

	t.Run("explicit and implicit lists never overlap verbatim", func(t *testing.T) {
		backend := &stubBackend{analysis: &domain.Analysis{
			Explicit: []string{"waterproof casing", "waterproof casing", ""},
			Implicit: []string{"waterproof casing", "rugged build"},
		}}
		extractor := NewExtractor(backend, ExtractorConfig{})

		req, err := extractor.Extract(ctx, "waterproof casing needed", nil)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if len(req.Explicit) != 1 || req.Explicit[0] != "waterproof casing" {
			t.Errorf("Explicit = %v, want deduped single statement", req.Explicit)
		}
		for _, s := range req.Implicit {
			if s == "waterproof casing" {
				t.Errorf("Implicit = %v, repeats an explicit statement", req.Implicit)
			}
		}
	})

	t.Run("constraint signals enrich the implicit list", func(t *testing.T) {
		extractor := NewExtractor(&stubBackend{}, ExtractorConfig{})

		req, err := extractor.Extract(ctx, "Need 50 units of waterproof casing, budget-sensitive", nil)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !contains(req.Implicit, "volume order (50 units)") {
			t.Errorf("Implicit = %v, want quantity signal", req.Implicit)
		}
		if !contains(req.Implicit, "cost-effective pricing preferred") {
			t.Errorf("Implicit = %v, want budget signal", req.Implicit)
		}
	})

	t.Run("non-customer hints become explicit statements", func(t *testing.T) {
		extractor := NewExtractor(&stubBackend{}, ExtractorConfig{})

		req, err := extractor.Extract(ctx, "", map[string]string{
			"company_name": "Acme",
			"product_type": "waterproof casing",
		})
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !contains(req.Explicit, "product_type: waterproof casing") {
			t.Errorf("Explicit = %v, want echoed hint field", req.Explicit)
		}
		if contains(req.Explicit, "company_name: Acme") {
			t.Errorf("Explicit = %v, customer fields must not be echoed", req.Explicit)
		}
	})

	t.Run("retries transient failures then succeeds", func(t *testing.T) {
		backend := &stubBackend{
			failures: 2,
			analysis: &domain.Analysis{Explicit: []string{"recovered"}},
		}
		extractor := NewExtractor(backend, ExtractorConfig{MaxRetries: 2})

		req, err := extractor.Extract(ctx, "note text", nil)
		if err != nil {
			t.Fatalf("Extract() error = %v after retries", err)
		}
		if backend.calls.Load() != 3 {
			t.Errorf("backend calls = %d, want 3", backend.calls.Load())
		}
		if !contains(req.Explicit, "recovered") {
			t.Errorf("Explicit = %v, want recovered statement", req.Explicit)
		}
	})

	t.Run("persistent failure surfaces ErrExtractionFailed", func(t *testing.T) {
		backend := &stubBackend{failures: 100}
		extractor := NewExtractor(backend, ExtractorConfig{MaxRetries: 2})

		_, err := extractor.Extract(ctx, "note text", nil)
		if !errors.Is(err, domain.ErrExtractionFailed) {
			t.Errorf("error = %v, want ErrExtractionFailed", err)
		}
		if backend.calls.Load() != 3 {
			t.Errorf("backend calls = %d, want 3 (1 + 2 retries)", backend.calls.Load())
		}
	})

	t.Run("slow backend times out instead of hanging", func(t *testing.T) {
		backend := &stubBackend{block: true}
		extractor := NewExtractor(backend, ExtractorConfig{
			RequestTimeout: 20 * time.Millisecond,
			MaxRetries:     1,
		})

		start := time.Now()
		_, err := extractor.Extract(ctx, "note text", nil)
		if !errors.Is(err, domain.ErrExtractionFailed) {
			t.Errorf("error = %v, want ErrExtractionFailed", err)
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("Extract() took %v, want bounded by per-attempt timeouts", elapsed)
		}
	})

	t.Run("canceled caller stops the retry loop", func(t *testing.T) {
		backend := &stubBackend{block: true}
		extractor := NewExtractor(backend, ExtractorConfig{
			RequestTimeout: time.Minute,
			MaxRetries:     2,
		})

		cancelCtx, cancel := context.WithCancel(ctx)
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := extractor.Extract(cancelCtx, "note text", nil)
		if !errors.Is(err, domain.ErrExtractionFailed) {
			t.Errorf("error = %v, want ErrExtractionFailed", err)
		}
		if backend.calls.Load() != 1 {
			t.Errorf("backend calls = %d, want 1 (no retry after cancellation)", backend.calls.Load())
		}
	})
}
