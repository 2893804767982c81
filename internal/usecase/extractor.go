package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// customerHintKeys are structured fields that map onto the customer block
// rather than becoming requirement statements.
var customerHintKeys = map[string]bool{
	"company_name":   true,
	"company":        true,
	"contact_person": true,
	"email":          true,
	"region":         true,
}

// ExtractorConfig holds configuration for the requirement extractor
type ExtractorConfig struct {
	RequestTimeout time.Duration // per backend attempt; default 60s
	MaxRetries     int           // retries after the first attempt; default 2
	MaxStatements  int           // cap per requirement list; default 20
}

// Extractor turns raw sales text plus optional structured hints into a
// canonical RequirementObject, delegating language understanding to the
// injected backend.
type Extractor struct {
	backend       domain.Backend
	timeout       time.Duration
	maxRetries    int
	maxStatements int
}

// NewExtractor creates an extractor around the given backend.
func NewExtractor(backend domain.Backend, config ExtractorConfig) *Extractor {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	retries := config.MaxRetries
	if retries < 0 {
		retries = 2
	}

	maxStatements := config.MaxStatements
	if maxStatements <= 0 {
		maxStatements = 20
	}

	return &Extractor{
		backend:       backend,
		timeout:       timeout,
		maxRetries:    retries,
		maxStatements: maxStatements,
	}
}

// Extract produces the canonical requirement for a note. Structured hint
// fields always win over anything the backend infers for the same field.
// Backend failures are retried with linear backoff; persistent failure
// surfaces as ErrExtractionFailed. Returns nothing partial on cancellation.
func (e *Extractor) Extract(ctx context.Context, text string, hints map[string]string) (*domain.RequirementObject, error) {
	text = cleanText(text)
	if text == "" && len(hints) == 0 {
		return nil, domain.ErrInvalidInput
	}

	analysis, err := e.analyzeWithRetry(ctx, text, hints)
	if err != nil {
		return nil, err
	}

	req := &domain.RequirementObject{
		Customer: mergeCustomer(analysis.Customer, hints),
		RawText:  text,
	}

	explicit := normalizeStatements(analysis.Explicit, nil, e.maxStatements)
	explicit = appendHintStatements(explicit, hints, e.maxStatements)

	// Constraint-derived needs enrich the implicit list regardless of
	// backend, after removing anything already stated explicitly.
	implicit := append([]string{}, analysis.Implicit...)
	implicit = append(implicit, deriveImplicit(detectConstraints(text))...)
	implicit = normalizeStatements(implicit, explicit, e.maxStatements)

	req.Explicit = explicit
	req.Implicit = implicit
	return req, nil
}

// analyzeWithRetry calls the backend with a per-attempt timeout, retrying
// transient failures. A canceled parent context stops the retry loop.
func (e *Extractor) analyzeWithRetry(ctx context.Context, text string, hints map[string]string) (*domain.Analysis, error) {
	var lastErr error
	for attempt := 1; attempt <= e.maxRetries+1; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
		analysis, err := e.backend.Analyze(attemptCtx, text, hints)
		cancel()

		if err == nil && analysis != nil {
			return analysis, nil
		}
		if err == nil {
			err = fmt.Errorf("backend returned no analysis")
		}
		lastErr = err
		log.Printf("[EXTRACT] Backend attempt %d failed: %v", attempt, err)

		if ctx.Err() != nil {
			// Caller went away; do not keep the backend busy.
			return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, ctx.Err())
		}
		if attempt <= e.maxRetries {
			time.Sleep(time.Duration(attempt) * 200 * time.Millisecond)
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastErr)
}

// mergeCustomer applies the hint-precedence rule: structured fields override
// backend inference for the same field.
func mergeCustomer(inferred domain.Customer, hints map[string]string) domain.Customer {
	merged := inferred
	if v := strings.TrimSpace(hints["company_name"]); v != "" {
		merged.CompanyName = v
	} else if v := strings.TrimSpace(hints["company"]); v != "" {
		merged.CompanyName = v
	}
	if v := strings.TrimSpace(hints["contact_person"]); v != "" {
		merged.ContactPerson = v
	}
	if v := strings.TrimSpace(hints["email"]); v != "" {
		merged.Email = v
	}
	if v := strings.TrimSpace(hints["region"]); v != "" {
		merged.Region = v
	}
	return merged
}

// normalizeStatements trims, drops empties, dedupes, removes anything
// already present verbatim in exclude, and caps the list length.
func normalizeStatements(statements, exclude []string, maxLen int) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		excluded[s] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, s := range statements {
		s = cleanText(s)
		if s == "" || seen[s] || excluded[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) >= maxLen {
			break
		}
	}
	return out
}

// appendHintStatements echoes non-customer structured fields as explicit
// requirements, so hint-only requests still carry statements.
func appendHintStatements(explicit []string, hints map[string]string, maxLen int) []string {
	seen := make(map[string]bool, len(explicit))
	for _, s := range explicit {
		seen[s] = true
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		if !customerHintKeys[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := cleanText(hints[k])
		if v == "" {
			continue
		}
		statement := fmt.Sprintf("%s: %s", k, v)
		if seen[statement] || len(explicit) >= maxLen {
			continue
		}
		seen[statement] = true
		explicit = append(explicit, statement)
	}
	return explicit
}

// cleanText collapses whitespace and trims
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
