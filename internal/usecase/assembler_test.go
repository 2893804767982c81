package usecase

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

func TestAssemble(t *testing.T) {
	req := budgetCasingRequirement()
	candidates := []domain.MatchCandidate{
		{ProductID: "P001-waterproofcase-x", ProductName: "WaterproofCase-X", Score: 50},
	}

	t.Run("combines requirement and candidates", func(t *testing.T) {
		result, err := Assemble(req, candidates, domain.HistoryContext{CustomerSeenBefore: true, PastDealCount: 2})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if result.Customer.CompanyName != "Acme" {
			t.Errorf("CompanyName = %q, want Acme", result.Customer.CompanyName)
		}
		if len(result.Recommendations) != 1 {
			t.Errorf("Recommendations = %d, want 1", len(result.Recommendations))
		}
		if !result.HistoryContext.CustomerSeenBefore || result.HistoryContext.PastDealCount != 2 {
			t.Errorf("HistoryContext = %+v, want seen with 2 deals", result.HistoryContext)
		}
		if result.RawText != req.RawText {
			t.Errorf("RawText = %q, want original retained", result.RawText)
		}
	})

	t.Run("nil candidate slice becomes empty not null", func(t *testing.T) {
		result, err := Assemble(req, nil, domain.HistoryContext{})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if result.Recommendations == nil {
			t.Error("Recommendations = nil, want empty slice")
		}
	})

	t.Run("summarizes long notes at a word boundary", func(t *testing.T) {
		long := &domain.RequirementObject{
			Explicit: []string{"something"},
			RawText:  strings.Repeat("waterproof casing needed ", 20),
		}
		result, err := Assemble(long, nil, domain.HistoryContext{})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if len(result.RequestSummary) > 170 {
			t.Errorf("RequestSummary length = %d, want truncated", len(result.RequestSummary))
		}
		if !strings.HasSuffix(result.RequestSummary, "...") {
			t.Errorf("RequestSummary = %q, want ellipsis suffix", result.RequestSummary)
		}
	})

	t.Run("summary of multibyte notes stays valid UTF-8", func(t *testing.T) {
		multibyte := &domain.RequirementObject{
			Explicit: []string{"something"},
			RawText:  strings.Repeat("µ", 200),
		}
		result, err := Assemble(multibyte, nil, domain.HistoryContext{})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if !utf8.ValidString(result.RequestSummary) {
			t.Errorf("RequestSummary is not valid UTF-8: %q", result.RequestSummary)
		}
		if !strings.HasSuffix(result.RequestSummary, "...") {
			t.Errorf("RequestSummary = %q, want ellipsis suffix", result.RequestSummary)
		}
	})

	t.Run("gap questions reflect missing signals", func(t *testing.T) {
		result, _ := Assemble(req, nil, domain.HistoryContext{})
		// The note names quantity and budget, so only timeline is open.
		if len(result.GapsAndQuestions) != 1 || result.GapsAndQuestions[0].MissingField != "timeline" {
			t.Errorf("GapsAndQuestions = %+v, want single timeline question", result.GapsAndQuestions)
		}
	})

	t.Run("rejects nil requirement", func(t *testing.T) {
		_, err := Assemble(nil, nil, domain.HistoryContext{})
		if !errors.Is(err, domain.ErrAssemblyFailed) {
			t.Errorf("error = %v, want ErrAssemblyFailed", err)
		}
	})

	t.Run("rejects empty statements", func(t *testing.T) {
		bad := &domain.RequirementObject{Explicit: []string{"ok", "  "}}
		_, err := Assemble(bad, nil, domain.HistoryContext{})
		if !errors.Is(err, domain.ErrAssemblyFailed) {
			t.Errorf("error = %v, want ErrAssemblyFailed", err)
		}
	})

	t.Run("rejects explicit and implicit overlap", func(t *testing.T) {
		bad := &domain.RequirementObject{
			Explicit: []string{"waterproof casing"},
			Implicit: []string{"waterproof casing"},
		}
		_, err := Assemble(bad, nil, domain.HistoryContext{})
		if !errors.Is(err, domain.ErrAssemblyFailed) {
			t.Errorf("error = %v, want ErrAssemblyFailed", err)
		}
	})

	t.Run("rejects candidates without IDs or with non-finite scores", func(t *testing.T) {
		if _, err := Assemble(req, []domain.MatchCandidate{{ProductName: "x"}}, domain.HistoryContext{}); !errors.Is(err, domain.ErrAssemblyFailed) {
			t.Errorf("error = %v, want ErrAssemblyFailed for missing ID", err)
		}
		if _, err := Assemble(req, []domain.MatchCandidate{{ProductID: "p", Score: math.NaN()}}, domain.HistoryContext{}); !errors.Is(err, domain.ErrAssemblyFailed) {
			t.Errorf("error = %v, want ErrAssemblyFailed for NaN score", err)
		}
	})
}
