package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

const summaryMaxLen = 160

// Assemble merges the canonical requirement and the ranked candidates into
// the final structured result. Pure function: no I/O, deterministic, and
// the only failure mode is a structurally invalid input.
func Assemble(
	req *domain.RequirementObject,
	candidates []domain.MatchCandidate,
	historyCtx domain.HistoryContext,
) (*domain.AnalysisResult, error) {
	if err := validateRequirement(req); err != nil {
		return nil, err
	}
	if err := validateCandidates(candidates); err != nil {
		return nil, err
	}

	detected := detectConstraints(req.RawText)
	result := &domain.AnalysisResult{
		Customer: req.Customer,
		Requirements: domain.RequirementBlock{
			Explicit: nonNil(req.Explicit),
			Implicit: nonNil(req.Implicit),
		},
		RawText:          req.RawText,
		RequestSummary:   summarize(req),
		Recommendations:  candidates,
		HistoryContext:   historyCtx,
		GapsAndQuestions: gapQuestions(detected),
		DealIntelligence: dealIntelligence(detected, candidates, len(req.Explicit), len(req.Implicit)),
	}
	if result.Recommendations == nil {
		result.Recommendations = []domain.MatchCandidate{}
	}
	if result.GapsAndQuestions == nil {
		result.GapsAndQuestions = []domain.GapQuestion{}
	}
	return result, nil
}

// validateRequirement enforces the requirement invariants: non-nil, every
// statement non-empty, no verbatim overlap between the two lists.
func validateRequirement(req *domain.RequirementObject) error {
	if req == nil {
		return fmt.Errorf("%w: nil requirement", domain.ErrAssemblyFailed)
	}

	explicit := make(map[string]bool, len(req.Explicit))
	for _, s := range req.Explicit {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: empty explicit requirement", domain.ErrAssemblyFailed)
		}
		explicit[s] = true
	}
	for _, s := range req.Implicit {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: empty implicit requirement", domain.ErrAssemblyFailed)
		}
		if explicit[s] {
			return fmt.Errorf("%w: %q appears in both explicit and implicit lists", domain.ErrAssemblyFailed, s)
		}
	}
	return nil
}

// validateCandidates checks candidates carry IDs and finite scores.
func validateCandidates(candidates []domain.MatchCandidate) error {
	for i, c := range candidates {
		if c.ProductID == "" {
			return fmt.Errorf("%w: candidate %d has no product id", domain.ErrAssemblyFailed, i)
		}
		if math.IsNaN(c.Score) || math.IsInf(c.Score, 0) {
			return fmt.Errorf("%w: candidate %q has non-finite score", domain.ErrAssemblyFailed, c.ProductID)
		}
	}
	return nil
}

// summarize produces the one-line request summary: the start of the note
// cut at a word boundary, or the first explicit statement for hint-only
// requests.
func summarize(req *domain.RequirementObject) string {
	text := req.RawText
	if text == "" && len(req.Explicit) > 0 {
		text = req.Explicit[0]
	}
	runes := []rune(text)
	if len(runes) <= summaryMaxLen {
		return text
	}

	// Cut on a rune boundary so multibyte input never yields invalid UTF-8.
	cut := string(runes[:summaryMaxLen])
	if idx := strings.LastIndex(cut, " "); idx > summaryMaxLen/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
