package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Deal score contributions. The score is coarse by intent: it flags which
// requests deserve attention first, it does not price anything.
const (
	relevancePointsCap  = 30
	urgentTimelinePts   = 15
	statedTimelinePts   = 8
	bulkQuantityPts     = 15
	statedQuantityPts   = 10
	highThroughputPts   = 12
	premiumBudgetPts    = 5
	budgetSensitivePts  = -5
	moderateBandAtLeast = 35
	highBandAtLeast     = 70
)

var digitRegex = regexp.MustCompile(`\d`)

// dealIntelligence derives the deal score, band, reasons and confidence from
// the detected constraints and the ranked candidates. Fully deterministic.
func dealIntelligence(
	c constraints,
	candidates []domain.MatchCandidate,
	explicitCount, implicitCount int,
) domain.DealIntelligence {
	score := 0
	var reasons []string

	if len(candidates) > 0 {
		top := candidates[0].Score
		points := int(top)
		if points > relevancePointsCap {
			points = relevancePointsCap
		}
		if points > 0 {
			score += points
			reasons = append(reasons, fmt.Sprintf("top product match score=%.1f", top))
		}
	}

	if c.Timeline == "immediate" {
		score += urgentTimelinePts
		reasons = append(reasons, "urgent timeline")
	} else if c.Timeline != "" {
		score += statedTimelinePts
		reasons = append(reasons, "timeline provided")
	}

	if strings.Contains(c.Quantity, "bulk") || strings.Contains(c.Quantity, "high volume") {
		score += bulkQuantityPts
		reasons = append(reasons, "bulk quantity intent")
	} else if digitRegex.MatchString(c.Quantity) {
		score += statedQuantityPts
		reasons = append(reasons, "quantity provided")
	}

	// A named rate or a "high" signal both indicate scale; "low" adds nothing.
	if c.Throughput == "high" || digitRegex.MatchString(c.Throughput) {
		score += highThroughputPts
		reasons = append(reasons, "high throughput need")
	}

	switch c.Budget {
	case "budget-sensitive":
		score += budgetSensitivePts
		reasons = append(reasons, "price sensitivity risk")
	case "premium":
		score += premiumBudgetPts
		reasons = append(reasons, "premium budget signal")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	band := "LOW"
	if score >= highBandAtLeast {
		band = "HIGH"
	} else if score >= moderateBandAtLeast {
		band = "MODERATE"
	}

	return domain.DealIntelligence{
		DealScore:     score,
		DealBand:      band,
		Reasons:       nonNil(reasons),
		ConfidencePct: confidencePct(explicitCount, implicitCount, c.count()),
	}
}

// confidencePct estimates how much extracted signal backs the assessment:
// explicit statements weigh most, then implicit, then detected constraints.
// Clamped to [5, 98] so the output never claims certainty or nothing.
func confidencePct(explicitCount, implicitCount, signalCount int) int {
	c := math.Min(float64(explicitCount)*0.15, 0.45)
	c += math.Min(float64(implicitCount)*0.10, 0.25)
	c += math.Min(float64(signalCount)/5.0*0.30, 0.30)

	c = math.Max(0.05, math.Min(c, 0.98))
	return int(math.Round(c * 100))
}
