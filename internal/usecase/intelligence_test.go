package usecase

import (
	"testing"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

func TestThroughputDetection(t *testing.T) {
	t.Run("detects a numeric rate", func(t *testing.T) {
		c := detectConstraints("we process 500 samples/week in the core lab")
		if c.Throughput != "500 samples/week" {
			t.Errorf("Throughput = %q, want 500 samples/week", c.Throughput)
		}
	})

	t.Run("detects high throughput keywords", func(t *testing.T) {
		c := detectConstraints("setting up an automation line for screening")
		if c.Throughput != "high" {
			t.Errorf("Throughput = %q, want high", c.Throughput)
		}
	})

	t.Run("detects low throughput keywords", func(t *testing.T) {
		c := detectConstraints("just a pilot run for our small lab")
		if c.Throughput != "low" {
			t.Errorf("Throughput = %q, want low", c.Throughput)
		}
	})

	t.Run("numeric rate wins over keywords", func(t *testing.T) {
		c := detectConstraints("high throughput setup, around 200 runs/day")
		if c.Throughput != "200 runs/day" {
			t.Errorf("Throughput = %q, want 200 runs/day", c.Throughput)
		}
	})

	t.Run("derives throughput implicit statements", func(t *testing.T) {
		cases := []struct {
			throughput string
			want       string
		}{
			{"high", "high throughput workflow likely required"},
			{"low", "low throughput workflow sufficient"},
			{"500 samples/week", "sustained throughput (500 samples/week)"},
		}
		for _, tc := range cases {
			got := deriveImplicit(constraints{Throughput: tc.throughput})
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("deriveImplicit(throughput=%q) = %v, want [%q]", tc.throughput, got, tc.want)
			}
		}
	})
}

func TestDealIntelligence(t *testing.T) {
	t.Run("scores the budget casing scenario", func(t *testing.T) {
		req := budgetCasingRequirement()
		candidates := []domain.MatchCandidate{
			{ProductID: "P001-waterproofcase-x", ProductName: "WaterproofCase-X", Score: 50},
		}

		deal := dealIntelligence(detectConstraints(req.RawText), candidates, len(req.Explicit), len(req.Implicit))

		// Capped relevance 30, quantity 10, budget sensitivity -5.
		if deal.DealScore != 35 {
			t.Errorf("DealScore = %d, want 35", deal.DealScore)
		}
		if deal.DealBand != "MODERATE" {
			t.Errorf("DealBand = %q, want MODERATE", deal.DealBand)
		}
		if !contains(deal.Reasons, "price sensitivity risk") {
			t.Errorf("Reasons = %v, want price sensitivity risk listed", deal.Reasons)
		}
		if deal.ConfidencePct != 62 {
			t.Errorf("ConfidencePct = %d, want 62", deal.ConfidencePct)
		}
	})

	t.Run("high throughput and urgency raise the band", func(t *testing.T) {
		c := constraints{
			Quantity:   "high volume (bulk)",
			Timeline:   "immediate",
			Throughput: "high",
			Budget:     "premium",
		}
		candidates := []domain.MatchCandidate{{ProductID: "P001", Score: 40}}

		deal := dealIntelligence(c, candidates, 4, 3)

		// 30 + 15 + 15 + 12 + 5.
		if deal.DealScore != 77 {
			t.Errorf("DealScore = %d, want 77", deal.DealScore)
		}
		if deal.DealBand != "HIGH" {
			t.Errorf("DealBand = %q, want HIGH", deal.DealBand)
		}
	})

	t.Run("empty input stays in the low band with floor confidence", func(t *testing.T) {
		deal := dealIntelligence(constraints{}, nil, 0, 0)

		if deal.DealScore != 0 {
			t.Errorf("DealScore = %d, want 0", deal.DealScore)
		}
		if deal.DealBand != "LOW" {
			t.Errorf("DealBand = %q, want LOW", deal.DealBand)
		}
		if deal.Reasons == nil || len(deal.Reasons) != 0 {
			t.Errorf("Reasons = %v, want empty non-nil slice", deal.Reasons)
		}
		if deal.ConfidencePct != 5 {
			t.Errorf("ConfidencePct = %d, want floor of 5", deal.ConfidencePct)
		}
	})

	t.Run("score never exceeds 100 or drops below 0", func(t *testing.T) {
		sparse := dealIntelligence(constraints{Budget: "budget-sensitive"}, nil, 1, 0)
		if sparse.DealScore != 0 {
			t.Errorf("DealScore = %d, want clamped to 0", sparse.DealScore)
		}
	})

	t.Run("assembled results carry the block", func(t *testing.T) {
		req := budgetCasingRequirement()
		result, err := Assemble(req, nil, domain.HistoryContext{})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if result.DealIntelligence.DealBand == "" {
			t.Error("DealIntelligence.DealBand empty, want a band")
		}
		if result.DealIntelligence.Reasons == nil {
			t.Error("DealIntelligence.Reasons = nil, want non-nil slice")
		}
	})
}
