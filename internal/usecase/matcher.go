package usecase

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Package-level compiled regex pattern for tokenization
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Scoring constants. A fully covered statement contributes
// statementPoints * weight; a contradicted one subtracts
// contradictionPenaltyPoints * weight unless strict mode excludes the
// product outright.
const (
	statementPoints            = 10.0
	contradictionPenaltyPoints = 5.0
	directPurchasePoints       = 2.0 // per past purchase of this product
	affinityPurchasePoints     = 1.0 // per past purchase sharing an attribute
	satisfiedCoverage          = 0.5 // token coverage needed to count as a pro
)

// Default tunables, overridable through MatchConfig
const (
	defaultTopK           = 5
	defaultBonusCap       = 10.0
	defaultExplicitWeight = 2.0
	defaultImplicitWeight = 1.0
)

// salesStopWords are filler terms in sales notes that carry no matching
// signal (request verbs, units, basic English stop words)
var salesStopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "was": true, "are": true,
	"we": true, "our": true, "they": true, "their": true,
	// Request verbs
	"need": true, "needs": true, "needed": true, "want": true, "wants": true,
	"require": true, "requires": true, "required": true, "looking": true,
	"interested": true, "please": true, "would": true, "like": true,
	// Quantity units
	"unit": true, "units": true, "piece": true, "pieces": true, "pcs": true,
	"box": true, "boxes": true, "pack": true, "packs": true,
}

// MatchConfig holds configuration for the matcher. Zero values fall back to
// documented defaults.
type MatchConfig struct {
	TopK                 int
	ScoreThreshold       float64
	HistoryBonusCap      float64
	ExplicitWeight       float64
	ImplicitWeight       float64
	StrictContradictions bool
	EnableDebugLogging   bool
}

// Matcher scores catalog products against a requirement and ranks them.
// It never mutates catalog or history state.
type Matcher struct {
	topK                 int
	scoreThreshold       float64
	historyBonusCap      float64
	explicitWeight       float64
	implicitWeight       float64
	strictContradictions bool
	enableDebugLogging   bool
}

// NewMatcher creates a matcher with the given configuration.
func NewMatcher(config MatchConfig) *Matcher {
	topK := config.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	// Threshold zero is a valid "accept everything" setting; only negatives
	// are clamped. The served default comes from the config layer.
	threshold := config.ScoreThreshold
	if threshold < 0 {
		threshold = 0
	}
	bonusCap := config.HistoryBonusCap
	if bonusCap <= 0 {
		bonusCap = defaultBonusCap
	}
	explicitWeight := config.ExplicitWeight
	if explicitWeight <= 0 {
		explicitWeight = defaultExplicitWeight
	}
	implicitWeight := config.ImplicitWeight
	if implicitWeight <= 0 {
		implicitWeight = defaultImplicitWeight
	}

	return &Matcher{
		topK:                 topK,
		scoreThreshold:       threshold,
		historyBonusCap:      bonusCap,
		explicitWeight:       explicitWeight,
		implicitWeight:       implicitWeight,
		strictContradictions: config.StrictContradictions,
		enableDebugLogging:   config.EnableDebugLogging,
	}
}

// Rank scores every catalog product against the requirement and returns up
// to topK candidates above the score threshold, ordered by score descending
// with ties broken by product ID ascending. topK <= 0 uses the configured
// default. Identical inputs always yield identical output.
func (m *Matcher) Rank(
	req *domain.RequirementObject,
	catalog domain.CatalogIndex,
	history domain.HistoryIndex,
	topK int,
) []domain.MatchCandidate {
	if req == nil || catalog == nil {
		return nil
	}
	if topK <= 0 {
		topK = m.topK
	}

	var candidates []domain.MatchCandidate
	for _, product := range catalog.All() {
		candidate, excluded := m.evaluate(req, &product, catalog, history)

		if m.enableDebugLogging {
			log.Printf("[MATCH] %s | score=%.1f excluded=%v pros=%d cons=%d",
				product.ProductID, candidate.Score, excluded, len(candidate.Pros), len(candidate.Cons))
		}

		if excluded || candidate.Score < m.scoreThreshold {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ProductID < candidates[j].ProductID
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// Evaluate derives the candidate view of a single product against a
// requirement, ignoring threshold and exclusion policy. Used for read-only
// product detail lookups.
func (m *Matcher) Evaluate(
	req *domain.RequirementObject,
	product *domain.ProductRecord,
	catalog domain.CatalogIndex,
	history domain.HistoryIndex,
) domain.MatchCandidate {
	candidate, _ := m.evaluate(req, product, catalog, history)
	return candidate
}

// evaluate computes score, pros, cons and reason for one product. The
// second return is true when a strict-mode contradiction excludes the
// product from ranked results.
func (m *Matcher) evaluate(
	req *domain.RequirementObject,
	product *domain.ProductRecord,
	catalog domain.CatalogIndex,
	history domain.HistoryIndex,
) (domain.MatchCandidate, bool) {
	corpus := productTokens(product)

	score := 0.0
	excluded := false
	var pros, cons []string

	assess := func(statements []string, weight float64) {
		for _, statement := range statements {
			// Price tier statements are matched against the product's
			// price_tier attribute, not its text.
			if p := pricePreference([]string{statement}); p != "" {
				tier := product.Attributes["price_tier"]
				switch {
				case tier == p:
					score += weight * statementPoints
					pros = append(pros, statement)
				case tier == "":
					cons = append(cons, statement)
				default:
					score -= weight * contradictionPenaltyPoints
					cons = append(cons, statement)
					if m.strictContradictions {
						excluded = true
					}
				}
				continue
			}

			tokens := tokenize(statement)
			if len(tokens) == 0 {
				continue
			}
			matched := 0
			for _, token := range tokens {
				if corpus.match(token) {
					matched++
				}
			}
			coverage := float64(matched) / float64(len(tokens))
			score += weight * statementPoints * coverage
			if coverage >= satisfiedCoverage {
				pros = append(pros, statement)
			} else {
				cons = append(cons, statement)
			}
		}
	}

	assess(req.Explicit, m.explicitWeight)
	assess(req.Implicit, m.implicitWeight)

	bonus, purchases := m.historyBonus(req.Customer.CompanyName, product, catalog, history)
	score += bonus
	if purchases > 0 {
		pros = append(pros, fmt.Sprintf("previously purchased by %s", req.Customer.CompanyName))
	}

	return domain.MatchCandidate{
		ProductID:   product.ProductID,
		ProductName: product.ProductName,
		Score:       score,
		Pros:        pros,
		Cons:        cons,
		ReasonToBuy: synthesizeReason(product, pros),
	}, excluded
}

// historyBonus computes the bounded purchase-history contribution: full
// points per past purchase of this product by the customer, reduced points
// per purchase of a product sharing an attribute tag. Never exceeds the
// configured cap. Returns the bonus and the direct purchase count.
func (m *Matcher) historyBonus(
	customer string,
	product *domain.ProductRecord,
	catalog domain.CatalogIndex,
	history domain.HistoryIndex,
) (float64, int) {
	if customer == "" || history == nil {
		return 0, 0
	}

	direct := 0
	affinity := 0
	for _, record := range history.ByCustomer(customer) {
		if record.ProductID == product.ProductID {
			direct++
			continue
		}
		bought, ok := catalog.LookupByID(record.ProductID)
		if ok && sharesAttribute(product.Attributes, bought.Attributes) {
			affinity++
		}
	}

	bonus := float64(direct)*directPurchasePoints + float64(affinity)*affinityPurchasePoints
	if bonus > m.historyBonusCap {
		bonus = m.historyBonusCap
	}
	return bonus, direct
}

// sharesAttribute reports whether two attribute maps agree on any tag
func sharesAttribute(a, b map[string]string) bool {
	for k, v := range a {
		if b[k] == v && v != "" {
			return true
		}
	}
	return false
}

// synthesizeReason builds the one-line justification from the top pros.
// Deterministic for identical inputs; never calls the backend.
func synthesizeReason(product *domain.ProductRecord, pros []string) string {
	if len(pros) == 0 {
		if product.Description != "" {
			return fmt.Sprintf("%s: %s", product.ProductName, product.Description)
		}
		return fmt.Sprintf("%s is the closest catalog fit for this request", product.ProductName)
	}

	top := pros
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf("%s covers %s", product.ProductName, strings.Join(top, "; "))
}

// tokenSet holds a product's text corpus for overlap matching
type tokenSet struct {
	exact  map[string]bool
	tokens []string
}

// match reports whether token appears in the set, either exactly or as a
// substring pairing with a longer corpus token (so "waterproof" still hits
// a "waterproofcase" product name).
func (ts *tokenSet) match(token string) bool {
	if ts.exact[token] {
		return true
	}
	if len(token) < 4 {
		return false
	}
	for _, t := range ts.tokens {
		if len(t) >= 4 && (strings.Contains(t, token) || strings.Contains(token, t)) {
			return true
		}
	}
	return false
}

// productTokens builds the matching corpus from every textual facet of the
// product: name, description, use case, features, keywords and attributes.
func productTokens(product *domain.ProductRecord) *tokenSet {
	var parts []string
	parts = append(parts, product.ProductName, product.Description, product.UseCase, product.KeyFeatures)
	parts = append(parts, product.Keywords...)
	for k, v := range product.Attributes {
		parts = append(parts, k, v)
	}

	ts := &tokenSet{exact: make(map[string]bool)}
	for _, token := range tokenize(strings.Join(parts, " ")) {
		if !ts.exact[token] {
			ts.exact[token] = true
			ts.tokens = append(ts.tokens, token)
		}
	}
	return ts
}

// tokenize splits a string into normalized lowercase tokens, dropping
// punctuation, stop words, one-character tokens and pure numbers.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 {
			continue
		}
		if salesStopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
