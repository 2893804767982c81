package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Compiled regex patterns for signal detection
var (
	quantityRegex   = regexp.MustCompile(`(?i)\b(\d+)\s*(units?|kits?|boxes?|casings?|pieces?|samples?|reactions?|licenses?)\b`)
	timelineRegex   = regexp.MustCompile(`(?i)\b(?:in|within)\s+(\d+)\s*(days?|weeks?|months?)\b`)
	throughputRegex = regexp.MustCompile(`(?i)\b(\d+)\s*(samples?|runs?|tests?|units?|reactions?)\s*/\s*(day|week|month)\b`)
)

// Budget signal keyword sets. A note matching budgetSensitiveTerms implies a
// low price tier preference; premiumTerms implies a high one.
var budgetSensitiveTerms = []string{
	"budget-sensitive", "budget sensitive", "cost sensitive", "cost-sensitive",
	"low cost", "cheaper", "affordable", "tight budget", "limited budget",
	"cost-effective", "budget",
}

var premiumTerms = []string{
	"premium", "best quality", "top tier", "top-tier", "high-end", "no budget issue",
}

// Throughput signal keyword sets, checked after the numeric rate pattern.
var highThroughputTerms = []string{
	"high throughput", "automation", "automated", "robot", "screening",
}

var lowThroughputTerms = []string{
	"small lab", "few samples", "pilot", "prototype",
}

var urgencyTerms = []string{
	"asap", "urgent", "immediately", "right away", "today", "tomorrow",
}

// complianceTerms are checked in order; the first hit wins so detection is
// deterministic when a note mentions several standards.
var complianceTerms = []string{"gmp", "iso", "fda", "ivd", "ce", "clinical"}

var complianceRegexes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(complianceTerms))
	for i, term := range complianceTerms {
		out[i] = regexp.MustCompile(`\b` + term + `\b`)
	}
	return out
}()

// constraints are the structured signals detected from a sales note by
// rule-based scanning. Empty fields mean the note carried no such signal.
type constraints struct {
	Quantity   string
	Budget     string // "budget-sensitive" or "premium"
	Timeline   string
	Throughput string // "N samples/week" style rate, "high" or "low"
	Compliance string
}

// count reports how many signal fields carry a value.
func (c constraints) count() int {
	n := 0
	for _, v := range []string{c.Quantity, c.Budget, c.Timeline, c.Throughput, c.Compliance} {
		if v != "" {
			n++
		}
	}
	return n
}

// detectConstraints scans text for quantity, budget, timeline and compliance
// signals. Purely lexical, fully deterministic.
func detectConstraints(text string) constraints {
	t := strings.ToLower(text)
	var c constraints

	if m := quantityRegex.FindStringSubmatch(text); m != nil {
		c.Quantity = strings.ToLower(m[1] + " " + m[2])
	} else if containsAny(t, "bulk", "high volume", "large volume") {
		c.Quantity = "high volume (bulk)"
	}

	if containsAny(t, budgetSensitiveTerms...) {
		c.Budget = "budget-sensitive"
	} else if containsAny(t, premiumTerms...) {
		c.Budget = "premium"
	}

	if containsAny(t, urgencyTerms...) {
		c.Timeline = "immediate"
	} else if m := timelineRegex.FindStringSubmatch(text); m != nil {
		c.Timeline = strings.ToLower("within " + m[1] + " " + m[2])
	}

	if m := throughputRegex.FindStringSubmatch(text); m != nil {
		c.Throughput = strings.ToLower(m[1] + " " + m[2] + "/" + m[3])
	} else if containsAny(t, highThroughputTerms...) {
		c.Throughput = "high"
	} else if containsAny(t, lowThroughputTerms...) {
		c.Throughput = "low"
	}

	for i, re := range complianceRegexes {
		if re.MatchString(t) {
			c.Compliance = strings.ToUpper(complianceTerms[i])
			break
		}
	}

	return c
}

// deriveImplicit turns detected constraints into implicit requirement
// statements, in fixed field order so output is stable.
func deriveImplicit(c constraints) []string {
	var out []string
	if c.Quantity != "" {
		out = append(out, fmt.Sprintf("volume order (%s)", c.Quantity))
	}
	switch c.Budget {
	case "budget-sensitive":
		out = append(out, "cost-effective pricing preferred")
	case "premium":
		out = append(out, "premium quality expected")
	}
	if c.Timeline == "immediate" {
		out = append(out, "immediate availability needed")
	} else if c.Timeline != "" {
		out = append(out, fmt.Sprintf("delivery %s", c.Timeline))
	}
	switch c.Throughput {
	case "":
	case "high":
		out = append(out, "high throughput workflow likely required")
	case "low":
		out = append(out, "low throughput workflow sufficient")
	default:
		out = append(out, fmt.Sprintf("sustained throughput (%s)", c.Throughput))
	}
	if c.Compliance != "" {
		out = append(out, fmt.Sprintf("%s compliance needed", c.Compliance))
	}
	return out
}

// gapQuestions proposes follow-up questions for signals the note did not
// provide, in fixed field order.
func gapQuestions(c constraints) []domain.GapQuestion {
	var out []domain.GapQuestion
	if c.Quantity == "" {
		out = append(out, domain.GapQuestion{
			MissingField:  "quantity",
			QuestionToAsk: "How many units do you need?",
			Priority:      "high",
		})
	}
	if c.Timeline == "" {
		out = append(out, domain.GapQuestion{
			MissingField:  "timeline",
			QuestionToAsk: "When do you need this delivered?",
			Priority:      "high",
		})
	}
	if c.Budget == "" {
		out = append(out, domain.GapQuestion{
			MissingField:  "budget",
			QuestionToAsk: "Do you have a target budget range or preferred tier?",
			Priority:      "medium",
		})
	}
	return out
}

// pricePreference inspects requirement statements for a price tier
// preference. Returns "low", "high" or "".
func pricePreference(statements []string) string {
	for _, s := range statements {
		t := strings.ToLower(s)
		if containsAny(t, budgetSensitiveTerms...) {
			return "low"
		}
		if containsAny(t, premiumTerms...) {
			return "high"
		}
	}
	return ""
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
