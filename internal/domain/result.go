package domain

// RequirementBlock groups the extracted requirement statements in the
// assembled output.
type RequirementBlock struct {
	Explicit []string `json:"explicit"`
	Implicit []string `json:"implicit"`
}

// HistoryContext summarizes what the purchase history knows about the
// requirement's customer.
type HistoryContext struct {
	CustomerSeenBefore bool `json:"customer_seen_before"`
	PastDealCount      int  `json:"past_deal_count"`
}

// GapQuestion is a follow-up question for a signal the sales note did not
// provide. Priority is one of "low", "medium", "high".
type GapQuestion struct {
	MissingField  string `json:"missing_field"`
	QuestionToAsk string `json:"question_to_ask"`
	Priority      string `json:"priority"`
}

// DealIntelligence is a coarse assessment of how promising the request is
// as a deal. DealScore is 0-100; DealBand is "LOW", "MODERATE" or "HIGH";
// ConfidencePct reflects how much signal the note actually carried.
type DealIntelligence struct {
	DealScore     int      `json:"deal_score"`
	DealBand      string   `json:"deal_band"`
	Reasons       []string `json:"reasons"`
	ConfidencePct int      `json:"confidence_pct"`
}

// AnalysisResult is the final structured object returned to callers:
// the canonical requirement merged with the ranked recommendations.
type AnalysisResult struct {
	Customer         Customer         `json:"customer"`
	RequestSummary   string           `json:"request_summary"`
	Requirements     RequirementBlock `json:"requirements"`
	RawText          string           `json:"raw_text"`
	Recommendations  []MatchCandidate `json:"recommendations"`
	HistoryContext   HistoryContext   `json:"history_context"`
	GapsAndQuestions []GapQuestion    `json:"gaps_and_questions"`
	DealIntelligence DealIntelligence `json:"deal_intelligence"`
}
