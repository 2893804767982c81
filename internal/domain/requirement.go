package domain

// Customer holds the identity fields extracted for a requirement.
// Unknown fields stay empty and are omitted from JSON output.
type Customer struct {
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Region        string `json:"region,omitempty"`
}

// RequirementObject is the canonical extracted requirement for one sales note.
// Explicit statements come near-verbatim from the input; implicit statements
// are inferred from context. The two lists never share a verbatim entry and
// every element is a non-empty string.
type RequirementObject struct {
	Customer Customer `json:"customer"`
	Explicit []string `json:"explicit_requirements"`
	Implicit []string `json:"implicit_requirements"`
	RawText  string   `json:"raw_text"`
}

// Analysis is the raw output of a text-understanding backend before the
// extractor normalizes and merges it with structured hints.
type Analysis struct {
	Explicit []string
	Implicit []string
	Customer Customer
}

// AnalyzeRequest represents an analysis request from the boundary layer
type AnalyzeRequest struct {
	Text       string            `json:"text"`
	Structured map[string]string `json:"structured,omitempty"`
}
