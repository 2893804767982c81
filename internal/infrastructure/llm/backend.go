package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// Config holds settings for constructing an extraction backend.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// New builds the extraction backend named by cfg.Provider. The concrete
// implementation is selected once at startup and injected into the extractor.
func New(cfg Config) (domain.Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIBackend(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil
	case "anthropic":
		return NewAnthropicBackend(cfg.APIKey, cfg.Model, cfg.MaxTokens), nil
	case "mock":
		return NewMockBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrNoBackend, cfg.Provider)
	}
}

// systemPrompt instructs the model to return strict JSON only.
const systemPrompt = "You are a sales requirements extraction assistant. " +
	"Read the sales note and return ONLY valid JSON, no markdown fences. " +
	"Extract requirements stated directly by the author as \"explicit\" and " +
	"needs implied by context as \"implicit\". Do not invent product names."

// schemaHint is appended to the user prompt so both providers emit the
// same wire shape.
const schemaHint = `{
  "customer": {"company_name": "", "contact_person": "", "email": "", "region": ""},
  "explicit": ["requirement stated in the note"],
  "implicit": ["need implied by the note"]
}`

// buildPrompt assembles the user prompt from the note text and hints.
func buildPrompt(text string, hints map[string]string) string {
	var b strings.Builder
	b.WriteString("SALES NOTE:\n")
	b.WriteString(text)
	if len(hints) > 0 {
		b.WriteString("\n\nSTRUCTURED FIELDS (authoritative):\n")
		for _, k := range sortedKeys(hints) {
			fmt.Fprintf(&b, "%s: %s\n", k, hints[k])
		}
	}
	b.WriteString("\nReturn JSON following this schema:\n")
	b.WriteString(schemaHint)
	return b.String()
}

// sortedKeys keeps hint ordering stable so prompts are reproducible
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// analysisWire is the JSON shape both providers are prompted to produce.
type analysisWire struct {
	Customer struct {
		CompanyName   string `json:"company_name"`
		ContactPerson string `json:"contact_person"`
		Email         string `json:"email"`
		Region        string `json:"region"`
	} `json:"customer"`
	Explicit []string `json:"explicit"`
	Implicit []string `json:"implicit"`
}

var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

// decodeAnalysis parses model output into an Analysis. Models occasionally
// wrap JSON in fences or prose, so a strict parse is followed by extracting
// the first {...} object and parsing that.
func decodeAnalysis(raw string) (*domain.Analysis, error) {
	var wire analysisWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		candidate := jsonObjectRegex.FindString(raw)
		if candidate == "" {
			return nil, fmt.Errorf("no JSON object in backend output: %.120q", raw)
		}
		if err := json.Unmarshal([]byte(candidate), &wire); err != nil {
			return nil, fmt.Errorf("malformed JSON in backend output: %w", err)
		}
	}

	return &domain.Analysis{
		Explicit: wire.Explicit,
		Implicit: wire.Implicit,
		Customer: domain.Customer{
			CompanyName:   wire.Customer.CompanyName,
			ContactPerson: wire.Customer.ContactPerson,
			Email:         wire.Customer.Email,
			Region:        wire.Customer.Region,
		},
	}, nil
}
