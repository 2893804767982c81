package llm

import (
	"context"
	"regexp"
	"strings"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

var clauseSplitRegex = regexp.MustCompile(`[,;.\n]+`)

// MockBackend is a deterministic local stub: explicit requirements are the
// clauses of the note echoed near-verbatim, the customer comes from hints
// only, and nothing is inferred. Same input always yields the same output.
// Used for tests and offline runs.
type MockBackend struct{}

// NewMockBackend creates the deterministic stub backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Analyze echoes note clauses as explicit requirements. No network I/O.
func (b *MockBackend) Analyze(_ context.Context, text string, hints map[string]string) (*domain.Analysis, error) {
	var explicit []string
	seen := make(map[string]bool)
	for _, clause := range clauseSplitRegex.Split(text, -1) {
		clause = strings.TrimSpace(clause)
		if len(clause) < 3 || seen[clause] {
			continue
		}
		seen[clause] = true
		explicit = append(explicit, clause)
	}

	customer := domain.Customer{
		CompanyName:   firstNonEmpty(hints["company_name"], hints["company"]),
		ContactPerson: hints["contact_person"],
		Email:         hints["email"],
		Region:        hints["region"],
	}

	return &domain.Analysis{Explicit: explicit, Customer: customer}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
