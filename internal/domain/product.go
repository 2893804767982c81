package domain

// ProductRecord represents one entry of the static product catalog.
// Records are built once at load time and never mutated afterwards.
type ProductRecord struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Description string            `json:"description,omitempty"`
	UseCase     string            `json:"use_case,omitempty"`
	KeyFeatures string            `json:"key_features,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// MatchCandidate is one ranked recommendation produced by the matcher.
// Score is a total order key; ties are broken by ProductID ascending so
// identical inputs always rank identically.
type MatchCandidate struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Score       float64  `json:"score"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	ReasonToBuy string   `json:"reason_to_buy"`
}

// ProductView is the read-only detail shape returned for a single product,
// re-derived against the most recent requirement context.
type ProductView struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	ReasonToBuy string   `json:"reason_to_buy"`
}
