package domain

// HistoryRecord is one past purchase loaded from the history dataset.
// CustomerKey and ProductID are mandatory; rows missing either are dropped
// at load time.
type HistoryRecord struct {
	DealID      string  `json:"deal_id,omitempty"`
	CustomerKey string  `json:"customer_key"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Date        string  `json:"date,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Outcome     string  `json:"outcome,omitempty"`
}
