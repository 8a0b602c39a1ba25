package models

type Order struct {
	ID       string            `json:"order_id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type PaymentDetails struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
}

// PlanOrder is an order created for a plan upgrade.
type PlanOrder struct {
	Order
	PlanType    string  `json:"plan_type"`
	AmountMajor float64 `json:"amount_major"`
}
