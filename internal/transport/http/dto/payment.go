package dto

type CreateOrderRequest struct {
	// Amount is in minor currency units.
	Amount   int64             `json:"amount" validate:"required,gt=0"`
	Currency string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
	OrderID   string `json:"order_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type UpgradePlanRequest struct {
	PlanType string `json:"plan_type" validate:"required"`
}
