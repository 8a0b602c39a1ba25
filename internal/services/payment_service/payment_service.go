package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/transport/http/dto"
)

var (
	ErrNotConfigured = errors.New("payment service not configured")
	ErrUnknownPlan   = errors.New("invalid plan type")
	ErrOrderFailed   = errors.New("failed to create order")
	ErrPaymentLookup = errors.New("failed to fetch payment details")
)

// Plan prices in minor units.
var planPrices = map[string]int64{
	"basic":      10000,
	"premium":    50000,
	"enterprise": 100000,
}

const planCurrency = "INR"

type Provider interface {
	CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (models.Order, error)
	VerifyPayment(paymentID, orderID, signature string) bool
	GetPaymentDetails(ctx context.Context, paymentID string) (models.PaymentDetails, error)
}

type PaymentService struct {
	log             *slog.Logger
	provider        Provider
	defaultCurrency string
}

// NewPaymentService accepts a nil provider; every operation then fails with ErrNotConfigured.
func NewPaymentService(log *slog.Logger, provider Provider, defaultCurrency string) *PaymentService {
	if defaultCurrency == "" {
		defaultCurrency = planCurrency
	}

	return &PaymentService{
		log:             log,
		provider:        provider,
		defaultCurrency: defaultCurrency,
	}
}

func (s *PaymentService) CreateOrder(ctx context.Context, actor models.Actor, req dto.CreateOrderRequest) (models.Order, error) {
	const op = "services.PaymentService.CreateOrder"

	if s.provider == nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	notes := make(map[string]string, len(req.Notes)+1)
	for k, v := range req.Notes {
		notes[k] = v
	}
	notes["user_id"] = actor.UserID

	order, err := s.provider.CreateOrder(ctx, req.Amount, currency, notes)
	if err != nil {
		s.log.Error("failed to create order", slog.String("op", op), sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w: %w", op, ErrOrderFailed, err)
	}

	return order, nil
}

func (s *PaymentService) VerifyPayment(ctx context.Context, req dto.VerifyPaymentRequest) (bool, error) {
	const op = "services.PaymentService.VerifyPayment"

	if s.provider == nil {
		return false, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	verified := s.provider.VerifyPayment(req.PaymentID, req.OrderID, req.Signature)

	s.log.Info("payment verification",
		slog.String("op", op),
		slog.String("order_id", req.OrderID),
		slog.Bool("verified", verified),
	)

	return verified, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (models.PaymentDetails, error) {
	const op = "services.PaymentService.GetPayment"

	if s.provider == nil {
		return models.PaymentDetails{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	details, err := s.provider.GetPaymentDetails(ctx, paymentID)
	if err != nil {
		s.log.Error("failed to fetch payment", slog.String("op", op), slog.String("payment_id", paymentID), sl.Err(err))
		return models.PaymentDetails{}, fmt.Errorf("%s: %w: %w", op, ErrPaymentLookup, err)
	}

	return details, nil
}

// UpgradePlan opens an order priced from the plan table.
func (s *PaymentService) UpgradePlan(ctx context.Context, actor models.Actor, req dto.UpgradePlanRequest) (models.PlanOrder, error) {
	const op = "services.PaymentService.UpgradePlan"

	if s.provider == nil {
		return models.PlanOrder{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	planType := strings.ToLower(req.PlanType)

	amount, ok := planPrices[planType]
	if !ok {
		return models.PlanOrder{}, fmt.Errorf("%s: %w", op, ErrUnknownPlan)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("plan_type", planType),
		slog.String("user_id", actor.UserID),
	)

	order, err := s.provider.CreateOrder(ctx, amount, planCurrency, map[string]string{
		"plan_type": planType,
		"user_id":   actor.UserID,
	})
	if err != nil {
		log.Error("failed to create plan order", sl.Err(err))
		return models.PlanOrder{}, fmt.Errorf("%s: %w: %w", op, ErrOrderFailed, err)
	}

	log.Info("plan order created", slog.String("order_id", order.ID))

	return models.PlanOrder{
		Order:       order,
		PlanType:    planType,
		AmountMajor: float64(amount) / 100,
	}, nil
}
