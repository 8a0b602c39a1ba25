package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wedding_memories/internal/config"
	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

var ErrNotConfigured = errors.New("payment service not configured")

// SignatureTolerance bounds the age of a verification signature.
const SignatureTolerance = 5 * time.Minute

type Recorder interface {
	RecordPaymentOrder(ok bool)
}

type paymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Stripe creates orders as PaymentIntents and checks client signatures with the webhook scheme.
type Stripe struct {
	log           *slog.Logger
	intents       paymentIntentAPI
	signingSecret string
	rec           Recorder
}

// NewStripe returns ErrNotConfigured when no secret key is set.
func NewStripe(log *slog.Logger, cfg config.PaymentsConfig, rec Recorder) (*Stripe, error) {
	if cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	sc := client.New(cfg.SecretKey, nil)

	return newStripe(log, sc.PaymentIntents, signingSecret(cfg), rec), nil
}

func newStripe(log *slog.Logger, intents paymentIntentAPI, secret string, rec Recorder) *Stripe {
	return &Stripe{
		log:           log,
		intents:       intents,
		signingSecret: secret,
		rec:           rec,
	}
}

func signingSecret(cfg config.PaymentsConfig) string {
	if cfg.SigningSecret != "" {
		return cfg.SigningSecret
	}
	return cfg.SecretKey
}

// CreateOrder opens a PaymentIntent for amount minor units.
func (s *Stripe) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (models.Order, error) {
	const op = "payments.Stripe.CreateOrder"

	receipt := NewReceipt()

	log := s.log.With(
		slog.String("op", op),
		slog.String("receipt", receipt),
		slog.Int64("amount", amount),
	)

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(receipt),
	}
	params.Context = ctx
	params.AddMetadata("receipt", receipt)
	for k, v := range notes {
		params.AddMetadata(k, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		s.record(false)
		log.Error("failed to create payment intent", sl.Err(err))

		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.record(true)
	log.Info("order created", slog.String("order_id", pi.ID))

	return models.Order{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: strings.ToUpper(string(pi.Currency)),
		Receipt:  receipt,
		Status:   string(pi.Status),
		Notes:    notes,
	}, nil
}

// VerifyPayment checks a "t=<unix>,v1=<hex>" signature over "orderID|paymentID". Any failure is false.
func (s *Stripe) VerifyPayment(paymentID, orderID, signature string) bool {
	const op = "payments.Stripe.VerifyPayment"

	err := webhook.ValidatePayloadWithTolerance(verificationPayload(orderID, paymentID), signature, s.signingSecret, SignatureTolerance)
	if err != nil {
		s.log.Warn("payment signature rejected",
			slog.String("op", op),
			slog.String("order_id", orderID),
			sl.Err(err),
		)
		return false
	}

	return true
}

func (s *Stripe) GetPaymentDetails(ctx context.Context, paymentID string) (models.PaymentDetails, error) {
	const op = "payments.Stripe.GetPaymentDetails"

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.intents.Get(paymentID, params)
	if err != nil {
		s.log.Error("failed to fetch payment intent", slog.String("op", op), sl.Err(err))

		return models.PaymentDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.PaymentDetails{
		PaymentID: pi.ID,
		Amount:    pi.Amount,
		Currency:  strings.ToUpper(string(pi.Currency)),
		Status:    string(pi.Status),
		Method:    paymentMethod(pi),
	}, nil
}

func (s *Stripe) record(ok bool) {
	if s.rec != nil {
		s.rec.RecordPaymentOrder(ok)
	}
}

func paymentMethod(pi *stripe.PaymentIntent) string {
	if pi.PaymentMethod != nil && pi.PaymentMethod.Type != "" {
		return string(pi.PaymentMethod.Type)
	}
	if len(pi.PaymentMethodTypes) > 0 {
		return pi.PaymentMethodTypes[0]
	}
	return ""
}

func verificationPayload(orderID, paymentID string) []byte {
	return []byte(orderID + "|" + paymentID)
}

// Sign builds the signature a client presents to VerifyPayment.
func Sign(orderID, paymentID, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, verificationPayload(orderID, paymentID), secret)
	return fmt.Sprintf("t=%d,v1=%x", at.Unix(), sig)
}

// NewReceipt returns "order_" followed by 8 hex characters.
func NewReceipt() string {
	id := uuid.New()
	return fmt.Sprintf("order_%x", id[:4])
}
