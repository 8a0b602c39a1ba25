package services

import (
	"context"
	"errors"
	"testing"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/handlers/slogdiscard"
	"wedding_memories/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (models.Order, error) {
	args := m.Called(ctx, amount, currency, notes)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockProvider) VerifyPayment(paymentID, orderID, signature string) bool {
	args := m.Called(paymentID, orderID, signature)
	return args.Bool(0)
}

func (m *MockProvider) GetPaymentDetails(ctx context.Context, paymentID string) (models.PaymentDetails, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(models.PaymentDetails), args.Error(1)
}

var (
	ctx   = context.Background()
	actor = models.Actor{UserID: "u-1", Role: models.RoleGuest}
)

func TestPaymentService_NotConfigured(t *testing.T) {
	s := NewPaymentService(slogdiscard.NewDiscardLogger(), nil, "INR")

	_, err := s.CreateOrder(ctx, actor, dto.CreateOrderRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.VerifyPayment(ctx, dto.VerifyPaymentRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.GetPayment(ctx, "pi_1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.UpgradePlan(ctx, actor, dto.UpgradePlanRequest{PlanType: "basic"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPaymentService_CreateOrder(t *testing.T) {
	p := new(MockProvider)
	s := NewPaymentService(slogdiscard.NewDiscardLogger(), p, "INR")

	p.On("CreateOrder", ctx, int64(2500), "INR", map[string]string{"event": "reception", "user_id": "u-1"}).
		Return(models.Order{ID: "pi_1", Amount: 2500, Currency: "INR", Receipt: "order_0a1b2c3d"}, nil).Once()

	order, err := s.CreateOrder(ctx, actor, dto.CreateOrderRequest{Amount: 2500, Notes: map[string]string{"event": "reception"}})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", order.ID)

	p.On("CreateOrder", ctx, int64(10), "USD", mock.Anything).Return(models.Order{}, errors.New("boom")).Once()

	_, err = s.CreateOrder(ctx, actor, dto.CreateOrderRequest{Amount: 10, Currency: "usd"})
	assert.ErrorIs(t, err, ErrOrderFailed)

	p.AssertExpectations(t)
}

func TestPaymentService_UpgradePlan(t *testing.T) {
	tests := []struct {
		plan        string
		amount      int64
		major       float64
		expectedErr error
	}{
		{plan: "basic", amount: 10000, major: 100},
		{plan: "Premium", amount: 50000, major: 500},
		{plan: "enterprise", amount: 100000, major: 1000},
		{plan: "platinum", expectedErr: ErrUnknownPlan},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			p := new(MockProvider)
			s := NewPaymentService(slogdiscard.NewDiscardLogger(), p, "INR")

			if tt.expectedErr == nil {
				p.On("CreateOrder", ctx, tt.amount, "INR", mock.MatchedBy(func(n map[string]string) bool {
					return n["user_id"] == "u-1" && n["plan_type"] != ""
				})).Return(models.Order{ID: "pi_x", Amount: tt.amount, Currency: "INR"}, nil).Once()
			}

			res, err := s.UpgradePlan(ctx, actor, dto.UpgradePlanRequest{PlanType: tt.plan})
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				p.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.amount, res.Amount)
			assert.InDelta(t, tt.major, res.AmountMajor, 1e-9)
			p.AssertExpectations(t)
		})
	}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	p := new(MockProvider)
	s := NewPaymentService(slogdiscard.NewDiscardLogger(), p, "")

	p.On("VerifyPayment", "pay", "ord", "sig").Return(true).Once()

	ok, err := s.VerifyPayment(ctx, dto.VerifyPaymentRequest{PaymentID: "pay", OrderID: "ord", Signature: "sig"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPaymentService_GetPayment(t *testing.T) {
	p := new(MockProvider)
	s := NewPaymentService(slogdiscard.NewDiscardLogger(), p, "")

	want := models.PaymentDetails{PaymentID: "pi_1", Amount: 500, Currency: "INR", Status: "succeeded"}
	p.On("GetPaymentDetails", ctx, "pi_1").Return(want, nil).Once()
	p.On("GetPaymentDetails", ctx, "pi_2").Return(models.PaymentDetails{}, errors.New("no such payment_intent")).Once()

	got, err := s.GetPayment(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.GetPayment(ctx, "pi_2")
	assert.ErrorIs(t, err, ErrPaymentLookup)
	assert.ErrorContains(t, err, "no such payment_intent")

	p.AssertExpectations(t)
}
