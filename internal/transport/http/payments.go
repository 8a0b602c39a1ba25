package http

import (
	"log/slog"
	"net/http"

	"wedding_memories/internal/middleware"
	"wedding_memories/internal/transport/http/dto"
	"wedding_memories/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CreateOrder godoc
// @Summary Create a payment order
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Amount in minor units"
// @Success 200 {object} response.Response{data=models.Order}
// @Failure 400 {object} response.ErrorResponse "Invalid request or payment error"
// @Security BearerAuth
// @Router /payments/create-order [post]
func (r *Routers) CreateOrder(c echo.Context) error {
	const op = "http.routers.CreateOrder"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateOrderRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	order, err := r.PaymentService.CreateOrder(c.Request().Context(), middleware.Actor(c), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(order))
}

// VerifyPayment godoc
// @Summary Verify a payment signature
// @Tags payments
// @Accept json
// @Produce json
// @Description Rejects a signature that does not match with 400.
// @Param request body dto.VerifyPaymentRequest true "Signature data"
// @Success 200 {object} response.Response{data=object{verified=bool}}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /payments/verify-payment [post]
func (r *Routers) VerifyPayment(c echo.Context) error {
	const op = "http.routers.VerifyPayment"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.VerifyPaymentRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	verified, err := r.PaymentService.VerifyPayment(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	if !verified {
		return c.JSON(http.StatusBadRequest, response.WithDetails(response.ErrPaymentFailed, "Invalid payment signature"))
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Data:    map[string]bool{"verified": true},
		Message: "Payment verified successfully",
	})
}

// GetPayment godoc
// @Summary Payment details
// @Tags payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.Response{data=models.PaymentDetails}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /payments/payment/{payment_id} [get]
func (r *Routers) GetPayment(c echo.Context) error {
	const op = "http.routers.GetPayment"

	log := r.log.With(
		slog.String("op", op),
	)

	details, err := r.PaymentService.GetPayment(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(details))
}

// UpgradePlan godoc
// @Summary Create an order for a plan upgrade
// @Description Plans: basic, premium, enterprise.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.UpgradePlanRequest true "Plan"
// @Success 200 {object} response.Response{data=models.PlanOrder}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /payments/upgrade-plan [post]
func (r *Routers) UpgradePlan(c echo.Context) error {
	const op = "http.routers.UpgradePlan"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpgradePlanRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	order, err := r.PaymentService.UpgradePlan(c.Request().Context(), middleware.Actor(c), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(order))
}
