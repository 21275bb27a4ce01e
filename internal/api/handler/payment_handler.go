package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type paymentIntentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent handles POST /create-payment-intent.
//
// @Summary      Create a Stripe payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Replays the first result for the same key"
// @Param        body             body      paymentIntentRequest  true   "Amount in cents"
// @Success      200              {object}  paymentIntentResponse
// @Failure      400              {object}  messageResponse
// @Failure      500              {object}  messageResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.service.CreateIntent(c.Request().Context(), ports.CreatePaymentIntentInput{
		Amount:         req.Amount,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}
