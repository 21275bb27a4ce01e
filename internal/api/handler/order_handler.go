package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// OrderHandler serves order placement and fulfilment.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type placeOrderRequest struct {
	FoodID      string  `json:"foodId" validate:"required"`
	MealName    string  `json:"mealName" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	ChefID      string  `json:"chefId" validate:"required"`
	UserEmail   string  `json:"userEmail" validate:"required,email"`
	UserAddress string  `json:"userAddress" validate:"required"`
}

type orderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required,oneof=pending accepted delivered cancelled"`
}

type orderPaymentRequest struct {
	PaymentInfo map[string]any `json:"paymentInfo"`
}

// Place handles POST /orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.Place(c.Request().Context(), &domain.Order{
		FoodID:      req.FoodID,
		MealName:    req.MealName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ChefID:      req.ChefID,
		UserEmail:   req.UserEmail,
		UserAddress: req.UserAddress,
	})
	if err != nil {
		return err
	}
	return created(c, order)
}

// ForUser handles GET /orders/user/:email.
//
// @Summary      A customer's orders
// @Tags         orders
// @Produce      json
// @Param        email  path      string  true  "Customer email"
// @Success      200    {object}  dataResponse
// @Router       /orders/user/{email} [get]
func (h *OrderHandler) ForUser(c echo.Context) error {
	orders, err := h.service.ForUser(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(orders))
}

// ForChef handles GET /orders/chef/:chefId.
//
// @Summary      Orders received by a chef
// @Tags         orders
// @Produce      json
// @Param        chefId  path      string  true  "Chef id"
// @Success      200     {object}  dataResponse
// @Router       /orders/chef/{chefId} [get]
func (h *OrderHandler) ForChef(c echo.Context) error {
	orders, err := h.service.ForChef(c.Request().Context(), c.Param("chefId"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(orders))
}

// ChangeStatus handles PATCH /orders/:id/status.
//
// @Summary      Move an order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order id"
// @Param        body  body      orderStatusRequest  true  "Next status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) ChangeStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.OrderStatus)); err != nil {
		return err
	}
	return done(c, "order status updated")
}

// MarkPaid handles PATCH /orders/:id/payment.
//
// @Summary      Record payment for an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order id"
// @Param        body  body      orderPaymentRequest  false  "Processor details"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /orders/{id}/payment [patch]
func (h *OrderHandler) MarkPaid(c echo.Context) error {
	var req orderPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.MarkPaid(c.Request().Context(), c.Param("id"), req.PaymentInfo); err != nil {
		return err
	}
	return done(c, "payment recorded")
}
