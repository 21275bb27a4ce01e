package domain

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks whether an order has been paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderAccepted, OrderCancelled},
	OrderAccepted: {OrderDelivered},
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer's purchase of a meal.
type Order struct {
	ID            string         `json:"id"`
	FoodID        string         `json:"foodId"`
	MealName      string         `json:"mealName"`
	Price         float64        `json:"price"`
	Quantity      int            `json:"quantity"`
	ChefID        string         `json:"chefId"`
	UserEmail     string         `json:"userEmail"`
	UserAddress   string         `json:"userAddress"`
	OrderStatus   OrderStatus    `json:"orderStatus"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	PaymentInfo   map[string]any `json:"paymentInfo,omitempty"`
	OrderTime     time.Time      `json:"orderTime"`
}

// Total is the amount due for the order.
func (o Order) Total() float64 {
	return o.Price * float64(o.Quantity)
}
