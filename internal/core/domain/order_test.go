package domain

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderAccepted, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderDelivered, false},
		{OrderAccepted, OrderDelivered, true},
		{OrderAccepted, OrderCancelled, false},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderAccepted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestOrder_Total(t *testing.T) {
	o := Order{Price: 12.5, Quantity: 3}
	if got := o.Total(); got != 37.5 {
		t.Fatalf("expected 37.5, got %v", got)
	}
}
