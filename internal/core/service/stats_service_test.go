package service

import (
	"context"
	"testing"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

func TestStatsService_Platform(t *testing.T) {
	store := newStubStore()
	store.addUser("a@x.com", domain.RoleUser)
	store.addUser("b@x.com", domain.RoleChef)
	store.addUser("c@x.com", domain.RoleAdmin)
	meals := &stubMealRepo{}
	seedMeals(meals, 4)
	orders := newStubOrderRepo()
	osvc := NewOrderService(orders, discardLogger)
	o1 := placeOrder(t, osvc)
	placeOrder(t, osvc)
	_ = osvc.MarkPaid(context.Background(), o1.ID, nil)
	_ = osvc.ChangeStatus(context.Background(), o1.ID, domain.OrderAccepted)
	_ = osvc.ChangeStatus(context.Background(), o1.ID, domain.OrderDelivered)

	svc := NewStatsService(stubUsers{store}, meals, orders)
	st, err := svc.Platform(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Users != 3 || st.Chefs != 1 || st.Meals != 4 {
		t.Errorf("unexpected account counts: %+v", st)
	}
	if st.PendingOrders != 1 || st.DeliveredOrders != 1 || st.PaidOrders != 1 {
		t.Errorf("unexpected order counts: %+v", st)
	}
}
