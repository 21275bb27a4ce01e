package service

import (
	"context"
	"fmt"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type StatsService struct {
	users  ports.UserRepository
	meals  ports.MealRepository
	orders ports.OrderRepository
}

func NewStatsService(users ports.UserRepository, meals ports.MealRepository, orders ports.OrderRepository) *StatsService {
	return &StatsService{users: users, meals: meals, orders: orders}
}

func (s *StatsService) Platform(ctx context.Context) (*ports.PlatformStats, error) {
	var (
		st  ports.PlatformStats
		err error
	)
	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.Chefs, err = s.users.CountByRole(ctx, domain.RoleChef); err != nil {
		return nil, fmt.Errorf("count chefs: %w", err)
	}
	if st.Meals, err = s.meals.Count(ctx); err != nil {
		return nil, fmt.Errorf("count meals: %w", err)
	}
	if st.PendingOrders, err = s.orders.CountByStatus(ctx, domain.OrderPending); err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	if st.DeliveredOrders, err = s.orders.CountByStatus(ctx, domain.OrderDelivered); err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}
	if st.PaidOrders, err = s.orders.CountPaid(ctx); err != nil {
		return nil, fmt.Errorf("count paid orders: %w", err)
	}
	return &st, nil
}
