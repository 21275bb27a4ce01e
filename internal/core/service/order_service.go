package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/pkg/metrics"
)

type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// Place stores a new order awaiting chef acceptance and payment.
func (s *OrderService) Place(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if o.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	o.OrderStatus = domain.OrderPending
	o.PaymentStatus = domain.PaymentPending
	o.OrderTime = time.Now().UTC()

	if err := s.repo.Create(ctx, o); err != nil {
		s.log.Error().Err(err).Msg("failed to place order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().
		Str("order_id", o.ID).
		Str("chef_id", o.ChefID).
		Str("user_email", o.UserEmail).
		Float64("total", o.Total()).
		Msg("order placed")
	return o, nil
}

func (s *OrderService) ForUser(ctx context.Context, email string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, email)
}

func (s *OrderService) ForChef(ctx context.Context, chefID string) ([]*domain.Order, error) {
	return s.repo.ListByChef(ctx, chefID)
}

// ChangeStatus validates the transition against the stored order before writing.
func (s *OrderService) ChangeStatus(ctx context.Context, id string, next domain.OrderStatus) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.OrderStatus.CanTransitionTo(next) {
		return fmt.Errorf("change order status: %w (from %s to %s)", domain.ErrInvalidTransition, order.OrderStatus, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, order.OrderStatus, next); err != nil {
		return fmt.Errorf("change order status: %w", err)
	}
	s.log.Info().Str("order_id", id).Str("from", string(order.OrderStatus)).Str("to", string(next)).Msg("order status changed")
	return nil
}

func (s *OrderService) MarkPaid(ctx context.Context, id string, info map[string]any) error {
	if err := s.repo.MarkPaid(ctx, id, info); err != nil {
		return err
	}
	s.log.Info().Str("order_id", id).Msg("order paid")
	return nil
}
