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

const (
	paymentCurrency  = "usd"
	idempotencyScope = "payment_intent"
)

type PaymentService struct {
	gateway ports.PaymentGateway
	keys    ports.IdempotencyStore
	keyTTL  time.Duration
	log     zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, keys ports.IdempotencyStore, keyTTL time.Duration, log zerolog.Logger) *PaymentService {
	if keyTTL <= 0 {
		keyTTL = 24 * time.Hour
	}
	return &PaymentService{gateway: gateway, keys: keys, keyTTL: keyTTL, log: log}
}

// CreateIntent creates a USD card payment intent. When an idempotency key is
// supplied, a previously created intent for that key is replayed.
func (s *PaymentService) CreateIntent(ctx context.Context, in ports.CreatePaymentIntentInput) (string, error) {
	if in.Amount <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive integer in cents", domain.ErrInvalidInput)
	}

	if in.IdempotencyKey != "" {
		secret, ok, err := s.keys.Get(ctx, idempotencyScope, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if ok {
			metrics.PaymentIntentsTotal.WithLabelValues("replayed").Inc()
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Msg("idempotent replay")
			return secret, nil
		}
	}

	intent, err := s.gateway.CreateIntent(ctx, in.Amount, paymentCurrency, in.IdempotencyKey)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	if in.IdempotencyKey != "" {
		if err := s.keys.Put(ctx, idempotencyScope, in.IdempotencyKey, intent.ClientSecret, s.keyTTL); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("intent_id", intent.ID).Int64("amount", in.Amount).Msg("payment intent created")
	return intent.ClientSecret, nil
}
