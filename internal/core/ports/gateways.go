package ports

import (
	"context"
	"time"
)

// PaymentIntent is the client-confirmable handle returned by the processor.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway creates payment intents with a third-party processor.
type PaymentGateway interface {
	// CreateIntent creates an intent for amount minor units in currency.
	// idempotencyKey may be empty.
	CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*PaymentIntent, error)
}

// IdempotencyStore remembers results keyed by a caller-supplied idempotency key.
type IdempotencyStore interface {
	// Get returns the stored value and true, or "" and false on a miss.
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Put(ctx context.Context, scope, key, value string, ttl time.Duration) error
}
