// Package stripe creates payment intents with the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

var errMissingKey = errors.New("stripe secret key is not configured")

// Gateway implements ports.PaymentGateway on top of stripe-go.
type Gateway struct {
	client paymentintent.Client
	hasKey bool
}

// NewGateway returns a Gateway using the default Stripe API backend.
func NewGateway(secretKey string) *Gateway {
	return NewGatewayWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

// NewGatewayWithBackend lets callers point the client at a different backend.
func NewGatewayWithBackend(secretKey string, backend stripe.Backend) *Gateway {
	return &Gateway{
		client: paymentintent.Client{B: backend, Key: secretKey},
		hasKey: secretKey != "",
	}
}

// CreateIntent creates a card payment intent for amount minor units.
func (g *Gateway) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*ports.PaymentIntent, error) {
	if !g.hasKey {
		return nil, errMissingKey
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	pi, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	return &ports.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
