package payments

import (
	"github.com/stripe/stripe-go/v79"               // Stripe SDK types
	"github.com/stripe/stripe-go/v79/paymentintent" // PaymentIntent API
)

// IntentCreator requests a client-confirmable payment intent from the
// gateway and returns the client secret needed to confirm it caller-side.
type IntentCreator interface {
	CreateIntent(amount int64, currency string) (string, error)
}

// StripeGateway implements IntentCreator against the Stripe PaymentIntents API
type StripeGateway struct{}

// NewStripeGateway configures the Stripe SDK with the account secret key
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey // SDK-wide key, set once at startup
	return &StripeGateway{}
}

// CreateIntent creates a card payment intent for an amount in minor units
func (g *StripeGateway) CreateIntent(amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),                  // Amount in minor units
		Currency:           stripe.String(currency),               // ISO currency code
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),  // Card payments only
	}
	pi, err := paymentintent.New(params) // Request the intent from Stripe
	if err != nil {
		return "", err // Gateway failure, surface to the caller
	}
	return pi.ClientSecret, nil // Only the client secret leaves this package
}
