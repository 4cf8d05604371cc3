package payment

import (
	"context"

	"github.com/hamzatariq-git/shopmate-api/config"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeClient implements services.CheckoutClient over the Stripe SDK.
type StripeClient struct {
	successURL string
	cancelURL  string
}

var _ services.CheckoutClient = (*StripeClient)(nil)

func NewStripeClient(cfg *config.Config) *StripeClient {
	stripe.Key = cfg.StripeSecretKey
	return &StripeClient{
		successURL: cfg.StripeSuccessURL,
		cancelURL:  cfg.StripeCancelURL,
	}
}

// CreateCheckoutSession builds a hosted payment-mode checkout session with a
// single line item. The cart ID travels as client_reference_id and the
// serialized shipping address as metadata; the webhook reads both back.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p services.CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		CustomerEmail:     stripe.String(p.CustomerEmail),
		ClientReferenceID: stripe.String(p.CartID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductLabel),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("shippingAddress", p.ShippingAddressJSON)

	return session.New(params)
}
