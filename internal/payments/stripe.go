package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type stripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string) Processor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeProcessor{api: api}
}

func (p *stripeProcessor) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (p *stripeProcessor) Transfer(ctx context.Context, amount int64, currency, destination string) error {
	params := &stripe.TransferParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Destination: stripe.String(destination),
	}
	if _, err := p.api.Transfers.New(params); err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}
