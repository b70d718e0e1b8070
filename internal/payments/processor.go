package payments

import "context"

// Intent mirrors the payment processor's intent: the client secret is handed
// to the browser to confirm the card payment, nothing else leaves the server.
type Intent struct {
	ID           string
	ClientSecret string
}

// Processor is the payment-processor boundary. Amounts are in the smallest
// currency unit (cents for USD).
type Processor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	// Transfer moves a commission to a connected account.
	Transfer(ctx context.Context, amount int64, currency, destination string) error
}
