// Package payment talks to the third-party checkout widget providers.
// Two providers are supported; which one backs the storefront is picked
// by configuration at startup.
package payment

import (
	"context"
	"fmt"
	"os"
)

type Status string

const (
	StatusSuccess   Status = "success"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// InitRequest carries everything a provider needs to open a widget
// session. Amount is in minor currency units, widget convention.
type InitRequest struct {
	Reference   string
	AmountMinor int64
	Currency    string
	Email       string
	Description string
}

// InitResult is the widget config returned to the front-end.
type InitResult struct {
	Provider    string `json:"provider"`
	Reference   string `json:"reference"`
	PublicKey   string `json:"publicKey"`
	AccessCode  string `json:"access_code,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// VerifyResult is the provider's verdict on a reference.
type VerifyResult struct {
	Reference   string `json:"reference"`
	Status      Status `json:"status"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type Provider interface {
	Name() string
	PublicKey() string
	Initialize(ctx context.Context, req InitRequest) (*InitResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// FromEnv builds the configured provider. PAYMENT_PROVIDER selects it;
// each provider reads its own keys.
func FromEnv() (Provider, error) {
	switch os.Getenv("PAYMENT_PROVIDER") {
	case "", "paystack":
		return NewPaystack(
			os.Getenv("PAYSTACK_SECRET_KEY"),
			os.Getenv("PAYSTACK_PUBLIC_KEY"),
			os.Getenv("PAYSTACK_BASE_URL"),
		)
	case "flutterwave":
		return NewFlutterwave(
			os.Getenv("FLUTTERWAVE_SECRET_KEY"),
			os.Getenv("FLUTTERWAVE_PUBLIC_KEY"),
			os.Getenv("FLUTTERWAVE_BASE_URL"),
		)
	default:
		return nil, fmt.Errorf("unknown payment provider %q", os.Getenv("PAYMENT_PROVIDER"))
	}
}
