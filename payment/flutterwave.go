package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

const flutterwaveBase = "https://api.flutterwave.com"

type Flutterwave struct {
	client    *apiClient
	publicKey string
}

func NewFlutterwave(secretKey, publicKey, baseURL string) (*Flutterwave, error) {
	if secretKey == "" || publicKey == "" {
		return nil, fmt.Errorf("flutterwave configuration missing")
	}
	if baseURL == "" {
		baseURL = flutterwaveBase
	}
	return &Flutterwave{
		client:    newAPIClient("flutterwave", baseURL, secretKey),
		publicKey: publicKey,
	}, nil
}

func (f *Flutterwave) Name() string      { return "flutterwave" }
func (f *Flutterwave) PublicKey() string { return f.publicKey }

type flutterwaveResponse struct {
	Status  string `json:"status"` // "success" or "error"
	Message string `json:"message"`
	Data    struct {
		Link     string          `json:"link"`
		Status   string          `json:"status"` // verify: "successful", "failed"
		TxRef    string          `json:"tx_ref"`
		Amount   decimal.Decimal `json:"amount"` // major units
		Currency string          `json:"currency"`
	} `json:"data"`
}

func (f *Flutterwave) Initialize(ctx context.Context, req InitRequest) (*InitResult, error) {
	// Flutterwave takes the amount in major units.
	amount := decimal.NewFromInt(req.AmountMinor).Div(decimal.NewFromInt(100))
	payload := map[string]interface{}{
		"tx_ref":   req.Reference,
		"amount":   amount.String(),
		"currency": req.Currency,
		"customer": map[string]string{"email": req.Email},
	}
	if req.Description != "" {
		payload["customizations"] = map[string]string{"description": req.Description}
	}

	var resp flutterwaveResponse
	if err := f.client.do(ctx, "POST", "/v3/payments", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("flutterwave error: %s", resp.Message)
	}

	return &InitResult{
		Provider:    f.Name(),
		Reference:   req.Reference,
		PublicKey:   f.publicKey,
		CheckoutURL: resp.Data.Link,
	}, nil
}

func (f *Flutterwave) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var resp flutterwaveResponse
	path := "/v3/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)
	if err := f.client.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("flutterwave error: %s", resp.Message)
	}

	return &VerifyResult{
		Reference:   resp.Data.TxRef,
		Status:      mapFlutterwaveStatus(resp.Data.Status),
		AmountMinor: resp.Data.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:    resp.Data.Currency,
	}, nil
}

func mapFlutterwaveStatus(s string) Status {
	switch s {
	case "successful":
		return StatusSuccess
	case "failed":
		return StatusFailed
	case "cancelled":
		return StatusCancelled
	default:
		return StatusPending
	}
}
