package payment

import (
	"context"
	"fmt"
)

const paystackBase = "https://api.paystack.co"

type Paystack struct {
	client    *apiClient
	publicKey string
}

func NewPaystack(secretKey, publicKey, baseURL string) (*Paystack, error) {
	if secretKey == "" || publicKey == "" {
		return nil, fmt.Errorf("paystack configuration missing")
	}
	if baseURL == "" {
		baseURL = paystackBase
	}
	return &Paystack{
		client:    newAPIClient("paystack", baseURL, secretKey),
		publicKey: publicKey,
	}, nil
}

func (p *Paystack) Name() string      { return "paystack" }
func (p *Paystack) PublicKey() string { return p.publicKey }

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (p *Paystack) Initialize(ctx context.Context, req InitRequest) (*InitResult, error) {
	payload := map[string]interface{}{
		"email":     req.Email,
		"amount":    req.AmountMinor,
		"currency":  req.Currency,
		"reference": req.Reference,
	}
	if req.Description != "" {
		payload["metadata"] = map[string]string{"description": req.Description}
	}

	var resp paystackInitResponse
	if err := p.client.do(ctx, "POST", "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack error: %s", resp.Message)
	}

	return &InitResult{
		Provider:    p.Name(),
		Reference:   resp.Data.Reference,
		PublicKey:   p.publicKey,
		AccessCode:  resp.Data.AccessCode,
		CheckoutURL: resp.Data.AuthorizationURL,
	}, nil
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"` // success, failed, abandoned, pending
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // minor units
		Currency  string `json:"currency"`
	} `json:"data"`
}

func (p *Paystack) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var resp paystackVerifyResponse
	if err := p.client.do(ctx, "GET", "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack error: %s", resp.Message)
	}

	return &VerifyResult{
		Reference:   resp.Data.Reference,
		Status:      mapPaystackStatus(resp.Data.Status),
		AmountMinor: resp.Data.Amount,
		Currency:    resp.Data.Currency,
	}, nil
}

func mapPaystackStatus(s string) Status {
	switch s {
	case "success":
		return StatusSuccess
	case "failed":
		return StatusFailed
	case "abandoned":
		return StatusCancelled
	default:
		return StatusPending
	}
}
