package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystack_Initialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_x", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buyer@example.com", body["email"])
		assert.Equal(t, float64(4999), body["amount"])
		assert.Equal(t, "USD", body["currency"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "abc",
				"reference":         "ref-1",
			},
		})
	}))
	defer srv.Close()

	p, err := NewPaystack("sk_test_x", "pk_test_x", srv.URL)
	require.NoError(t, err)

	res, err := p.Initialize(context.Background(), InitRequest{
		Reference:   "ref-1",
		AmountMinor: 4999,
		Currency:    "USD",
		Email:       "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "paystack", res.Provider)
	assert.Equal(t, "ref-1", res.Reference)
	assert.Equal(t, "pk_test_x", res.PublicKey)
	assert.Equal(t, "abc", res.AccessCode)
}

func TestPaystack_Verify(t *testing.T) {
	cases := []struct {
		apiStatus string
		want      Status
	}{
		{"success", StatusSuccess},
		{"failed", StatusFailed},
		{"abandoned", StatusCancelled},
		{"pending", StatusPending},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/transaction/verify/ref-1", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data": map[string]interface{}{
					"status":    tc.apiStatus,
					"reference": "ref-1",
					"amount":    4999,
					"currency":  "USD",
				},
			})
		}))

		p, err := NewPaystack("sk_test_x", "pk_test_x", srv.URL)
		require.NoError(t, err)

		res, err := p.Verify(context.Background(), "ref-1")
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.Status, "api status %q", tc.apiStatus)
		assert.Equal(t, int64(4999), res.AmountMinor)

		srv.Close()
	}
}

func TestPaystack_APIErrorSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	p, err := NewPaystack("sk_bad", "pk_test_x", srv.URL)
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), "ref-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestPaystack_MissingConfig(t *testing.T) {
	_, err := NewPaystack("", "pk", "")
	assert.Error(t, err)
}

func TestFlutterwave_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/transactions/verify_by_reference", r.URL.Path)
		require.Equal(t, "ref-2", r.URL.Query().Get("tx_ref"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"status":   "successful",
				"tx_ref":   "ref-2",
				"amount":   102.5,
				"currency": "USD",
			},
		})
	}))
	defer srv.Close()

	f, err := NewFlutterwave("sk_test_y", "pk_test_y", srv.URL)
	require.NoError(t, err)

	res, err := f.Verify(context.Background(), "ref-2")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, int64(10250), res.AmountMinor) // major units converted back
}
