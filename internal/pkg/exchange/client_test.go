package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/latest/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"USD":1.10,"GBP":0.85}}`))
	}))
}

func TestClient_LatestRates(t *testing.T) {
	server := newRateServer(t)
	defer server.Close()

	client := NewClient(server.URL)
	rates, err := client.LatestRates(context.Background(), "EUR")
	require.NoError(t, err)

	assert.Equal(t, "EUR", rates.Base)
	assert.InDelta(t, 1.10, rates.Rates["USD"], 0.001)
}

func TestClient_Convert(t *testing.T) {
	server := newRateServer(t)
	defer server.Close()

	client := NewClient(server.URL)
	converted, err := client.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "USD")
	require.NoError(t, err)

	assert.True(t, converted.Equal(decimal.NewFromFloat(110)), "got %s", converted)
}

func TestClient_Convert_SameCurrencySkipsLookup(t *testing.T) {
	// No server at all: same-currency conversion must not hit the network.
	client := NewClient("http://127.0.0.1:0")

	amount := decimal.NewFromInt(42)
	converted, err := client.Convert(context.Background(), amount, "USD", "USD")
	require.NoError(t, err)
	assert.True(t, converted.Equal(amount))
}

func TestClient_Convert_UnknownCurrency(t *testing.T) {
	server := newRateServer(t)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "JPY")
	assert.ErrorIs(t, err, ErrRateNotFound)
}
