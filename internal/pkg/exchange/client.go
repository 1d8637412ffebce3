package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound = errors.New("exchange rate not found for currency")
)

// Rates holds the latest multipliers for one base currency.
type Rates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type Client interface {
	// LatestRates fetches the latest rates keyed by base currency code.
	LatestRates(ctx context.Context, baseCurrency string) (Rates, error)
	// Convert converts amount from one currency to another using the latest rates.
	// Conversion is for display only and is never persisted.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Client {
	return &ClientImpl{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ClientImpl) LatestRates(ctx context.Context, baseCurrency string) (Rates, error) {
	url := fmt.Sprintf("%s/v4/latest/%s", c.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Rates{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	var rates Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return Rates{}, fmt.Errorf("failed to decode exchange rates: %w", err)
	}

	return rates, nil
}

func (c *ClientImpl) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return amount, nil
	}

	rates, err := c.LatestRates(ctx, fromCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates.Rates[toCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateNotFound, toCurrency)
	}

	return amount.Mul(decimal.NewFromFloat(rate)), nil
}
