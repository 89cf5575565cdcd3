// Package market fetches currency exchange rates and stock prices. Every lookup
// degrades to a null value on failure; callers always get one entry per
// requested symbol, in request order.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
)

// APIKeyHeader carries the apilayer key.
const APIKeyHeader = "apikey"

// Currency rate providers.
const (
	ProviderAPILayer = "apilayer"
	ProviderCBR      = "cbr"
)

// RateSource returns exchange rates for currency codes.
type RateSource interface {
	Rates(ctx context.Context, currencies []string) models.Quotes
}

// PriceSource returns the latest price for stock symbols.
type PriceSource interface {
	Prices(ctx context.Context, symbols []string) models.Quotes
}

// Options configures the market clients.
type Options struct {
	APIKey           string
	BaseCurrency     string
	ExchangeRatesURL string
	CBRURL           string
	StocksURL        string
	Timeout          time.Duration
	MaxConcurrency   int
	HTTPClient       *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// NewRateSource returns the rate source for provider.
func NewRateSource(provider string, opts Options, logger logging.Logger) (RateSource, error) {
	switch provider {
	case "", ProviderAPILayer:
		return NewExchangeRatesClient(opts, logger), nil
	case ProviderCBR:
		return NewCBRClient(opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown currency provider: %s", provider)
	}
}

// getJSON performs an authenticated GET and decodes a JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
