package market

import (
	"context"
	"net/url"
	"strings"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
)

// ExchangeRatesClient reads rates from the apilayer exchangerates_data API.
type ExchangeRatesClient struct {
	baseURL  string
	apiKey   string
	currency string
	opts     Options
	logger   logging.Logger
}

type latestRatesResponse struct {
	Success *bool              `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
}

// NewExchangeRatesClient creates the apilayer rate client.
func NewExchangeRatesClient(opts Options, logger logging.Logger) *ExchangeRatesClient {
	base := opts.BaseCurrency
	if base == "" {
		base = "USD"
	}
	endpoint := opts.ExchangeRatesURL
	if endpoint == "" {
		endpoint = "https://api.apilayer.com/exchangerates_data/latest"
	}
	return &ExchangeRatesClient{
		baseURL:  endpoint,
		apiKey:   opts.APIKey,
		currency: base,
		opts:     opts,
		logger:   logging.OrNop(logger).WithField(logging.FieldProvider, ProviderAPILayer),
	}
}

// Rates implements RateSource.
func (c *ExchangeRatesClient) Rates(ctx context.Context, currencies []string) models.Quotes {
	quotes := models.NullQuotes(currencies)
	if len(currencies) == 0 {
		return quotes
	}
	if c.apiKey == "" {
		c.logger.Warn("API key is not set, currency rates unavailable")
		return quotes
	}

	query := url.Values{}
	query.Set("base", c.currency)
	query.Set("symbols", strings.Join(currencies, ","))

	var body latestRatesResponse
	if err := getJSON(ctx, c.opts.httpClient(), c.baseURL+"?"+query.Encode(), c.apiKey, &body); err != nil {
		c.logger.WithError(err).Error("Failed to fetch currency rates")
		return quotes
	}
	if (body.Success != nil && !*body.Success) || body.Rates == nil {
		c.logger.Error("Unexpected currency rates response")
		return quotes
	}

	for i, quote := range quotes {
		if rate, ok := body.Rates[quote.Symbol]; ok {
			quotes[i].Value = models.Float(rate)
		} else {
			c.logger.Warn("Currency missing from response", logging.F(logging.FieldSymbol, quote.Symbol))
		}
	}
	return quotes
}
