package market

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"golang.org/x/sync/errgroup"
)

// StockClient reads quotes from the apilayer alpha_vantage API, one request per
// symbol. Requests run concurrently up to MaxConcurrency.
type StockClient struct {
	baseURL string
	apiKey  string
	limit   int
	opts    Options
	logger  logging.Logger
}

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

const priceField = "05. price"

// NewStockClient creates the stock price client.
func NewStockClient(opts Options, logger logging.Logger) *StockClient {
	endpoint := opts.StocksURL
	if endpoint == "" {
		endpoint = "https://api.apilayer.com/alpha_vantage/quote"
	}
	limit := opts.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	return &StockClient{
		baseURL: endpoint,
		apiKey:  opts.APIKey,
		limit:   limit,
		opts:    opts,
		logger:  logging.OrNop(logger).WithField(logging.FieldProvider, ProviderAPILayer),
	}
}

// Prices implements PriceSource.
func (c *StockClient) Prices(ctx context.Context, symbols []string) models.Quotes {
	quotes := models.NullQuotes(symbols)
	if len(symbols) == 0 {
		return quotes
	}
	if c.apiKey == "" {
		c.logger.Warn("API key is not set, stock prices unavailable")
		return quotes
	}

	var g errgroup.Group
	g.SetLimit(c.limit)
	for i := range quotes {
		i := i
		g.Go(func() error {
			// each goroutine owns quotes[i]
			quotes[i].Value = c.price(ctx, quotes[i].Symbol)
			return nil
		})
	}
	_ = g.Wait()

	return quotes
}

func (c *StockClient) price(ctx context.Context, symbol string) *float64 {
	log := c.logger.WithField(logging.FieldSymbol, symbol)

	var body globalQuoteResponse
	endpoint := c.baseURL + "?" + url.Values{"symbol": {symbol}}.Encode()
	if err := getJSON(ctx, c.opts.httpClient(), endpoint, c.apiKey, &body); err != nil {
		log.WithError(err).Error("Failed to fetch stock price")
		return nil
	}

	raw, ok := body.GlobalQuote[priceField]
	if !ok {
		log.Warn("Price missing from response")
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		log.WithError(err).Warn("Malformed stock price")
		return nil
	}
	return models.Float(price)
}
