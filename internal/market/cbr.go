package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/xmlutils"

	"github.com/shopspring/decimal"
)

// homeCurrency is the currency the CBR feed quotes against.
const homeCurrency = "RUB"

// CBRClient reads the Central Bank of Russia daily rates feed. Values are rubles
// per one unit of the currency. The feed needs no API key.
type CBRClient struct {
	url    string
	opts   Options
	paths  xmlutils.CBRDaily
	logger logging.Logger
}

// NewCBRClient creates the CBR rate client.
func NewCBRClient(opts Options, logger logging.Logger) *CBRClient {
	endpoint := opts.CBRURL
	if endpoint == "" {
		endpoint = "https://www.cbr.ru/scripts/XML_daily.asp"
	}
	return &CBRClient{
		url:    endpoint,
		opts:   opts,
		paths:  xmlutils.DefaultCBRDailyXPaths(),
		logger: logging.OrNop(logger).WithField(logging.FieldProvider, ProviderCBR),
	}
}

// Rates implements RateSource.
func (c *CBRClient) Rates(ctx context.Context, currencies []string) models.Quotes {
	quotes := models.NullQuotes(currencies)
	if len(currencies) == 0 {
		return quotes
	}

	rates, err := c.fetch(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Failed to fetch currency rates")
		return quotes
	}

	for i, quote := range quotes {
		code := strings.ToUpper(quote.Symbol)
		if code == homeCurrency {
			quotes[i].Value = models.Float(1)
			continue
		}
		if rate, ok := rates[code]; ok {
			quotes[i].Value = models.Float(rate)
		} else {
			c.logger.Warn("Currency missing from response", logging.F(logging.FieldSymbol, quote.Symbol))
		}
	}
	return quotes
}

func (c *CBRClient) fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.opts.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	root, err := xmlutils.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64)
	for _, node := range xmlutils.Nodes(root, c.paths.Valute) {
		code := xmlutils.Value(node, c.paths.CharCode)
		value, err := parseFeedNumber(xmlutils.Value(node, c.paths.Value))
		if code == "" || err != nil {
			c.logger.Debug("Skipping malformed rate entry", logging.F(logging.FieldSymbol, code))
			continue
		}
		nominal, err := parseFeedNumber(xmlutils.Value(node, c.paths.Nominal))
		if err != nil || !nominal.IsPositive() {
			nominal = decimal.NewFromInt(1)
		}
		rates[strings.ToUpper(code)] = value.Div(nominal).Round(4).InexactFloat64()
	}

	if len(rates) == 0 {
		return nil, fmt.Errorf("no rates in feed")
	}

	c.logger.Debug("Fetched CBR rates",
		logging.F(logging.FieldCount, len(rates)),
		logging.F(logging.FieldPeriod, xmlutils.Value(root, c.paths.Date)))

	return rates, nil
}

// parseFeedNumber reads the feed's decimal-comma numbers ("80,1234").
func parseFeedNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}
