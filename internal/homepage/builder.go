// Package homepage assembles the main page summary: greeting, period, card
// totals, top transactions, currency rates and stock prices.
package homepage

import (
	"context"
	"time"

	"fjacquet/spend-insights/internal/aggregator"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/market"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// RequiredColumns must be present in every main page ledger.
var RequiredColumns = []string{models.ColumnDate, models.ColumnCardNumber, models.ColumnAmount}

// SettingsLoader supplies the currencies and stocks to quote.
type SettingsLoader interface {
	Load() models.UserSettings
}

// Builder produces MainPageResponse values. Rate and price sources are
// optional; without them every quote is null.
type Builder struct {
	loader   *ledger.Loader
	settings SettingsLoader
	rates    market.RateSource
	prices   market.PriceSource
	topN     int
	logger   logging.Logger
}

// NewBuilder wires a builder. A nil loader reads CSV files with ','.
func NewBuilder(
	loader *ledger.Loader,
	settings SettingsLoader,
	rates market.RateSource,
	prices market.PriceSource,
	topN int,
	logger logging.Logger,
) *Builder {
	logger = logging.OrNop(logger)
	if loader == nil {
		loader = ledger.NewLoader(',', logger)
	}
	if topN <= 0 {
		topN = aggregator.DefaultTopN
	}
	return &Builder{
		loader:   loader,
		settings: settings,
		rates:    rates,
		prices:   prices,
		topN:     topN,
		logger:   logger,
	}
}

// Build summarizes the month-to-date ledger up to reference ("YYYY-MM-DD HH:MM:SS").
// Failures never escape: they come back as the error variant of the response.
func (b *Builder) Build(ctx context.Context, reference string, source ledger.Source) models.MainPageResponse {
	page, err := b.build(ctx, reference, source)
	if err != nil {
		b.logger.WithError(err).Warn("Main page could not be built",
			logging.F(logging.FieldValue, reference))
		return models.ErrorResponse(parsererror.Describe(err))
	}
	return models.PageResponse(page)
}

func (b *Builder) build(ctx context.Context, reference string, source ledger.Source) (*models.MainPage, error) {
	instant, err := dateutils.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	result, err := ledger.Prepare(b.loader, source, b.logger, RequiredColumns...)
	if err != nil {
		return nil, err
	}

	window := dateutils.MonthToDate(instant)
	txs := window.Filter(result.Transactions)
	b.logger.Debug("Filtered ledger to period",
		logging.F(logging.FieldPeriod, dateutils.ToISODate(window.Start)+".."+dateutils.ToISODate(window.End)),
		logging.F(logging.FieldCount, len(txs)),
		logging.F(logging.FieldDropped, result.Dropped),
		logging.F(logging.FieldValue, aggregator.Total(txs).StringFixed(2)))

	rates, prices := b.quotes(ctx)

	return &models.MainPage{
		Greeting: Greeting(instant),
		Period: models.Period{
			From: dateutils.ToISODate(window.Start),
			To:   dateutils.ToISODate(window.End),
		},
		Cards:           aggregator.CardStats(txs),
		TopTransactions: aggregator.TopTransactions(txs, b.topN),
		CurrencyRates:   rates,
		StockPrices:     prices,
	}, nil
}

// quotes fetches rates and prices for the user's settings side by side.
func (b *Builder) quotes(ctx context.Context) (models.Quotes, models.Quotes) {
	settings := models.EmptySettings()
	if b.settings != nil {
		settings = b.settings.Load().Normalized()
	}

	rates := models.NullQuotes(settings.Currencies)
	prices := models.NullQuotes(settings.Stocks)

	var g errgroup.Group
	if b.rates != nil && len(settings.Currencies) > 0 {
		g.Go(func() error {
			rates = b.rates.Rates(ctx, settings.Currencies)
			return nil
		})
	}
	if b.prices != nil && len(settings.Stocks) > 0 {
		g.Go(func() error {
			prices = b.prices.Prices(ctx, settings.Stocks)
			return nil
		})
	}
	_ = g.Wait()

	return rates, prices
}

// BuildAt is Build with a time.Time reference.
func (b *Builder) BuildAt(ctx context.Context, reference time.Time, source ledger.Source) models.MainPageResponse {
	return b.Build(ctx, reference.Format(dateutils.DateLayoutFull), source)
}
