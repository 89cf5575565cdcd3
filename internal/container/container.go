// Package container provides dependency injection for the spend-insights application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"
	"unicode/utf8"

	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/homepage"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/market"
	"fjacquet/spend-insights/internal/reports"
	"fjacquet/spend-insights/internal/services"
	"fjacquet/spend-insights/internal/settings"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config
	clock  func() time.Time

	loader   *ledger.Loader
	settings *settings.Store
	rates    market.RateSource
	prices   market.PriceSource

	reporter     *reports.Reporter
	sink         *reports.FileSink
	runner       *reports.Runner
	weekdayNames dateutils.WeekdayNames
	calculator   *services.Calculator
	homepage     *homepage.Builder
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger logging.Logger
	clock  func() time.Time
}

// WithLogger replaces the logger built from the log section.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock replaces time.Now for report windows and file names.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}

	delimiter, _ := utf8.DecodeRuneInString(cfg.CSV.Delimiter)
	if delimiter == utf8.RuneError {
		delimiter = ','
	}
	loader := ledger.NewLoader(delimiter, logger)

	settingsStore := settings.NewStore(cfg.Data.SettingsFile, logger)

	marketOpts := market.Options{
		APIKey:           cfg.Market.APIKey,
		BaseCurrency:     cfg.Market.BaseCurrency,
		ExchangeRatesURL: cfg.Market.ExchangeRatesURL,
		CBRURL:           cfg.Market.CBRURL,
		StocksURL:        cfg.Market.StocksURL,
		Timeout:          cfg.Market.Timeout(),
		MaxConcurrency:   cfg.Market.MaxConcurrency,
	}
	rates, err := market.NewRateSource(cfg.Market.CurrencyProvider, marketOpts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate source: %w", err)
	}
	prices := market.NewStockClient(marketOpts, logger)

	weekdayNames, err := dateutils.WeekdayNamesFor(cfg.Reports.WeekdayLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve weekday names: %w", err)
	}

	reporter := reports.NewReporter(o.clock, logger)
	sink := reports.NewFileSink(cfg.Data.ReportsDir, cfg.Reports.Format, o.clock, logger)
	runner := reports.NewRunner(loader, reporter, sink, weekdayNames, reports.WeekdayFileName(cfg.Reports.Format), logger)

	builder := homepage.NewBuilder(loader, settingsStore, rates, prices, cfg.Aggregation.TopN, logger)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldProvider, cfg.Market.CurrencyProvider),
		logging.F("api_key_set", cfg.Market.APIKey != ""))

	return &Container{
		logger:       logger,
		config:       cfg,
		clock:        o.clock,
		loader:       loader,
		settings:     settingsStore,
		rates:        rates,
		prices:       prices,
		reporter:     reporter,
		sink:         sink,
		runner:       runner,
		weekdayNames: weekdayNames,
		calculator:   services.NewCalculator(logger),
		homepage:     builder,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClock returns the clock used for report windows.
func (c *Container) GetClock() func() time.Time {
	return c.clock
}

// GetLoader returns the ledger loader.
func (c *Container) GetLoader() *ledger.Loader {
	return c.loader
}

// GetSettingsStore returns the user settings store.
func (c *Container) GetSettingsStore() *settings.Store {
	return c.settings
}

// GetRateSource returns the configured currency rate source.
func (c *Container) GetRateSource() market.RateSource {
	return c.rates
}

// GetPriceSource returns the stock price source.
func (c *Container) GetPriceSource() market.PriceSource {
	return c.prices
}

// GetReporter returns the category and weekday reporter.
func (c *Container) GetReporter() *reports.Reporter {
	return c.reporter
}

// GetReportSink returns the sink writing report files into the reports directory.
func (c *Container) GetReportSink() *reports.FileSink {
	return c.sink
}

// GetReportRunner returns the runner that loads a ledger and writes reports.
func (c *Container) GetReportRunner() *reports.Runner {
	return c.runner
}

// GetWeekdayNames returns the weekday labels for the configured locale.
func (c *Container) GetWeekdayNames() dateutils.WeekdayNames {
	return c.weekdayNames
}

// GetCalculator returns the cashback and investment calculator.
func (c *Container) GetCalculator() *services.Calculator {
	return c.calculator
}

// GetHomepage returns the main page builder.
func (c *Container) GetHomepage() *homepage.Builder {
	return c.homepage
}

// LedgerSource resolves the ledger to read: path when given, otherwise the
// configured transactions file.
func (c *Container) LedgerSource(path string) ledger.Source {
	if path == "" {
		path = c.config.Data.TransactionsFile
	}
	return ledger.FromFile(path)
}

// LoadTransactions reads and cleans the ledger at path (see LedgerSource).
func (c *Container) LoadTransactions(path string, required ...string) (ledger.CoerceResult, error) {
	return ledger.Prepare(c.loader, c.LedgerSource(path), c.logger, required...)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
