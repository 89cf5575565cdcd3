package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/market"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (SPEND_LOG_LEVEL, SPEND_CSV_DELIMITER, ...).
const EnvPrefix = "SPEND"

// Currency providers understood by market.NewRateSource.
const (
	ProviderAPILayer = market.ProviderAPILayer
	ProviderCBR      = market.ProviderCBR
)

// LogConfig holds the logging section.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the ledger, the user settings and the report output.
type DataConfig struct {
	Directory        string `mapstructure:"directory" yaml:"directory"`
	TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
	SettingsFile     string `mapstructure:"settings_file" yaml:"settings_file"`
	ReportsDir       string `mapstructure:"reports_dir" yaml:"reports_dir"`
}

// CSVConfig holds the delimiter used when reading CSV ledgers.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// AggregationConfig tunes the main page aggregation.
type AggregationConfig struct {
	TopN int `mapstructure:"top_n" yaml:"top_n"`
}

// MarketConfig configures the currency rate and stock price clients.
type MarketConfig struct {
	CurrencyProvider string `mapstructure:"currency_provider" yaml:"currency_provider"`
	BaseCurrency     string `mapstructure:"base_currency" yaml:"base_currency"`
	ExchangeRatesURL string `mapstructure:"exchange_rates_url" yaml:"exchange_rates_url"`
	CBRURL           string `mapstructure:"cbr_url" yaml:"cbr_url"`
	StocksURL        string `mapstructure:"stocks_url" yaml:"stocks_url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxConcurrency   int    `mapstructure:"max_concurrency" yaml:"max_concurrency"`
	APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Timeout returns the per-request HTTP timeout.
func (m MarketConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// ReportsConfig controls report output.
type ReportsConfig struct {
	Format        string `mapstructure:"format" yaml:"format"`
	WeekdayLocale string `mapstructure:"weekday_locale" yaml:"weekday_locale"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	// ReportSchedule is a standard 5-field cron expression; empty disables the job.
	ReportSchedule string `mapstructure:"report_schedule" yaml:"report_schedule"`
}

// Config represents the complete application configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Data        DataConfig        `mapstructure:"data" yaml:"data"`
	CSV         CSVConfig         `mapstructure:"csv" yaml:"csv"`
	Aggregation AggregationConfig `mapstructure:"aggregation" yaml:"aggregation"`
	Market      MarketConfig      `mapstructure:"market" yaml:"market"`
	Reports     ReportsConfig     `mapstructure:"reports" yaml:"reports"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
}

// LoadConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file (configFile when set, otherwise config.yaml in
// $HOME/.spend-insights, .spend-insights or .), then SPEND_* environment variables.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spend-insights")
		v.AddConfigPath(".spend-insights")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The apilayer key is also accepted unprefixed
	if err := v.BindEnv("market.api_key", EnvPrefix+"_MARKET_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API_KEY environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.transactions_file", "data/operations.xlsx")
	v.SetDefault("data.settings_file", "data/user_settings.json")
	v.SetDefault("data.reports_dir", "data/reports")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("aggregation.top_n", 5)

	v.SetDefault("market.currency_provider", ProviderAPILayer)
	v.SetDefault("market.base_currency", "USD")
	v.SetDefault("market.exchange_rates_url", "https://api.apilayer.com/exchangerates_data/latest")
	v.SetDefault("market.cbr_url", "https://www.cbr.ru/scripts/XML_daily.asp")
	v.SetDefault("market.stocks_url", "https://api.apilayer.com/alpha_vantage/quote")
	v.SetDefault("market.timeout_seconds", 10)
	v.SetDefault("market.max_concurrency", 4)
	v.SetDefault("market.api_key", "")

	v.SetDefault("reports.format", "csv")
	v.SetDefault("reports.weekday_locale", "ru")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.report_schedule", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Aggregation.TopN < 1 {
		return fmt.Errorf("aggregation.top_n must be positive, got: %d", config.Aggregation.TopN)
	}

	switch config.Market.CurrencyProvider {
	case ProviderAPILayer, ProviderCBR:
	default:
		return fmt.Errorf("market.currency_provider must be '%s' or '%s', got: %s",
			ProviderAPILayer, ProviderCBR, config.Market.CurrencyProvider)
	}

	if config.Market.TimeoutSeconds < 1 || config.Market.TimeoutSeconds > 300 {
		return fmt.Errorf("market.timeout_seconds must be between 1 and 300, got: %d", config.Market.TimeoutSeconds)
	}

	if config.Market.MaxConcurrency < 1 || config.Market.MaxConcurrency > 64 {
		return fmt.Errorf("market.max_concurrency must be between 1 and 64, got: %d", config.Market.MaxConcurrency)
	}

	switch config.Reports.Format {
	case "csv", "json", "xml":
	default:
		return fmt.Errorf("reports.format must be one of csv, json, xml, got: %s", config.Reports.Format)
	}

	if _, err := dateutils.WeekdayNamesFor(config.Reports.WeekdayLocale); err != nil {
		return fmt.Errorf("reports.weekday_locale: %w", err)
	}

	if config.Server.ReportSchedule != "" {
		if _, err := cron.ParseStandard(config.Server.ReportSchedule); err != nil {
			return fmt.Errorf("server.report_schedule is not a valid cron expression: %w", err)
		}
	}

	return nil
}
