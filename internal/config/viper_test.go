package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "data", config.Data.Directory)
	assert.Equal(t, "data/operations.xlsx", config.Data.TransactionsFile)
	assert.Equal(t, "data/user_settings.json", config.Data.SettingsFile)
	assert.Equal(t, "data/reports", config.Data.ReportsDir)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, 5, config.Aggregation.TopN)
	assert.Equal(t, ProviderAPILayer, config.Market.CurrencyProvider)
	assert.Equal(t, "USD", config.Market.BaseCurrency)
	assert.Equal(t, 10, config.Market.TimeoutSeconds)
	assert.Equal(t, 4, config.Market.MaxConcurrency)
	assert.Empty(t, config.Market.APIKey)
	assert.Equal(t, "csv", config.Reports.Format)
	assert.Equal(t, "ru", config.Reports.WeekdayLocale)
	assert.Equal(t, ":8080", config.Server.Address)
	assert.Empty(t, config.Server.ReportSchedule)
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"SPEND_LOG_LEVEL":                "debug",
		"SPEND_LOG_FORMAT":               "json",
		"SPEND_CSV_DELIMITER":            ";",
		"SPEND_AGGREGATION_TOP_N":        "3",
		"SPEND_MARKET_CURRENCY_PROVIDER": "cbr",
		"SPEND_REPORTS_WEEKDAY_LOCALE":   "en",
		"API_KEY":                        "test-api-key",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, 3, config.Aggregation.TopN)
	assert.Equal(t, ProviderCBR, config.Market.CurrencyProvider)
	assert.Equal(t, "en", config.Reports.WeekdayLocale)
	assert.Equal(t, "test-api-key", config.Market.APIKey)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
data:
  transactions_file: "ledger.csv"
market:
  timeout_seconds: 3
  max_concurrency: 2
reports:
  format: "json"
server:
  address: "127.0.0.1:9090"
  report_schedule: "0 9 * * 1"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "ledger.csv", config.Data.TransactionsFile)
	assert.Equal(t, 3, config.Market.TimeoutSeconds)
	assert.Equal(t, "3s", config.Market.Timeout().String())
	assert.Equal(t, 2, config.Market.MaxConcurrency)
	assert.Equal(t, "json", config.Reports.Format)
	assert.Equal(t, "127.0.0.1:9090", config.Server.Address)
	assert.Equal(t, "0 9 * * 1", config.Server.ReportSchedule)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aggregation:\n  top_n: 10\n"), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, config.Aggregation.TopN)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
aggregation:
  top_n: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("SPEND_LOG_LEVEL", "error")
	t.Setenv("SPEND_AGGREGATION_TOP_N", "9")
	t.Setenv("SPEND_MARKET_API_KEY", "prefixed-key")
	t.Setenv("API_KEY", "plain-key")

	chdir(t, tempDir)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)            // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)            // config file value
	assert.Equal(t, 9, config.Aggregation.TopN)           // env var wins
	assert.Equal(t, "prefixed-key", config.Market.APIKey) // prefixed name bound first
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"empty CSV delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"non-positive top n", func(c *Config) { c.Aggregation.TopN = 0 }, "aggregation.top_n must be positive"},
		{"unknown provider", func(c *Config) { c.Market.CurrencyProvider = "ecb" }, "market.currency_provider"},
		{"timeout too large", func(c *Config) { c.Market.TimeoutSeconds = 301 }, "market.timeout_seconds must be between 1 and 300"},
		{"no concurrency", func(c *Config) { c.Market.MaxConcurrency = 0 }, "market.max_concurrency must be between 1 and 64"},
		{"unknown report format", func(c *Config) { c.Reports.Format = "pdf" }, "reports.format must be one of"},
		{"unknown locale", func(c *Config) { c.Reports.WeekdayLocale = "de" }, "reports.weekday_locale"},
		{"bad cron expression", func(c *Config) { c.Server.ReportSchedule = "every monday" }, "server.report_schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}

	assert.NoError(t, validateConfig(validConfig()))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name  string
		level string
		fmt   string
		want  string
	}{
		{"text format info level", "info", "text", "info"},
		{"json format debug level", "debug", "json", "debug"},
		{"invalid level falls back to info", "loud", "text", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: tt.level, Format: tt.fmt}})
			require.NotNil(t, logger)
			assert.Equal(t, tt.want, logger.GetLevel().String())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SPEND_TEST_LOADED=yes\n"), 0644))
	t.Setenv("SPEND_TEST_LOADED", "")
	require.NoError(t, os.Unsetenv("SPEND_TEST_LOADED"))

	loaded, err := LoadEnv(filepath.Join(dir, "missing.env"), envFile)
	require.NoError(t, err)
	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "yes", os.Getenv("SPEND_TEST_LOADED"))

	loaded, err = LoadEnv(filepath.Join(dir, "nothing.env"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func validConfig() *Config {
	return &Config{
		Log:         LogConfig{Level: "info", Format: "text"},
		CSV:         CSVConfig{Delimiter: ","},
		Aggregation: AggregationConfig{TopN: 5},
		Market: MarketConfig{
			CurrencyProvider: ProviderAPILayer,
			TimeoutSeconds:   10,
			MaxConcurrency:   4,
		},
		Reports: ReportsConfig{Format: "csv", WeekdayLocale: "ru"},
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

// clearTestEnvVars unsets every override for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SPEND_LOG_LEVEL",
		"SPEND_LOG_FORMAT",
		"SPEND_CSV_DELIMITER",
		"SPEND_DATA_DIRECTORY",
		"SPEND_DATA_TRANSACTIONS_FILE",
		"SPEND_DATA_SETTINGS_FILE",
		"SPEND_DATA_REPORTS_DIR",
		"SPEND_AGGREGATION_TOP_N",
		"SPEND_MARKET_CURRENCY_PROVIDER",
		"SPEND_MARKET_BASE_CURRENCY",
		"SPEND_MARKET_TIMEOUT_SECONDS",
		"SPEND_MARKET_MAX_CONCURRENCY",
		"SPEND_MARKET_API_KEY",
		"SPEND_REPORTS_FORMAT",
		"SPEND_REPORTS_WEEKDAY_LOCALE",
		"SPEND_SERVER_ADDRESS",
		"SPEND_SERVER_REPORT_SCHEDULE",
		"API_KEY",
	}

	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
