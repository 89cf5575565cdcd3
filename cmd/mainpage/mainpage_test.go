package mainpage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/spend-insights/cmd/mainpage"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) (*container.Container, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "operations.csv")
	content := "Дата операции,Номер карты,Сумма операции,Категория\n" +
		"02.05.2024 10:00:00,*7197,100,Кафе\n" +
		"03.05.2024 10:00:00,*7197,50,Кафе\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0o600))

	cfg := &config.Config{
		Log:         config.LogConfig{Level: "info", Format: "text"},
		Data:        config.DataConfig{Directory: dir, SettingsFile: filepath.Join(dir, "settings.json"), ReportsDir: dir},
		CSV:         config.CSVConfig{Delimiter: ","},
		Aggregation: config.AggregationConfig{TopN: 5},
		Market:      config.MarketConfig{CurrencyProvider: config.ProviderAPILayer, TimeoutSeconds: 1, MaxConcurrency: 1},
		Reports:     config.ReportsConfig{Format: "csv", WeekdayLocale: "ru"},
	}
	now := time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)
	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewMockLogger()), container.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return c, input
}

func TestMainPageCommand_Metadata(t *testing.T) {
	assert.Equal(t, "main-page", mainpage.Cmd.Use)
	assert.Contains(t, mainpage.Cmd.Short, "main page")
	assert.NotNil(t, mainpage.Cmd.RunE)

	dateFlag := mainpage.Cmd.Flags().Lookup("date")
	require.NotNil(t, dateFlag)
	assert.Equal(t, "d", dateFlag.Shorthand)

	prettyFlag := mainpage.Cmd.Flags().Lookup("pretty")
	require.NotNil(t, prettyFlag)
	assert.Equal(t, "false", prettyFlag.DefValue)
}

func TestRun_JSON(t *testing.T) {
	c, input := newContainer(t)
	var out bytes.Buffer

	require.NoError(t, mainpage.Run(context.Background(), c, input, mainpage.Options{}, &out))

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "Добрый день", body["greeting"])
	assert.Equal(t, map[string]any{"from": "2024-05-01", "to": "2024-05-20"}, body["period"])
	card := body["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, "7197", card["last_digits"])
	assert.Equal(t, 1.5, card["cashback"])
}

func TestRun_Pretty(t *testing.T) {
	c, input := newContainer(t)
	var out bytes.Buffer

	opts := mainpage.Options{Date: "2024-05-03 23:30:00", Pretty: true}
	require.NoError(t, mainpage.Run(context.Background(), c, input, opts, &out))
	assert.Contains(t, out.String(), "Доброй ночи!")
	assert.Contains(t, out.String(), "*7197")
}

func TestRun_Failure(t *testing.T) {
	c, input := newContainer(t)
	var out bytes.Buffer

	err := mainpage.Run(context.Background(), c, input, mainpage.Options{Date: "03/05/2024"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date format error")
	assert.Contains(t, out.String(), `"error"`)
}
