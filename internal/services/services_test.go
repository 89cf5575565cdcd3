package services

import (
	"testing"
	"time"

	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func investmentRecords() []ledger.Record {
	return []ledger.Record{
		{"Дата операции": "2025-05-01", "Сумма операции": 1712},
		{"Дата операции": "2025-05-15", "Сумма операции": 803},
		{"Дата операции": "2025-05-20", "Сумма операции": 1000},
		{"Дата операции": "2025-06-02", "Сумма операции": 540},
	}
}

func TestInvestmentBank(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		records []ledger.Record
		limit   int64
		want    string
	}{
		{"limit 50", "2025-05", investmentRecords(), 50, "85"},
		{"limit 100", "2025-05", investmentRecords(), 100, "185"},
		{"other month only", "2025-06", investmentRecords(), 50, "10"},
		{"no transactions in month", "2024-05", investmentRecords(), 50, "0"},
		{"invalid month", "2025/05", investmentRecords(), 50, "0"},
		{"empty list", "2025-05", nil, 50, "0"},
		{"zero limit", "2025-05", investmentRecords(), 0, "0"},
		{"negative limit", "2025-05", investmentRecords(), -10, "0"},
		{"missing amount column", "2025-05", []ledger.Record{{"Дата операции": "2025-05-01"}}, 50, "0"},
		{
			name:  "bad rows skipped",
			month: "2025-05",
			records: []ledger.Record{
				{"Дата операции": "2025-05-01", "Сумма операции": 1712},
				{"Дата операции": "вчера", "Сумма операции": 803},
				{"Дата операции": "2025-05-03", "Сумма операции": "n/a"},
			},
			limit: 50,
			want:  "38",
		},
		{
			name:    "canonical column names",
			month:   "2025-05",
			records: []ledger.Record{{"date": "2025-05-01", "amount": "1712.30"}},
			limit:   10,
			want:    "7.7",
		},
	}

	calc := NewCalculator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.InvestmentBank(tt.month, tt.records, decimal.NewFromInt(tt.limit))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestInvestmentBank_LogsInvalidMonth(t *testing.T) {
	logger := logging.NewMockLogger()
	NewCalculator(logger).InvestmentBank("2025/05", investmentRecords(), decimal.NewFromInt(50))
	assert.True(t, logger.HasEntry("WARN", "Invalid investment month"))
}

func TestRoundUpSavings(t *testing.T) {
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Date: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1712)},
		{Date: time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC), Amount: decimal.NewFromInt(803)},
		{Date: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000)},
		{Date: time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC), Amount: decimal.NewFromInt(1)},
	}

	calc := NewCalculator(nil)
	assert.Equal(t, "85", calc.RoundUpSavings(month, txs, decimal.NewFromInt(50)).String())
	assert.Equal(t, "0", calc.RoundUpSavings(month, txs[2:3], decimal.NewFromInt(50)).String())
	assert.Equal(t, "0", calc.RoundUpSavings(month, nil, decimal.NewFromInt(50)).String())
}

func categoryTable() *ledger.Table {
	return ledger.NewTable(
		[]string{"Дата операции", "Категория", "Сумма операции"},
		[][]string{
			{"2025-05-01", "Продукты", "1500"},
			{"2025-05-10", "Продукты", "2300"},
			{"2025-05-12", "Транспорт", "700"},
			{"2025-06-01", "Продукты", "5000"},
			{"2025-05-13", "", "900"},
		},
	)
}

func TestAnalyzeProfitableCategories(t *testing.T) {
	result := NewCalculator(nil).AnalyzeProfitableCategories(categoryTable(), 2025, 5)
	require.False(t, result.Failed())
	assert.Equal(t, []models.CategoryCashback{
		{Category: "Продукты", Cashback: 38},
		{Category: "Транспорт", Cashback: 7},
	}, result.Categories)
}

func TestAnalyzeProfitableCategories_Errors(t *testing.T) {
	calc := NewCalculator(logging.NewMockLogger())

	missing := calc.AnalyzeProfitableCategories(
		ledger.NewTable([]string{"date", "amount"}, [][]string{{"2025-05-01", "100"}}), 2025, 5)
	assert.True(t, missing.Failed())
	assert.Equal(t, "missing required columns: category", missing.Error)

	badMonth := calc.AnalyzeProfitableCategories(categoryTable(), 2025, 13)
	assert.True(t, badMonth.Failed())
}

func TestAnalyzeProfitableCategories_Empty(t *testing.T) {
	calc := NewCalculator(nil)

	for name, table := range map[string]*ledger.Table{
		"nil":             nil,
		"no columns":      {},
		"header only":     ledger.NewTable([]string{"date", "category", "amount"}, nil),
		"nothing matches": categoryTable(),
	} {
		t.Run(name, func(t *testing.T) {
			year := 2025
			if name == "nothing matches" {
				year = 2020
			}
			result := calc.AnalyzeProfitableCategories(table, year, 5)
			assert.False(t, result.Failed())
			assert.NotNil(t, result.Categories)
			assert.Empty(t, result.Categories)
		})
	}
}
