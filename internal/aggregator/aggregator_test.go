package aggregator

import (
	"testing"
	"time"

	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(day int, card, amount, category string) models.Transaction {
	return models.Transaction{
		Date:       time.Date(2025, 5, day, 12, 0, 0, 0, time.UTC),
		CardNumber: card,
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
	}
}

func TestCardStats(t *testing.T) {
	tests := []struct {
		name string
		txs  []models.Transaction
		want []models.CardSummary
	}{
		{
			name: "single card cashback",
			txs:  []models.Transaction{tx(20, "*7197", "150", "Продукты")},
			want: []models.CardSummary{{LastDigits: "7197", TotalSpent: decimal.RequireFromString("150"), Cashback: decimal.RequireFromString("1.5")}},
		},
		{
			name: "cashback rounds to cents",
			txs:  []models.Transaction{tx(1, "4276380012345091", "99.99", "")},
			want: []models.CardSummary{{LastDigits: "5091", TotalSpent: decimal.RequireFromString("99.99"), Cashback: decimal.RequireFromString("1")}},
		},
		{
			name: "grouped and sorted by last digits",
			txs: []models.Transaction{
				tx(1, "*7197", "100", ""),
				tx(2, "*5091", "10.004", ""),
				tx(3, "*7197", "-20", ""),
				tx(4, "*5091", "0.002", ""),
			},
			want: []models.CardSummary{
				{LastDigits: "5091", TotalSpent: decimal.RequireFromString("10.01"), Cashback: decimal.RequireFromString("0.1")},
				{LastDigits: "7197", TotalSpent: decimal.RequireFromString("80"), Cashback: decimal.RequireFromString("0.8")},
			},
		},
		{
			name: "short card identifier kept whole",
			txs:  []models.Transaction{tx(1, "*12", "5", "")},
			want: []models.CardSummary{{LastDigits: "*12", TotalSpent: decimal.RequireFromString("5"), Cashback: decimal.RequireFromString("0.05")}},
		},
		{
			name: "rows without card are skipped",
			txs:  []models.Transaction{tx(1, "", "500", "")},
			want: []models.CardSummary{},
		},
		{
			name: "empty input",
			txs:  nil,
			want: []models.CardSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CardStats(tt.txs)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].LastDigits, got[i].LastDigits)
				assert.True(t, tt.want[i].TotalSpent.Equal(got[i].TotalSpent), "total: want %s got %s", tt.want[i].TotalSpent, got[i].TotalSpent)
				assert.True(t, tt.want[i].Cashback.Equal(got[i].Cashback), "cashback: want %s got %s", tt.want[i].Cashback, got[i].Cashback)
			}
		})
	}
}

func TestCardStats_SameLastDigitsOrderedByFullNumber(t *testing.T) {
	got := CardStats([]models.Transaction{
		tx(1, "5555000011117197", "1", ""),
		tx(1, "4444000011117197", "2", ""),
	})
	require.Len(t, got, 2)
	assert.True(t, decimal.NewFromInt(2).Equal(got[0].TotalSpent))
	assert.True(t, decimal.NewFromInt(1).Equal(got[1].TotalSpent))
}

func TestCardStats_ConservesTotal(t *testing.T) {
	txs := []models.Transaction{
		tx(1, "*1111", "10.25", ""),
		tx(2, "*2222", "3.50", ""),
		tx(3, "*1111", "-1.75", ""),
		tx(4, "*3333", "0", ""),
	}

	sum := decimal.Zero
	for _, s := range CardStats(txs) {
		sum = sum.Add(s.TotalSpent)
	}
	assert.True(t, Total(txs).Equal(sum))
}

func TestTopTransactions(t *testing.T) {
	txs := []models.Transaction{
		tx(1, "*1", "10", "a"),
		tx(2, "*1", "50", "b"),
		tx(3, "*1", "30", "c"),
		tx(4, "*1", "50", "d"),
		tx(5, "*1", "-5", "e"),
		tx(6, "*1", "20", "f"),
		tx(7, "*1", "40", "g"),
	}

	top := TopTransactions(txs, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Category)
	assert.Equal(t, "d", top[1].Category)
	assert.Equal(t, "g", top[2].Category)
	assert.Equal(t, "02.05.2025", top[0].Date)

	assert.Len(t, TopTransactions(txs, 0), DefaultTopN)
	assert.Len(t, TopTransactions(txs, -1), DefaultTopN)
	assert.Len(t, TopTransactions(txs, 100), len(txs))

	// input is left untouched
	assert.Equal(t, "a", txs[0].Category)
}

func TestTopTransactions_Idempotent(t *testing.T) {
	txs := []models.Transaction{
		tx(1, "*1", "10", "a"),
		tx(2, "*1", "30", "b"),
		tx(3, "*1", "20", "c"),
	}

	first := TopTransactions(txs, 2)
	second := TopTransactions(txs, 2)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Amount.GreaterThanOrEqual(first[i].Amount))
	}
}

func TestTopTransactions_Empty(t *testing.T) {
	top := TopTransactions(nil, 5)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}
