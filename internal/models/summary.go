package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CardSummary aggregates the spending of a single card.
type CardSummary struct {
	LastDigits string          `json:"last_digits"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Cashback   decimal.Decimal `json:"cashback"`
}

// MarshalJSON renders the money fields as JSON numbers.
func (c CardSummary) MarshalJSON() ([]byte, error) {
	type plain CardSummary
	return json.Marshal(struct {
		plain
		TotalSpent json.Number `json:"total_spent"`
		Cashback   json.Number `json:"cashback"`
	}{plain(c), Number(c.TotalSpent), Number(c.Cashback)})
}

// Period is the reporting period of the main page, formatted YYYY-MM-DD.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MainPage is the success variant of MainPageResponse.
type MainPage struct {
	Greeting        string           `json:"greeting"`
	Period          Period           `json:"period"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   Quotes           `json:"currency_rates"`
	StockPrices     Quotes           `json:"stock_prices"`
}

// MainPageResponse is either a MainPage or an error message, never both.
type MainPageResponse struct {
	Page  *MainPage
	Error string
}

// PageResponse wraps a successful page.
func PageResponse(page *MainPage) MainPageResponse {
	return MainPageResponse{Page: page}
}

// ErrorResponse wraps a failure message.
func ErrorResponse(msg string) MainPageResponse {
	return MainPageResponse{Error: msg}
}

// Failed reports whether the response carries an error.
func (r MainPageResponse) Failed() bool {
	return r.Error != "" || r.Page == nil
}

// MarshalJSON renders the page object, or {"error": "..."} on failure.
func (r MainPageResponse) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		msg := r.Error
		if msg == "" {
			msg = "empty response"
		}
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: msg})
	}
	return json.Marshal(r.Page)
}
