package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateLayout is the day.month.year layout used when transactions are rendered.
const DisplayDateLayout = "02.01.2006"

// Transaction is one cleaned ledger row.
type Transaction struct {
	Date        time.Time
	CardNumber  string
	Amount      decimal.Decimal
	Category    string
	Description string
}

// LastDigits returns the trailing four characters of the card number,
// or the whole string when it is shorter.
func (t Transaction) LastDigits() string {
	return LastDigits(t.CardNumber)
}

// LastDigits returns the trailing four characters of a card identifier.
func LastDigits(cardNumber string) string {
	runes := []rune(cardNumber)
	if len(runes) <= 4 {
		return cardNumber
	}
	return string(runes[len(runes)-4:])
}

// TopTransaction is the fixed projection of a transaction used by the
// top-N listing.
type TopTransaction struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	CardNumber  string          `json:"card_number,omitempty"`
}

// MarshalJSON renders the amount as a JSON number.
func (t TopTransaction) MarshalJSON() ([]byte, error) {
	type plain TopTransaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(t), Number(t.Amount)})
}

// NewTopTransaction projects t for display.
func NewTopTransaction(t Transaction) TopTransaction {
	return TopTransaction{
		Date:        t.Date.Format(DisplayDateLayout),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		CardNumber:  t.CardNumber,
	}
}
