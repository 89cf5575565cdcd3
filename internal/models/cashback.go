package models

import (
	"bytes"
	"encoding/json"
)

// CategoryCashback is the cashback, in whole units, earned on one category.
type CategoryCashback struct {
	Category string `json:"category" csv:"category" xml:"category"`
	Cashback int64  `json:"cashback" csv:"cashback" xml:"cashback"`
}

// CategoryCashbackResult is either an ordered category -> cashback mapping or
// an error message.
type CategoryCashbackResult struct {
	Categories []CategoryCashback
	Error      string
}

// Failed reports whether the result carries an error.
func (r CategoryCashbackResult) Failed() bool {
	return r.Error != ""
}

// Get returns the cashback for category and whether it is present.
func (r CategoryCashbackResult) Get(category string) (int64, bool) {
	for _, c := range r.Categories {
		if c.Category == category {
			return c.Cashback, true
		}
	}
	return 0, false
}

// MarshalJSON renders {"error": "..."} or {"<category>": <cashback>, ...}.
func (r CategoryCashbackResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(c.Cashback)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
