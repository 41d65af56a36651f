package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents a present-time stock quote
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}
