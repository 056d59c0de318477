package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewID returns a time-ordered identifier, so sorting ids by string
// reproduces creation order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the random source does; fall back to v4
		return uuid.New().String()
	}
	return id.String()
}

// RoundMoney rounds to the currency minor unit (2 decimals).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
