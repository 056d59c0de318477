package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value typed in by an operator. It never fails to decode:
// empty, non-numeric and negative inputs all become zero.
type Amount struct {
	decimal.Decimal
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount coerces free text into a non-negative 2-decimal amount.
// A comma decimal separator ("12,50") is accepted and trailing text after the
// number is ignored ("12abc" is 12).
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	s = leadingNumber.FindString(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(d)
}

// NewAmount wraps d applying the same coercion rules as ParseAmount.
func NewAmount(d decimal.Decimal) Amount {
	if d.IsNegative() {
		return Amount{decimal.Zero}
	}
	return Amount{RoundMoney(d)}
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = ParseAmount(s)
		return nil
	}
	a.Decimal = ParseAmount(string(data))
	return nil
}

// MarshalJSON writes the amount with exactly two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}
