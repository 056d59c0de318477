package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tags a ledger entry. The effect on the balance comes from the
// kind, never from the sign of the amount.
type MovementKind string

const (
	MovementOpen       MovementKind = "open"
	MovementSale       MovementKind = "sale"
	MovementWithdrawal MovementKind = "withdrawal"
	MovementDeposit    MovementKind = "deposit"
	MovementClose      MovementKind = "close"
)

// Sign returns the multiplier applied to a movement amount when folding a
// session balance. Close is the terminal summary and contributes nothing.
func (k MovementKind) Sign() int {
	switch k {
	case MovementOpen, MovementSale, MovementDeposit:
		return 1
	case MovementWithdrawal:
		return -1
	default:
		return 0
	}
}

func (k MovementKind) Valid() bool {
	switch k {
	case MovementOpen, MovementSale, MovementWithdrawal, MovementDeposit, MovementClose:
		return true
	}
	return false
}

// Manual reports whether an operator may record this kind directly.
func (k MovementKind) Manual() bool {
	return k == MovementWithdrawal || k == MovementDeposit
}

func (k *MovementKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind := MovementKind(s)
	if !kind.Valid() {
		return fmt.Errorf("unknown movement kind %q", s)
	}
	*k = kind
	return nil
}

// Movement is one append-only ledger entry. Amount is always >= 0.
type Movement struct {
	ID        string          `json:"id"`
	Kind      MovementKind    `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Timestamp time.Time       `json:"timestamp"`
	Operator  string          `json:"operator"`
}

// Effect is the signed contribution of the movement to the balance.
func (m Movement) Effect() decimal.Decimal {
	return m.Amount.Mul(decimal.NewFromInt(int64(m.Kind.Sign())))
}
