package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// Session is one cash drawer lifecycle ("caixa"). Movements are kept in
// insertion order, which is also chronological order.
type Session struct {
	ID            string           `json:"id"`
	OpenedAt      time.Time        `json:"opened_at"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	Status        SessionStatus    `json:"status"`
	Movements     []Movement       `json:"movements"`
	Operator      string           `json:"operator"`
}

// ComputeBalance folds movements in order. Close movements are skipped, so
// the result is the same before and after a session is closed.
func ComputeBalance(movements []Movement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.Effect())
	}
	return RoundMoney(balance)
}

// Balance is the expected cash in the drawer, always derived from the log.
func (s *Session) Balance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return ComputeBalance(s.Movements)
}

func (s *Session) IsOpen() bool {
	return s != nil && s.Status == SessionOpen
}

// TotalFor sums the amounts of every movement of the given kind.
func (s *Session) TotalFor(kind MovementKind) decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, m := range s.Movements {
		if m.Kind == kind {
			total = total.Add(m.Amount)
		}
	}
	return RoundMoney(total)
}

// Reconcile recomputes the closing difference of a closed session from its
// own movements. It returns nil while the session is still open.
func (s *Session) Reconcile() *Reconciliation {
	if s == nil || s.ClosingAmount == nil {
		return nil
	}
	r := NewReconciliation(*s.ClosingAmount, s.Balance())
	return &r
}

// Clone returns a deep copy so callers cannot mutate ledger state.
func (s Session) Clone() Session {
	out := s
	out.Movements = append([]Movement(nil), s.Movements...)
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		out.ClosedAt = &t
	}
	if s.ClosingAmount != nil {
		d := *s.ClosingAmount
		out.ClosingAmount = &d
	}
	return out
}

// Classification labels a reconciliation difference. Display only.
type Classification string

const (
	Reconciled Classification = "reconciled"
	Surplus    Classification = "surplus"
	Shortfall  Classification = "shortfall"
)

func ClassifyDifference(diff decimal.Decimal) Classification {
	switch diff.Round(2).Sign() {
	case 0:
		return Reconciled
	case 1:
		return Surplus
	default:
		return Shortfall
	}
}

type Reconciliation struct {
	Expected       decimal.Decimal `json:"expected"`
	Counted        decimal.Decimal `json:"counted"`
	Difference     decimal.Decimal `json:"difference"`
	Classification Classification  `json:"classification"`
}

func NewReconciliation(counted, expected decimal.Decimal) Reconciliation {
	diff := RoundMoney(counted.Sub(expected))
	return Reconciliation{
		Expected:       RoundMoney(expected),
		Counted:        RoundMoney(counted),
		Difference:     diff,
		Classification: ClassifyDifference(diff),
	}
}

// SessionSummary is the history view of a closed session.
type SessionSummary struct {
	ID             string          `json:"id"`
	Operator       string          `json:"operator"`
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
}

func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:             s.ID,
		Operator:       s.Operator,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		OpeningAmount:  s.OpeningAmount,
		Reconciliation: s.Reconcile(),
	}
}
