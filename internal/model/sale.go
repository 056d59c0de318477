package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type SaleLine struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale is a finalized checkout. Immutable once created.
type Sale struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Lines     []SaleLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Operator  string          `json:"operator,omitempty"`
}

// SaleTotal sums the line subtotals rounded to the minor unit.
func SaleTotal(lines []SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return RoundMoney(total)
}

// ItemCount is the number of units sold.
func (s Sale) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// NewSale builds a sale from cart lines, freezing product data.
func NewSale(lines []CartLine, operator string, at time.Time) Sale {
	saleLines := make([]SaleLine, len(lines))
	for i, l := range lines {
		saleLines[i] = SaleLine{Product: l.Product.Snapshot(), Quantity: l.Quantity}
	}
	return Sale{
		ID:        NewID(),
		Timestamp: at,
		Lines:     saleLines,
		Total:     SaleTotal(saleLines),
		Operator:  operator,
	}
}
