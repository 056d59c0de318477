package model

import "github.com/shopspring/decimal"

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return RoundMoney(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// Cart is the transient list of lines being sold. It is never persisted.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts one unit of p in the cart. An existing line is incremented unless
// that would exceed the product stock; a new line needs stock > 0.
// It reports whether the cart changed.
func (c *Cart) Add(p Product) bool {
	for i := range c.Lines {
		if c.Lines[i].Product.ID != p.ID {
			continue
		}
		c.Lines[i].Product = p
		if c.Lines[i].Quantity >= p.Stock {
			return false
		}
		c.Lines[i].Quantity++
		return true
	}
	if p.Stock <= 0 {
		return false
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
	return true
}

// SetQuantity replaces the quantity of a line. Zero or less removes the line;
// quantities above the product stock are capped.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty <= 0 {
		return c.Remove(productID)
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			if qty > c.Lines[i].Product.Stock {
				qty = c.Lines[i].Product.Stock
			}
			c.Lines[i].Quantity = qty
			return true
		}
	}
	return false
}

func (c *Cart) Remove(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return RoundMoney(total)
}

// LineCount is the number of units across all lines.
func (c *Cart) LineCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// CartView is the JSON shape returned to clients.
type CartView struct {
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	LineCount int             `json:"line_count"`
}

func (c *Cart) View() CartView {
	lines := append([]CartLine{}, c.Lines...)
	return CartView{Lines: lines, Total: c.Total(), LineCount: c.LineCount()}
}
