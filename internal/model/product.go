package model

import "github.com/shopspring/decimal"

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Category string          `json:"category"`
	MinStock int             `json:"min_stock" validate:"gte=0"`
}

// LowStock reports whether the product reached its replenishment threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Snapshot freezes the fields a sale needs to keep.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{ID: p.ID, Name: p.Name, UnitPrice: RoundMoney(p.Price)}
}

// ProductPatch carries a partial product update; nil fields are kept.
type ProductPatch struct {
	Name     *string          `json:"name" validate:"omitempty,min=1"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock    *int             `json:"stock" validate:"omitempty,gte=0"`
	Category *string          `json:"category"`
	MinStock *int             `json:"min_stock" validate:"omitempty,gte=0"`
}

// Apply merges the patch into p.
func (pt ProductPatch) Apply(p Product) Product {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Price != nil {
		p.Price = RoundMoney(*pt.Price)
	}
	if pt.Stock != nil {
		p.Stock = *pt.Stock
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.MinStock != nil {
		p.MinStock = *pt.MinStock
	}
	return p
}

type Category struct {
	ID     int    `json:"id"`
	Label  string `json:"label" validate:"required"`
	Active bool   `json:"status"`
}

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Label  *string `json:"label" validate:"omitempty,min=1"`
	Active *bool   `json:"status"`
}

func (pt CategoryPatch) Apply(c Category) Category {
	if pt.Label != nil {
		c.Label = *pt.Label
	}
	if pt.Active != nil {
		c.Active = *pt.Active
	}
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultProducts is the catalog a fresh store starts with.
var DefaultProducts = []Product{
	{ID: "1", Name: "Caderno Universitário 200fls", Price: dec("15.90"), Stock: 45, Category: "Material Escolar", MinStock: 20},
	{ID: "2", Name: "Caneta BIC Azul", Price: dec("2.50"), Stock: 49, Category: "Material Escolar", MinStock: 50},
	{ID: "3", Name: "Lápis HB Faber-Castell", Price: dec("1.80"), Stock: 80, Category: "Material Escolar", MinStock: 30},
	{ID: "4", Name: "Papel A4 500 folhas", Price: dec("28.90"), Stock: 25, Category: "Material de Escritório", MinStock: 15},
	{ID: "5", Name: "Grampeador Pequeno", Price: dec("18.50"), Stock: 15, Category: "Material de Escritório", MinStock: 8},
	{ID: "6", Name: "Cola Bastão 40g", Price: dec("8.90"), Stock: 35, Category: "Material Escolar", MinStock: 20},
	{ID: "7", Name: "Borracha Branca", Price: dec("1.20"), Stock: 60, Category: "Material Escolar", MinStock: 25},
	{ID: "8", Name: "Marca-texto Amarelo", Price: dec("4.50"), Stock: 40, Category: "Material Escolar", MinStock: 15},
	{ID: "9", Name: "Pasta Catálogo", Price: dec("12.90"), Stock: 20, Category: "Material de Escritório", MinStock: 10},
	{ID: "10", Name: "Tinta Guache 12 cores", Price: dec("24.90"), Stock: 18, Category: "Artigos de Arte", MinStock: 12},
}

// DefaultCategories is the category list a fresh store starts with.
var DefaultCategories = []Category{
	{ID: 1, Label: "Material Escolar", Active: true},
	{ID: 2, Label: "Material de Escritório", Active: true},
	{ID: 3, Label: "Artigos de Arte", Active: true},
	{ID: 4, Label: "Impressão e Cópias", Active: true},
	{ID: 5, Label: "Presentes", Active: true},
	{ID: 6, Label: "Livros e Revistas", Active: true},
	{ID: 7, Label: "Outros", Active: true},
}
