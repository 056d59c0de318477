package service

import (
	"context"
	"testing"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInventory_CreateValidates(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	err := f.inventory.CreateProduct(ctx, &model.Product{Name: "", Price: money("1")}, operator)
	assert.ErrorIs(t, err, ErrValidation)

	err = f.inventory.CreateProduct(ctx, &model.Product{Name: "Clips", Price: money("-1")}, operator)
	assert.ErrorIs(t, err, ErrValidation)

	err = f.inventory.CreateProduct(ctx, &model.Product{Name: "Clips", Price: money("1"), Stock: -2}, operator)
	assert.ErrorIs(t, err, ErrValidation)

	p := &model.Product{Name: "Clips", Price: money("3.333"), Stock: 5, MinStock: 1}
	require.NoError(t, f.inventory.CreateProduct(ctx, p, operator))
	assert.NotEmpty(t, p.ID)
	assertMoney(t, "3.33", p.Price)

	all, err := f.inventory.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(model.DefaultProducts)+1)
}

func TestInventory_PartialUpdate(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	updated, err := f.inventory.UpdateProduct(ctx, "2", &model.ProductPatch{Stock: intPtr(120)}, operator)
	require.NoError(t, err)
	assert.Equal(t, 120, updated.Stock)
	assert.Equal(t, "Caneta BIC Azul", updated.Name)
	assertMoney(t, "2.50", updated.Price)

	_, err = f.inventory.UpdateProduct(ctx, "2", &model.ProductPatch{Name: strPtr("")}, operator)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.inventory.UpdateProduct(ctx, "404", &model.ProductPatch{}, operator)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestInventory_LowStockAndDelete(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	low, err := f.inventory.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "2", low[0].ID)

	require.NoError(t, f.inventory.DecrementStock(ctx, []repository.StockDecrement{{ProductID: "9", Quantity: 10}}, operator))
	low, _ = f.inventory.LowStock(ctx)
	assert.Len(t, low, 2)

	require.NoError(t, f.inventory.DeleteProduct(ctx, "2", operator))
	low, _ = f.inventory.LowStock(ctx)
	assert.Len(t, low, 1)
	assert.ErrorIs(t, f.inventory.DeleteProduct(ctx, "2", operator), repository.ErrProductNotFound)
}

func TestInventory_Categories(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	off := false
	c, err := f.inventory.UpdateCategory(ctx, 5, &model.CategoryPatch{Active: &off})
	require.NoError(t, err)
	assert.False(t, c.Active)
	assert.Equal(t, "Presentes", c.Label)

	all, err := f.inventory.GetCategories(ctx)
	require.NoError(t, err)
	assert.False(t, all[4].Active)

	_, err = f.inventory.UpdateCategory(ctx, 99, &model.CategoryPatch{Active: &off})
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}
