package repository

import (
	"context"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/pkg/kvstore"
)

type SaleRepository interface {
	FindAll(ctx context.Context) ([]model.Sale, error)
	Append(ctx context.Context, sale model.Sale) error
}

type saleRepo struct {
	store kvstore.Store
}

func NewSaleRepo(store kvstore.Store) SaleRepository {
	return &saleRepo{store: store}
}

// FindAll returns sales in insertion order.
func (r *saleRepo) FindAll(ctx context.Context) ([]model.Sale, error) {
	sales := []model.Sale{}
	if _, err := kvstore.GetJSON(ctx, r.store, KeySales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepo) Append(ctx context.Context, sale model.Sale) error {
	sales, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	sales = append(sales, sale)
	return kvstore.SetJSON(ctx, r.store, KeySales, sales)
}
