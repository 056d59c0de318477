package repository

import (
	"context"
	"errors"
	"fmt"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/pkg/kvstore"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
)

// StockDecrement is one product quantity leaving the shelf.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock applies all decrements in one write, or none if any
	// product is missing or would go below zero.
	DecrementStock(ctx context.Context, items []StockDecrement) ([]model.Product, error)
	SeedDefaults(ctx context.Context) error
}

type productRepo struct {
	store kvstore.Store
}

func NewProductRepo(store kvstore.Store) ProductRepository {
	return &productRepo{store: store}
}

func (r *productRepo) load(ctx context.Context) ([]model.Product, bool, error) {
	products := []model.Product{}
	found, err := kvstore.GetJSON(ctx, r.store, KeyProducts, &products)
	return products, found, err
}

func (r *productRepo) save(ctx context.Context, products []model.Product) error {
	return kvstore.SetJSON(ctx, r.store, KeyProducts, products)
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	products, _, err := r.load(ctx)
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	products, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	products, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = model.NewID()
	}
	for _, p := range products {
		if p.ID == product.ID {
			return fmt.Errorf("product %s already exists", product.ID)
		}
	}
	return r.save(ctx, append(products, *product))
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	products, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return r.save(ctx, products)
		}
	}
	return ErrProductNotFound
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	products, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			return r.save(ctx, append(products[:i], products[i+1:]...))
		}
	}
	return ErrProductNotFound
}

func (r *productRepo) DecrementStock(ctx context.Context, items []StockDecrement) ([]model.Product, error) {
	products, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	touched := make([]int, 0, len(items))
	for _, it := range items {
		i, ok := index[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
		if products[i].Stock < it.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, products[i].Name)
		}
		products[i].Stock -= it.Quantity
		touched = append(touched, i)
	}

	if err := r.save(ctx, products); err != nil {
		return nil, err
	}

	updated := make([]model.Product, len(touched))
	for n, i := range touched {
		updated[n] = products[i]
	}
	return updated, nil
}

func (r *productRepo) SeedDefaults(ctx context.Context) error {
	_, found, err := r.load(ctx)
	if err != nil || found {
		return err
	}
	return r.save(ctx, model.DefaultProducts)
}
