package repository

import (
	"context"
	"errors"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/pkg/kvstore"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	SeedDefaults(ctx context.Context) error
}

type categoryRepo struct {
	store kvstore.Store
}

func NewCategoryRepo(store kvstore.Store) CategoryRepository {
	return &categoryRepo{store: store}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if _, err := kvstore.GetJSON(ctx, r.store, KeyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id int) (*model.Category, error) {
	categories, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	categories, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == category.ID {
			categories[i] = *category
			return kvstore.SetJSON(ctx, r.store, KeyCategories, categories)
		}
	}
	return ErrCategoryNotFound
}

func (r *categoryRepo) SeedDefaults(ctx context.Context) error {
	var existing []model.Category
	found, err := kvstore.GetJSON(ctx, r.store, KeyCategories, &existing)
	if err != nil || found {
		return err
	}
	return kvstore.SetJSON(ctx, r.store, KeyCategories, model.DefaultCategories)
}
