package main

import (
	"context"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"
	"go-caixa-pos/pkg/kvstore"
)

func seed(ctx context.Context, store kvstore.Store, force bool) error {
	if force {
		products, err := kvstore.SetJSONOp(repository.KeyProducts, model.DefaultProducts)
		if err != nil {
			return err
		}
		categories, err := kvstore.SetJSONOp(repository.KeyCategories, model.DefaultCategories)
		if err != nil {
			return err
		}
		return store.Batch(ctx, products, categories)
	}
	if err := repository.NewProductRepo(store).SeedDefaults(ctx); err != nil {
		return err
	}
	return repository.NewCategoryRepo(store).SeedDefaults(ctx)
}
