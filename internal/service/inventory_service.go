package service

import (
	"context"
	"errors"
	"fmt"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"
	"go-caixa-pos/internal/ws"
	"go-caixa-pos/pkg/validator"

	"github.com/rs/zerolog/log"
)

var ErrValidation = errors.New("validation failed")

type InventoryService interface {
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.Product, operator string) error
	UpdateProduct(ctx context.Context, id string, patch *model.ProductPatch, operator string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string, operator string) error
	DecrementStock(ctx context.Context, items []repository.StockDecrement, operator string) error
	LowStock(ctx context.Context) ([]model.Product, error)

	GetCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int, patch *model.CategoryPatch) (*model.Category, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		wsHub:        hub,
	}
}

func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, errs[0].Error())
	}
	return nil
}

func (s *inventoryService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *inventoryService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *model.Product, operator string) error {
	if err := validate(req); err != nil {
		return err
	}
	req.Price = model.RoundMoney(req.Price)

	if err := s.productRepo.Create(ctx, req); err != nil {
		return err
	}

	log.Info().Str("product_id", req.ID).Str("operator", operator).Msg("product created")
	s.notifyProduct("product_created", *req, operator)
	return nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id string, patch *model.ProductPatch, operator string) (*model.Product, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStock := existing.Stock

	updated := patch.Apply(*existing)
	if err := validate(&updated); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", id).
		Int("old_stock", oldStock).
		Int("new_stock", updated.Stock).
		Str("operator", operator).
		Msg("product updated")
	s.notifyProduct("product_updated", updated, operator)
	return &updated, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id string, operator string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("product_id", id).Str("operator", operator).Msg("product deleted")
	s.wsHub.Notify(ws.EventStockUpdate, map[string]interface{}{
		"action":     "product_deleted",
		"product_id": id,
		"operator":   operator,
	})
	return nil
}

func (s *inventoryService) DecrementStock(ctx context.Context, items []repository.StockDecrement, operator string) error {
	updated, err := s.productRepo.DecrementStock(ctx, items)
	if err != nil {
		return err
	}
	for _, p := range updated {
		s.notifyProduct("stock_decremented", p, operator)
		if p.LowStock() {
			log.Warn().Str("product_id", p.ID).Int("stock", p.Stock).Int("min_stock", p.MinStock).Msg("product reached low stock")
		}
	}
	return nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	low := []model.Product{}
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *inventoryService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *inventoryService) UpdateCategory(ctx context.Context, id int, patch *model.CategoryPatch) (*model.Category, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*existing)
	if err := s.categoryRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *inventoryService) notifyProduct(action string, p model.Product, operator string) {
	s.wsHub.Notify(ws.EventStockUpdate, map[string]interface{}{
		"action": action,
		"product": map[string]interface{}{
			"id":        p.ID,
			"name":      p.Name,
			"stock":     p.Stock,
			"price":     p.Price.StringFixed(2),
			"low_stock": p.LowStock(),
		},
		"operator": operator,
	})
}
