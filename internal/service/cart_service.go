package service

import (
	"context"
	"sync"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"
)

// CartService keeps one transient cart per operator. Carts live in memory
// only and are lost on restart.
type CartService interface {
	Get(operator string) model.CartView
	Add(ctx context.Context, operator, productID string) (model.CartView, bool, error)
	SetQuantity(ctx context.Context, operator, productID string, qty int) (model.CartView, bool, error)
	Remove(operator, productID string) (model.CartView, bool)
	Clear(operator string)
	Lines(operator string) []model.CartLine
}

type cartService struct {
	mu          sync.Mutex
	carts       map[string]*model.Cart
	productRepo repository.ProductRepository
}

func NewCartService(pRepo repository.ProductRepository) CartService {
	return &cartService{
		carts:       make(map[string]*model.Cart),
		productRepo: pRepo,
	}
}

func (s *cartService) cart(operator string) *model.Cart {
	c, ok := s.carts[operator]
	if !ok {
		c = &model.Cart{}
		s.carts[operator] = c
	}
	return c
}

func (s *cartService) Get(operator string) model.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(operator).View()
}

// Add puts one unit of the product in the cart, capped at the catalog stock.
func (s *cartService) Add(ctx context.Context, operator, productID string) (model.CartView, bool, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.CartView{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operator)
	changed := c.Add(*p)
	return c.View(), changed, nil
}

func (s *cartService) SetQuantity(ctx context.Context, operator, productID string, qty int) (model.CartView, bool, error) {
	var fresh *model.Product
	if qty > 0 {
		p, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return model.CartView{}, false, err
		}
		fresh = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operator)
	if fresh != nil {
		for i := range c.Lines {
			if c.Lines[i].Product.ID == productID {
				c.Lines[i].Product = *fresh
			}
		}
	}
	changed := c.SetQuantity(productID, qty)
	return c.View(), changed, nil
}

func (s *cartService) Remove(operator, productID string) (model.CartView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operator)
	changed := c.Remove(productID)
	return c.View(), changed
}

func (s *cartService) Clear(operator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operator)
}

func (s *cartService) Lines(operator string) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[operator]
	if !ok {
		return nil
	}
	return append([]model.CartLine(nil), c.Lines...)
}
