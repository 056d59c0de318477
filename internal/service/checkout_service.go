package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"
	"go-caixa-pos/internal/ws"

	"github.com/rs/zerolog/log"
)

var (
	ErrCashierClosed     = errors.New("open the cash drawer before finalizing a sale")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = repository.ErrInsufficientStock
)

type CheckoutService interface {
	Checkout(ctx context.Context, operator string) (*model.Sale, error)
}

type checkoutService struct {
	mu        sync.Mutex
	caixa     CaixaService
	cart      CartService
	inventory InventoryService
	saleRepo  repository.SaleRepository
	wsHub     *ws.Hub
	now       func() time.Time
}

func NewCheckoutService(caixa CaixaService, cart CartService, inventory InventoryService, saleRepo repository.SaleRepository, hub *ws.Hub, clock func() time.Time) CheckoutService {
	if clock == nil {
		clock = time.Now
	}
	return &checkoutService{
		caixa:     caixa,
		cart:      cart,
		inventory: inventory,
		saleRepo:  saleRepo,
		wsHub:     hub,
		now:       clock,
	}
}

// Checkout finalizes the operator's cart. Preconditions are checked before
// anything is written. Writes then happen in order: stock, ledger, sales
// history; a failure part way leaves the earlier writes in place.
func (s *checkoutService) Checkout(ctx context.Context, operator string) (*model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.caixa.IsOpen() {
		return nil, ErrCashierClosed
	}
	lines := s.cart.Lines(operator)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]repository.StockDecrement, len(lines))
	for i, l := range lines {
		items[i] = repository.StockDecrement{ProductID: l.Product.ID, Quantity: l.Quantity}
	}
	if err := s.inventory.DecrementStock(ctx, items, operator); err != nil {
		return nil, err
	}

	sale := model.NewSale(lines, operator, s.now())

	applied, err := s.caixa.RegisterSale(ctx, sale.ID, sale.Total, operator)
	if err != nil {
		return nil, fmt.Errorf("register sale with cash drawer: %w", err)
	}
	if !applied {
		log.Warn().Str("sale_id", sale.ID).Msg("drawer closed during checkout, sale has no ledger movement")
	}

	if err := s.saleRepo.Append(ctx, sale); err != nil {
		return nil, fmt.Errorf("store sale: %w", err)
	}
	s.cart.Clear(operator)

	log.Info().
		Str("sale_id", sale.ID).
		Str("operator", operator).
		Int("items", sale.ItemCount()).
		Str("total", sale.Total.StringFixed(2)).
		Msg("sale finalized")
	s.wsHub.Notify(ws.EventSaleCreated, map[string]interface{}{
		"sale_id":  sale.ID,
		"total":    sale.Total.StringFixed(2),
		"items":    sale.ItemCount(),
		"operator": operator,
	})
	return &sale, nil
}
