package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-caixa-pos/internal/repository"
	"go-caixa-pos/pkg/kvstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("disk full")

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(money(want)), "want %s, got %s", want, got.String())
}

// flakyStore fails every write while failing is set.
type flakyStore struct {
	kvstore.Store
	mu      sync.Mutex
	failing bool
}

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *flakyStore) fail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failing
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail() {
		return errBoom
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	if f.fail() {
		return errBoom
	}
	return f.Store.Remove(ctx, key)
}

func (f *flakyStore) Batch(ctx context.Context, ops ...kvstore.Op) error {
	if f.fail() {
		return errBoom
	}
	return f.Store.Batch(ctx, ops...)
}

// stepClock advances one minute per call from a fixed start.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(start time.Time) *stepClock {
	return &stepClock{now: start}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Minute)
	return t
}

type fixture struct {
	store     *flakyStore
	clock     *stepClock
	caixa     CaixaService
	inventory InventoryService
	cart      CartService
	checkout  CheckoutService
	reports   ReportService
	products  repository.ProductRepository
	sales     repository.SaleRepository
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()
	ctx := context.Background()
	store := &flakyStore{Store: kvstore.NewMemory()}
	clock := newStepClock(start)

	products := repository.NewProductRepo(store)
	categories := repository.NewCategoryRepo(store)
	sales := repository.NewSaleRepo(store)
	require.NoError(t, products.SeedDefaults(ctx))
	require.NoError(t, categories.SeedDefaults(ctx))

	caixa, err := NewCaixaService(ctx, repository.NewSessionRepo(store), nil, clock.Now)
	require.NoError(t, err)
	inventory := NewInventoryService(products, categories, nil)
	cart := NewCartService(products)

	return &fixture{
		store:     store,
		clock:     clock,
		caixa:     caixa,
		inventory: inventory,
		cart:      cart,
		checkout:  NewCheckoutService(caixa, cart, inventory, sales, nil, clock.Now),
		reports:   NewReportService(sales, products, caixa, time.UTC, clock.Now),
		products:  products,
		sales:     sales,
	}
}
