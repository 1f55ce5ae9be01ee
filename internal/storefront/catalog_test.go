package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeLister[R catalog.Record] struct {
	mu      sync.Mutex
	rows    []R
	err     error
	filters []catalog.Filter
	block   chan struct{}
}

func (f *fakeLister[R]) List(ctx context.Context, filter catalog.Filter) ([]R, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.rows, f.err
}

func TestLoadFiltersInStockProducts(t *testing.T) {
	products := &fakeLister[models.Product]{rows: []models.Product{{ID: "p1", Name: "Cabo", StockStatus: true}}}
	services := &fakeLister[models.Service]{rows: []models.Service{{ID: "s1", Name: "Solda"}}}
	page := NewCatalog(products, services, nil).Load(context.Background())

	require.Len(t, products.filters, 1)
	assert.Equal(t, true, products.filters[0]["stock_status"])
	require.Len(t, services.filters, 1)
	assert.Empty(t, services.filters[0], "services are not filtered")

	assert.False(t, page.Products.Fallback)
	assert.Equal(t, "p1", page.Products.Items[0].ID)
	assert.False(t, page.Services.Fallback)
	assert.Equal(t, "s1", page.Services.Items[0].ID)
}

func TestEmptyListUsesFallback(t *testing.T) {
	page := NewCatalog(&fakeLister[models.Product]{}, &fakeLister[models.Service]{}, nil).Load(context.Background())
	assert.True(t, page.Products.Fallback)
	assert.Equal(t, catalog.FallbackProducts(), page.Products.Items)
	assert.True(t, page.Services.Fallback)
	assert.Equal(t, catalog.FallbackServices(), page.Services.Items)
}

func TestFailureIsLoggedAndIndependent(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	products := &fakeLister[models.Product]{err: errors.New("connection refused")}
	services := &fakeLister[models.Service]{rows: []models.Service{{ID: "s9", Name: "Tela"}}}

	page := NewCatalog(products, services, zap.New(core)).Load(context.Background())

	assert.True(t, page.Products.Fallback)
	assert.Len(t, page.Products.Items, 2)
	assert.False(t, page.Services.Fallback)
	assert.Equal(t, "s9", page.Services.Items[0].ID)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "product", logs.All()[0].ContextMap()["kind"])
}

func TestSlowSectionDoesNotBlockTheOther(t *testing.T) {
	products := &fakeLister[models.Product]{block: make(chan struct{})}
	services := &fakeLister[models.Service]{rows: []models.Service{{ID: "s1"}}}
	c := NewCatalog(products, services, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	page := c.Load(ctx)

	assert.False(t, page.Products.Loading)
	assert.True(t, page.Products.Fallback, "a timed out load is a failure")
	assert.Len(t, page.Products.Items, len(catalog.FallbackProducts()))
	assert.False(t, page.Services.Loading)
	assert.Equal(t, "s1", page.Services.Items[0].ID)
}

func TestAbandonedRequestStaysLoading(t *testing.T) {
	products := &fakeLister[models.Product]{block: make(chan struct{})}
	services := &fakeLister[models.Service]{block: make(chan struct{})}
	c := NewCatalog(products, services, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	page := c.Load(ctx)

	assert.True(t, page.Products.Loading)
	assert.Empty(t, page.Products.Items)
	assert.True(t, page.Services.Loading)
	assert.False(t, page.Services.Fallback)
}

func TestProductCards(t *testing.T) {
	cards := TechFix.ProductCards([]models.Product{
		{Name: "Carregador", Price: decimal.RequireFromString("45.00"), DiscountPercent: 10, StockStatus: true},
		{Name: "Capa", Price: decimal.NewFromInt(30), StockStatus: false},
	})
	require.Len(t, cards, 2)
	assert.True(t, cards[0].Discounted)
	assert.Equal(t, "R$ 40,50", catalog.FormatBRL(cards[0].Effective))
	assert.True(t, cards[0].Available)
	assert.Contains(t, cards[0].Link, "*Carregador*")

	assert.False(t, cards[1].Discounted)
	assert.True(t, cards[1].Effective.Equal(decimal.NewFromInt(30)))
	assert.False(t, cards[1].Available)
}

func TestServiceCards(t *testing.T) {
	cards := TechFix.ServiceCards(catalog.FallbackServices())
	assert.Equal(t, catalog.IconMonitor, cards[0].Symbol)
	assert.Equal(t, catalog.IconUnlock, cards[3].Symbol)
}
