package storefront

import (
	"context"
	"errors"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Section is one block of the public page. Fallback is set when Items is
// the built-in set rather than store rows. Loading is set when the load
// never settled.
type Section[R catalog.Record] struct {
	Items    []R
	Fallback bool
	Loading  bool
}

// Page is everything the public page renders from the store.
type Page struct {
	Services Section[models.Service]
	Products Section[models.Product]
}

// Catalog loads the public page. Store failures are logged and replaced by
// the fallback set; they never reach the visitor.
type Catalog struct {
	products catalog.Lister[models.Product]
	services catalog.Lister[models.Service]
	log      *zap.Logger
}

func NewCatalog(products catalog.Lister[models.Product], services catalog.Lister[models.Service], log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{products: products, services: services, log: log}
}

// InStock selects the products a visitor may see.
var InStock = catalog.Filter{"stock_status": true}

// Load fetches services and in-stock products concurrently.
func (c *Catalog) Load(ctx context.Context) Page {
	var (
		page Page
		g    errgroup.Group
	)
	g.Go(func() error {
		page.Services = c.Services(ctx)
		return nil
	})
	g.Go(func() error {
		page.Products = c.Products(ctx)
		return nil
	})
	_ = g.Wait()
	return page
}

// Services returns every service, or the fallback set.
func (c *Catalog) Services(ctx context.Context) Section[models.Service] {
	rows, err := c.services.List(ctx, nil)
	return settle(ctx, c.log, catalog.KindService, rows, err, catalog.FallbackServices)
}

// Products returns the in-stock products, or the fallback set.
func (c *Catalog) Products(ctx context.Context) Section[models.Product] {
	rows, err := c.products.List(ctx, InStock)
	return settle(ctx, c.log, catalog.KindProduct, rows, err, catalog.FallbackProducts)
}

// settle maps a list result to a section. Any store error, timeouts
// included, yields the fallback set. Only a request the visitor abandoned
// stays Loading, since nothing will be rendered for it.
func settle[R catalog.Record](ctx context.Context, log *zap.Logger, kind catalog.Kind, rows []R, err error, fallback func() []R) Section[R] {
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return Section[R]{Loading: true}
		}
		log.Warn("storefront: list failed, using fallback", zap.String("kind", string(kind)), zap.Error(err))
		return Section[R]{Items: fallback(), Fallback: true}
	}
	if len(rows) == 0 {
		return Section[R]{Items: fallback(), Fallback: true}
	}
	return Section[R]{Items: rows}
}

// ProductCard is a product with its derived display values.
type ProductCard struct {
	models.Product
	Effective  decimal.Decimal
	Discounted bool
	Available  bool
	Link       string
}

// ServiceCard is a service with its resolved icon and quote link.
type ServiceCard struct {
	models.Service
	Symbol catalog.Icon
	Link   string
}

func (s Shop) ProductCards(items []models.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, ProductCard{
			Product:    p,
			Effective:  catalog.EffectivePrice(p.Price, p.DiscountPercent),
			Discounted: p.DiscountPercent > 0,
			Available:  p.StockStatus,
			Link:       s.ProductLink(p),
		})
	}
	return cards
}

func (s Shop) ServiceCards(items []models.Service) []ServiceCard {
	cards := make([]ServiceCard, 0, len(items))
	for _, sv := range items {
		cards = append(cards, ServiceCard{Service: sv, Symbol: catalog.IconFor(sv.Icon), Link: s.ServiceLink(sv)})
	}
	return cards
}
