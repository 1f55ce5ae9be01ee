package handlers

import (
	"net/http"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/httpx"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/storefront"
	"github.com/diewo77/techfix/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorefrontHandler serves the public catalog page and its JSON mirror.
type StorefrontHandler struct {
	catalog *storefront.Catalog
	shop    storefront.Shop
	log     *zap.Logger
}

func NewStorefrontHandler(c *storefront.Catalog, shop storefront.Shop, log *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{catalog: c, shop: shop, log: log}
}

func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.catalog.Load(r.Context())
	data := map[string]any{
		"Shop":         h.shop,
		"Services":     page.Services,
		"Products":     page.Products,
		"ServiceCards": h.shop.ServiceCards(page.Services.Items),
		"ProductCards": h.shop.ProductCards(page.Products.Items),
	}
	if err := view.Render(w, r, "index.html", data); err != nil {
		renderError(h.log, w, "index.html", err)
	}
}

type listResponse[T any] struct {
	Items    []T  `json:"items"`
	Fallback bool `json:"fallback"`
}

type productItem struct {
	models.Product
	EffectivePrice decimal.Decimal `json:"effective_price"`
	WhatsAppURL    string          `json:"whatsapp_url"`
}

type serviceItem struct {
	models.Service
	WhatsAppURL string `json:"whatsapp_url"`
}

// Products lists in-stock products, or the fallback set.
func (h *StorefrontHandler) Products(w http.ResponseWriter, r *http.Request) {
	sec := h.catalog.Products(r.Context())
	if sec.Loading {
		httpx.JSONError(w, http.StatusServiceUnavailable, "not_settled", nil)
		return
	}
	items := make([]productItem, 0, len(sec.Items))
	for _, p := range sec.Items {
		items = append(items, productItem{
			Product:        p,
			EffectivePrice: catalog.EffectivePrice(p.Price, p.DiscountPercent),
			WhatsAppURL:    h.shop.ProductLink(p),
		})
	}
	httpx.JSON(w, http.StatusOK, listResponse[productItem]{Items: items, Fallback: sec.Fallback})
}

// Services lists every service, or the fallback set.
func (h *StorefrontHandler) Services(w http.ResponseWriter, r *http.Request) {
	sec := h.catalog.Services(r.Context())
	if sec.Loading {
		httpx.JSONError(w, http.StatusServiceUnavailable, "not_settled", nil)
		return
	}
	items := make([]serviceItem, 0, len(sec.Items))
	for _, s := range sec.Items {
		items = append(items, serviceItem{Service: s, WhatsAppURL: h.shop.ServiceLink(s)})
	}
	httpx.JSON(w, http.StatusOK, listResponse[serviceItem]{Items: items, Fallback: sec.Fallback})
}
