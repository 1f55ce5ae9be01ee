package console

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/validation"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrMalformed marks numeric input that is not a number. It surfaces as a
// save error rather than a field violation.
var ErrMalformed = errors.New("malformed number")

// Binder converts between a record and its form.
type Binder[R any] interface {
	Blank() Form
	Fill(rec R) Form
	Read(values url.Values) Form
	Decode(f Form) (R, validation.Violations, error)
	ID(rec R) string
}

// ProductBinder binds models.Product.
type ProductBinder struct{}

var productFields = []string{"name", "description", "price", "image_url", "category", "discount_percent"}

func (ProductBinder) Blank() Form {
	return Form{Values: map[string]string{
		"name": "", "description": "", "price": "", "image_url": "", "category": "",
		"discount_percent": "0",
		"stock_status":     "true",
	}}
}

func (ProductBinder) Fill(p models.Product) Form {
	return Form{ID: p.ID, Values: map[string]string{
		"name":             p.Name,
		"description":      p.Description,
		"price":            p.Price.StringFixed(2),
		"image_url":        p.ImageURL,
		"category":         p.Category,
		"discount_percent": strconv.Itoa(p.DiscountPercent),
		"stock_status":     strconv.FormatBool(p.StockStatus),
	}}
}

func (ProductBinder) Read(values url.Values) Form {
	return readForm(values, productFields, "stock_status")
}

// Decode validates required fields and parses numbers. Discounts outside
// 0-100 are passed through unchanged.
func (ProductBinder) Decode(f Form) (models.Product, validation.Violations, error) {
	v := validation.Violations{}
	validation.Required("name", f.Get("name"), v)
	validation.Required("price", f.Get("price"), v)
	if !v.Empty() {
		return models.Product{}, v, nil
	}
	price, err := parsePrice(f.Get("price"))
	if err != nil {
		return models.Product{}, nil, err
	}
	discount, err := parseDiscount(f.Get("discount_percent"))
	if err != nil {
		return models.Product{}, nil, err
	}
	return models.Product{
		Name:            strings.TrimSpace(f.Get("name")),
		Description:     strings.TrimSpace(f.Get("description")),
		Price:           price,
		ImageURL:        strings.TrimSpace(f.Get("image_url")),
		Category:        strings.TrimSpace(f.Get("category")),
		DiscountPercent: discount,
		StockStatus:     cast.ToBool(f.Get("stock_status")),
	}, nil, nil
}

func (ProductBinder) ID(p models.Product) string { return p.ID }

// ServiceBinder binds models.Service.
type ServiceBinder struct{}

var serviceFields = []string{"name", "description", "price", "icon"}

func (ServiceBinder) Blank() Form {
	return Form{Values: map[string]string{"name": "", "description": "", "price": "", "icon": ""}}
}

func (ServiceBinder) Fill(s models.Service) Form {
	return Form{ID: s.ID, Values: map[string]string{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price.StringFixed(2),
		"icon":        s.Icon,
	}}
}

func (ServiceBinder) Read(values url.Values) Form { return readForm(values, serviceFields) }

func (ServiceBinder) Decode(f Form) (models.Service, validation.Violations, error) {
	v := validation.Violations{}
	validation.Required("name", f.Get("name"), v)
	validation.Required("price", f.Get("price"), v)
	if !v.Empty() {
		return models.Service{}, v, nil
	}
	price, err := parsePrice(f.Get("price"))
	if err != nil {
		return models.Service{}, nil, err
	}
	return models.Service{
		Name:        strings.TrimSpace(f.Get("name")),
		Description: strings.TrimSpace(f.Get("description")),
		Price:       price,
		Icon:        strings.TrimSpace(f.Get("icon")),
	}, nil, nil
}

func (ServiceBinder) ID(s models.Service) string { return s.ID }

// parsePrice accepts "45.00" and "45,00". Negative values are left for
// the store to reject.
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrMalformed, "price %q", raw)
	}
	return d, nil
}

func parseDiscount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	// cast parses with base 0; keep "010" decimal.
	if t := strings.TrimLeft(s, "0"); t != s {
		if t == "" {
			t = "0"
		}
		s = t
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "discount %q", raw)
	}
	return n, nil
}
