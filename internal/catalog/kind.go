package catalog

import (
	"github.com/diewo77/techfix/internal/models"
	"github.com/pkg/errors"
)

// Kind names a manageable record collection.
type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// Record is satisfied by the catalog record types.
type Record interface {
	models.Product | models.Service
}

// writable lists the columns an update may touch. Identifiers and
// timestamps belong to the store.
var writable = map[Kind][]string{
	KindProduct: {"name", "description", "price", "image_url", "category", "discount_percent", "stock_status"},
	KindService: {"name", "description", "price", "icon"},
}

// Kinds returns the known kinds in display order.
func Kinds() []Kind { return []Kind{KindProduct, KindService} }

// ParseKind accepts singular or plural kind names.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "product", "products":
		return KindProduct, nil
	case "service", "services":
		return KindService, nil
	}
	return "", errors.Errorf("catalog: unknown kind %q", s)
}

// Plural is used in routes and template names.
func (k Kind) Plural() string { return string(k) + "s" }

func (k Kind) Columns() []string { return writable[k] }
