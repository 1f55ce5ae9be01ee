package catalog

import (
	"context"

	"github.com/diewo77/techfix/internal/models"
	"gorm.io/gorm"
)

// Filter holds equality predicates keyed by column name.
type Filter map[string]any

// Lister is the read side of a Store.
type Lister[R Record] interface {
	List(ctx context.Context, filter Filter) ([]R, error)
}

// Store is the typed accessor used by the console and the storefront.
// Every call is a single attempt against the database; nothing is cached.
type Store[R Record] interface {
	Lister[R]
	Insert(ctx context.Context, rec *R) error
	Update(ctx context.Context, id string, rec *R) error
	Delete(ctx context.Context, id string) error
}

// Gateway implements Store over gorm.
type Gateway[R Record] struct {
	db   *gorm.DB
	kind Kind
}

var (
	_ Store[models.Product] = (*Gateway[models.Product])(nil)
	_ Store[models.Service] = (*Gateway[models.Service])(nil)
)

func NewProducts(db *gorm.DB) *Gateway[models.Product] {
	return &Gateway[models.Product]{db: db, kind: KindProduct}
}

func NewServices(db *gorm.DB) *Gateway[models.Service] {
	return &Gateway[models.Service]{db: db, kind: KindService}
}

func (g *Gateway[R]) Kind() Kind { return g.kind }

// List returns the rows matching filter, newest first.
func (g *Gateway[R]) List(ctx context.Context, filter Filter) ([]R, error) {
	q := g.db.WithContext(ctx).Model(new(R))
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	var rows []R
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fail("list", g.kind, err)
	}
	return rows, nil
}

// Insert creates rec; the store assigns its id and timestamps.
func (g *Gateway[R]) Insert(ctx context.Context, rec *R) error {
	return fail("insert", g.kind, g.db.WithContext(ctx).Create(rec).Error)
}

// Update overwrites the writable columns of row id with the values of rec,
// zero values included.
func (g *Gateway[R]) Update(ctx context.Context, id string, rec *R) error {
	res := g.db.WithContext(ctx).Model(new(R)).
		Where("id = ?", id).
		Select(g.kind.Columns()).
		Updates(rec)
	if res.Error != nil {
		return fail("update", g.kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail("update", g.kind, ErrNotFound)
	}
	return nil
}

// Delete removes row id. Deleting a missing row is not an error.
func (g *Gateway[R]) Delete(ctx context.Context, id string) error {
	return fail("delete", g.kind, g.db.WithContext(ctx).Where("id = ?", id).Delete(new(R)).Error)
}
