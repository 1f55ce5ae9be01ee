package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable item shown in the public catalog.
// DiscountPercent 0 means no discount; StockStatus false hides the item
// from the storefront but keeps it in the admin console.
type Product struct {
	ID              string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_products_price,price >= 0" json:"price"`
	ImageURL        string          `gorm:"column:image_url" json:"image_url"`
	Category        string          `json:"category"`
	DiscountPercent int             `gorm:"not null" json:"discount_percent"`
	StockStatus     bool            `gorm:"not null" json:"stock_status"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Service is a repair service offered by the shop.
// Icon is a free text key; unknown keys render a default glyph.
type Service struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_services_price,price >= 0" json:"price"`
	Icon        string          `json:"icon"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AdminProfile marks an auth subject as an administrator.
// Its presence for a subject is the only admin check.
type AdminProfile struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an auth subject.
type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Confirmed reports whether the user confirmed their email address.
func (u *User) Confirmed() bool { return u.ConfirmedAt != nil }

func (p *Product) BeforeCreate(*gorm.DB) error      { p.ID = assignID(p.ID); return nil }
func (s *Service) BeforeCreate(*gorm.DB) error      { s.ID = assignID(s.ID); return nil }
func (a *AdminProfile) BeforeCreate(*gorm.DB) error { a.ID = assignID(a.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error         { u.ID = assignID(u.ID); return nil }

func assignID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// All lists every model handled by AutoMigrate.
func All() []any {
	return []any{&User{}, &AdminProfile{}, &Product{}, &Service{}}
}
