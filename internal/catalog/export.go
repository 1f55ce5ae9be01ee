package catalog

import (
	"io"
	"strconv"
	"time"

	"github.com/diewo77/techfix/internal/models"
	"github.com/gocarina/gocsv"
)

type productRow struct {
	ID              string `csv:"id"`
	Name            string `csv:"name"`
	Description     string `csv:"description"`
	Price           string `csv:"price"`
	EffectivePrice  string `csv:"effective_price"`
	DiscountPercent int    `csv:"discount_percent"`
	Category        string `csv:"category"`
	ImageURL        string `csv:"image_url"`
	StockStatus     bool   `csv:"stock_status"`
	CreatedAt       string `csv:"created_at"`
}

type serviceRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Icon        string `csv:"icon"`
	CreatedAt   string `csv:"created_at"`
}

// WriteProductsCSV writes products as CSV with a header row.
func WriteProductsCSV(w io.Writer, products []models.Product) error {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			Price:           p.Price.StringFixed(2),
			EffectivePrice:  EffectivePrice(p.Price, p.DiscountPercent).StringFixed(2),
			DiscountPercent: p.DiscountPercent,
			Category:        p.Category,
			ImageURL:        p.ImageURL,
			StockStatus:     p.StockStatus,
			CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(rows, w)
}

// WriteServicesCSV writes services as CSV with a header row.
func WriteServicesCSV(w io.Writer, services []models.Service) error {
	rows := make([]serviceRow, 0, len(services))
	for _, s := range services {
		rows = append(rows, serviceRow{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price.StringFixed(2),
			Icon:        s.Icon,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(rows, w)
}

// FileName returns the download name for an export of kind.
func FileName(kind Kind, now time.Time) string {
	return kind.Plural() + "-" + strconv.FormatInt(now.Unix(), 10) + ".csv"
}
