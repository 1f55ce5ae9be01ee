package catalog

import (
	"github.com/diewo77/techfix/internal/models"
	"github.com/shopspring/decimal"
)

// FallbackProducts is shown when the store returns no products.
// A fresh slice is returned on every call.
func FallbackProducts() []models.Product {
	return []models.Product{
		{
			ID:              "1",
			Name:            "Carregador USB-C Rápido",
			Description:     "Carregador original com cabo USB-C para smartphones",
			Price:           decimal.RequireFromString("45.00"),
			ImageURL:        "/static/img/carregador.svg",
			Category:        "Acessórios",
			DiscountPercent: 10,
			StockStatus:     true,
		},
		{
			ID:              "2",
			Name:            "Fone de Ouvido Bluetooth",
			Description:     "Fone de ouvido sem fio com design moderno e qualidade de som superior",
			Price:           decimal.RequireFromString("120.00"),
			ImageURL:        "/static/img/fone.svg",
			Category:        "Acessórios",
			DiscountPercent: 15,
			StockStatus:     true,
		},
	}
}

// FallbackServices is shown when the store returns no services.
func FallbackServices() []models.Service {
	return []models.Service{
		{ID: "1", Name: "Troca de Tela", Description: "Substituição de displays LCD, OLED e touch screen com garantia de qualidade.", Price: decimal.NewFromInt(120), Icon: "Monitor"},
		{ID: "2", Name: "Troca de Bateria", Description: "Baterias originais e compatíveis para todos os modelos de smartphone.", Price: decimal.NewFromInt(80), Icon: "Battery"},
		{ID: "3", Name: "Reparos em Placa", Description: "Soldagem e reparo de componentes SMD com equipamentos profissionais.", Price: decimal.NewFromInt(150), Icon: "Cpu"},
		{ID: "4", Name: "Software", Description: "Reset, desbloqueio e atualização de software para diversos modelos.", Price: decimal.NewFromInt(60), Icon: "Unlock"},
	}
}
