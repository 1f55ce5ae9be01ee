package storefront

import (
	"testing"

	"github.com/diewo77/techfix/internal/models"
	"github.com/shopspring/decimal"
)

func TestProductLinkEncodesEffectivePrice(t *testing.T) {
	p := models.Product{Name: "Carregador", Price: decimal.RequireFromString("45.00"), DiscountPercent: 10}
	got := TechFix.ProductLink(p)
	want := "https://wa.me/5511999999999?text=Ol%C3%A1!%20Tenho%20interesse%20no%20produto%20*Carregador*%20no%20valor%20de%20R%24%2040%2C50.%20Poderia%20me%20fornecer%20mais%20informa%C3%A7%C3%B5es%3F"
	if got != want {
		t.Fatalf("link mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestServiceMessage(t *testing.T) {
	msg := ServiceMessage(models.Service{Name: "Solda"})
	want := "Olá! Gostaria de solicitar um orçamento para o serviço: *Solda*. Poderia me fornecer mais informações sobre prazo e valor?"
	if msg != want {
		t.Fatalf("got %q", msg)
	}
}

func TestMapAndTelLinks(t *testing.T) {
	if got := TechFix.MapLink(); got != "https://www.google.com/maps/search/?api=1&query=Rua%20das%20Flores%2C%20123%20-%20Centro%2C%20S%C3%A3o%20Paulo%20-%20SP" {
		t.Fatalf("map link %s", got)
	}
	if got := TechFix.TelLink(); got != "tel:+5511999999999" {
		t.Fatalf("tel link %s", got)
	}
}

func TestEscapeComponent(t *testing.T) {
	cases := map[string]string{
		"a b":     "a%20b",
		"a+b":     "a%2Bb",
		"(ok)!*'": "(ok)!*'",
		"x/y?z":   "x%2Fy%3Fz",
	}
	for in, want := range cases {
		if got := escapeComponent(in); got != want {
			t.Errorf("escapeComponent(%q) = %q, want %q", in, got, want)
		}
	}
}
