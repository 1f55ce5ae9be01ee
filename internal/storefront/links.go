package storefront

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/models"
)

const greeting = "Olá! Gostaria de mais informações sobre os serviços da TechFix."

// WhatsAppLink opens a chat with the shop with text prefilled.
func (s Shop) WhatsAppLink(text string) string {
	return "https://wa.me/" + s.WhatsApp + "?text=" + escapeComponent(text)
}

// ContactLink is the generic "talk to us" chat link.
func (s Shop) ContactLink() string { return s.WhatsAppLink(greeting) }

// ProductLink asks about p at its effective price.
func (s Shop) ProductLink(p models.Product) string {
	return s.WhatsAppLink(ProductMessage(p))
}

// ServiceLink asks for a quote for sv.
func (s Shop) ServiceLink(sv models.Service) string {
	return s.WhatsAppLink(ServiceMessage(sv))
}

func (s Shop) MapLink() string {
	return "https://www.google.com/maps/search/?api=1&query=" + escapeComponent(s.Address)
}

func (s Shop) TelLink() string { return "tel:+" + s.WhatsApp }

func ProductMessage(p models.Product) string {
	price := catalog.FormatBRL(catalog.EffectivePrice(p.Price, p.DiscountPercent))
	return fmt.Sprintf("Olá! Tenho interesse no produto *%s* no valor de %s. Poderia me fornecer mais informações?", p.Name, price)
}

func ServiceMessage(sv models.Service) string {
	return fmt.Sprintf("Olá! Gostaria de solicitar um orçamento para o serviço: *%s*. Poderia me fornecer mais informações sobre prazo e valor?", sv.Name)
}

var componentUnescapes = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// escapeComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and !'()* stay literal.
func escapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
