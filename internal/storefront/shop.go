package storefront

// Shop holds the fixed contact details shown on the public page.
type Shop struct {
	Name     string
	WhatsApp string // digits only, country code first
	Phone    string
	Email    string
	Address  string
	Street   string
	District string
	Postcode string
	Hours    []OpeningHours
}

type OpeningHours struct {
	Days   string
	Period string // empty when closed
}

// TechFix is the shop this storefront serves.
var TechFix = Shop{
	Name:     "TechFix",
	WhatsApp: "5511999999999",
	Phone:    "(11) 99999-9999",
	Email:    "contato@techfix.com.br",
	Address:  "Rua das Flores, 123 - Centro, São Paulo - SP",
	Street:   "Rua das Flores, 123",
	District: "Centro - São Paulo - SP",
	Postcode: "01234-567",
	Hours: []OpeningHours{
		{Days: "hours.weekdays", Period: "08:00 - 18:00"},
		{Days: "hours.saturday", Period: "08:00 - 14:00"},
		{Days: "hours.sunday"},
	},
}
