package catalog

import "strings"

// Icon is the glyph shown next to a service.
type Icon int

const (
	IconDefault Icon = iota
	IconMonitor
	IconBattery
	IconCpu
	IconUnlock
)

// IconFor maps a service icon key to its glyph. Unknown keys get IconDefault.
func IconFor(key string) Icon {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "monitor":
		return IconMonitor
	case "battery":
		return IconBattery
	case "cpu":
		return IconCpu
	case "unlock":
		return IconUnlock
	default:
		return IconDefault
	}
}

func (i Icon) String() string {
	switch i {
	case IconMonitor:
		return "monitor"
	case IconBattery:
		return "battery"
	case IconCpu:
		return "cpu"
	case IconUnlock:
		return "unlock"
	default:
		return "wrench"
	}
}

// Glyph returns the character rendered for the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconMonitor:
		return "🖥️"
	case IconBattery:
		return "🔋"
	case IconCpu:
		return "🔌"
	case IconUnlock:
		return "🔓"
	default:
		return "🔧"
	}
}
