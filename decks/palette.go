// Package decks holds decks compiled into the binary.
package decks

import (
	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/layout"
)

// Suistody palette color names.
const (
	Void       = "void"
	Deep       = "deep"
	Accent     = "accent"
	Amber      = "amber"
	Green      = "green"
	Red        = "red"
	White      = "white"
	Gray       = "gray"
	LightGray  = "light-gray"
	DarkBorder = "dark-border"
	Purple     = "purple"
	BadgeFill  = "badge"
)

// SuistodyPalette returns the dark theme used by the Suistody deck. Semantic
// aliases (warning, success, danger, muted) point at the same colors.
func SuistodyPalette() *layout.Palette {
	colors := map[string]godeck.Color{
		Void:       godeck.NewColor("060A13"),
		Deep:       godeck.NewColor("0A0E1A"),
		Accent:     godeck.NewColor("00D4FF"),
		Amber:      godeck.NewColor("F59E0B"),
		Green:      godeck.NewColor("22C55E"),
		Red:        godeck.NewColor("DC2626"),
		White:      godeck.NewColor("FFFFFF"),
		Gray:       godeck.NewColor("9CA3AF"),
		LightGray:  godeck.NewColor("D1D5DB"),
		DarkBorder: godeck.NewColor("1F2937"),
		Purple:     godeck.NewColor("A855F7"),
		BadgeFill:  godeck.NewColor("301010"),
	}
	colors["warning"] = colors[Amber]
	colors["success"] = colors[Green]
	colors["danger"] = colors[Red]
	colors["muted"] = colors[Gray]
	return layout.NewPalette(layout.PaletteConfig{
		Colors: colors,
		Fonts: map[string]string{
			layout.FontBody: "Segoe UI",
			layout.FontMono: "Consolas",
		},
		TextColor: White,
	})
}
