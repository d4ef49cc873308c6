package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// hudTheme is a dark theme tuned for an always-on tracker window
type hudTheme struct{}

var _ fyne.Theme = (*hudTheme)(nil)

func (t hudTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	base := theme.DarkTheme().Color(name, theme.VariantDark)
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x46, G: 0xA0, B: 0x6C, A: 0xFF}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x6E, G: 0xC2, B: 0x92, A: 0xAA}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x84, G: 0x8F, B: 0x88, A: 0x2A}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x4E, G: 0xA8, B: 0x76, A: 0x44}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x1E, G: 0x24, B: 0x21, A: 0xFF}
	case theme.ColorNameOverlayBackground:
		return color.NRGBA{R: 0x22, G: 0x29, B: 0x25, A: 0xFF}
	default:
		return base
	}
}

func (t hudTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DarkTheme().Font(style)
}

func (t hudTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DarkTheme().Icon(name)
}

func (t hudTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DarkTheme().Size(name)
}
