package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/entropiahud/entropiahud/internal/stats"
)

var (
	uiMutedTextColor  = color.NRGBA{R: 0xA8, G: 0xB0, B: 0xAB, A: 0xFF}
	uiCardBorderColor = color.NRGBA{R: 0x8A, G: 0x96, B: 0x8E, A: 0x2E}
	uiSurfaceTint     = color.NRGBA{R: 0x72, G: 0x9A, B: 0x82, A: 0x12}
	uiHeroSurfaceTint = color.NRGBA{R: 0x3F, G: 0xA2, B: 0x6E, A: 0x2E}
	uiGoodAccent      = color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}
	uiWarnAccent      = color.NRGBA{R: 0xFF, G: 0xC1, B: 0x07, A: 0xFF}
	uiBadAccent       = color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}
	uiNeutralAccent   = color.NRGBA{R: 0xD7, G: 0xDC, B: 0xD8, A: 0xFF}
)

// accentForToken maps the registry's semantic color tokens to screen colors.
// The tokens stay UI-agnostic so the registry never imports fyne.
func accentForToken(token stats.ColorToken) color.Color {
	switch token {
	case stats.ColorGood:
		return uiGoodAccent
	case stats.ColorWarn:
		return uiWarnAccent
	case stats.ColorBad:
		return uiBadAccent
	default:
		return uiNeutralAccent
	}
}

func newSectionCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.InputBackgroundColor())
	bg.CornerRadius = 10

	tint := canvas.NewRectangle(uiSurfaceTint)
	tint.CornerRadius = 10

	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = 10
	border.StrokeColor = uiCardBorderColor
	border.StrokeWidth = 1

	return container.NewStack(bg, tint, border, container.NewPadded(content))
}

func newHeroCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.InputBackgroundColor())
	bg.CornerRadius = 10

	tint := canvas.NewRectangle(uiHeroSurfaceTint)
	tint.CornerRadius = 10

	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = 10
	border.StrokeColor = color.NRGBA{R: 0x6C, G: 0xC3, B: 0x97, A: 0x70}
	border.StrokeWidth = 1

	return container.NewStack(bg, tint, border, container.NewPadded(content))
}

func newSubtleText(content string) *canvas.Text {
	t := canvas.NewText(content, uiMutedTextColor)
	t.TextSize = theme.TextSize() * 0.86
	return t
}

func newCenteredEmptyState(message string) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	card := newSectionCard(container.NewPadded(label))
	widthLock := canvas.NewRectangle(color.Transparent)
	widthLock.SetMinSize(fyne.NewSize(420, 0))

	return container.NewCenter(container.NewStack(widthLock, card))
}
