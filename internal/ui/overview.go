package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/entropiahud/entropiahud/internal/stats"
)

// overviewMetricCard renders one metric with its semantic color applied to
// the value text. Hero cards are the pinned slots; the rest use the plain
// section style.
func overviewMetricCard(rm stats.RenderedMetric, hero bool) fyne.CanvasObject {
	title := widget.NewLabel(rm.Label)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Wrapping = fyne.TextWrapWord

	value := canvas.NewText(rm.Value, accentForToken(rm.Color))
	value.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	if hero {
		value.TextSize = theme.TextSize() * 1.6
	} else {
		value.TextSize = theme.TextSize() * 1.2
	}

	body := container.NewVBox(title, value)
	if hero {
		return newHeroCard(body)
	}
	return newSectionCard(body)
}

// NewOverviewTab builds the live session dashboard: a session control row,
// the pinned hero cards and the full metric grid.
func NewOverviewTab(
	active bool,
	pinned []stats.RenderedMetric,
	catalog []stats.RenderedMetric,
	onStart func(),
	onStop func(),
) fyne.CanvasObject {
	var controlBtn *widget.Button
	if active {
		controlBtn = widget.NewButtonWithIcon(lang.X("overview.stop", "Stop Session"), theme.MediaStopIcon(), func() {
			if onStop != nil {
				onStop()
			}
		})
	} else {
		controlBtn = widget.NewButtonWithIcon(lang.X("overview.start", "Start Session"), theme.MediaPlayIcon(), func() {
			if onStart != nil {
				onStart()
			}
		})
		controlBtn.Importance = widget.HighImportance
	}

	stateText := lang.X("overview.state.idle", "No session running")
	if active {
		stateText = lang.X("overview.state.running", "Session running")
	}
	stateLabel := widget.NewLabel(stateText)
	controlRow := newSectionCard(container.NewBorder(nil, nil, stateLabel, controlBtn))

	if !active {
		hint := newCenteredEmptyState(lang.X("overview.idle_hint", "Start a session to track loot, damage and returns.\nOnly events logged after the start are counted."))
		return container.NewPadded(container.NewBorder(controlRow, nil, nil, nil, hint))
	}

	sections := []fyne.CanvasObject{controlRow}

	if len(pinned) > 0 {
		heroCards := make([]fyne.CanvasObject, 0, len(pinned))
		for _, rm := range pinned {
			heroCards = append(heroCards, overviewMetricCard(rm, true))
		}
		sections = append(sections,
			widget.NewLabelWithStyle(lang.X("overview.section.pinned", "Pinned"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWithColumns(minInt(stats.PinnedSlots, len(heroCards)), heroCards...),
		)
	}

	pinnedIDs := make(map[stats.MetricID]struct{}, len(pinned))
	for _, rm := range pinned {
		pinnedIDs[rm.ID] = struct{}{}
	}
	otherCards := make([]fyne.CanvasObject, 0, len(catalog))
	for _, rm := range catalog {
		if _, ok := pinnedIDs[rm.ID]; ok {
			continue
		}
		otherCards = append(otherCards, overviewMetricCard(rm, false))
	}
	if len(otherCards) > 0 {
		sections = append(sections,
			widget.NewLabelWithStyle(lang.X("overview.section.all", "All Metrics"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWithColumns(minInt(4, len(otherCards)), otherCards...),
		)
	}

	content := container.NewPadded(container.NewVBox(sections[1:]...))
	return container.NewPadded(container.NewBorder(sections[0], nil, nil, nil, container.NewScroll(content)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
