package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/entropiahud/entropiahud/internal/persistence"
	"github.com/entropiahud/entropiahud/internal/stats"
)

// historySummaryMetrics is the per-session figure row in the history list.
var historySummaryMetrics = []stats.MetricID{
	stats.MetricSessionTime,
	stats.MetricLootValue,
	stats.MetricTotalSpend,
	stats.MetricReturnRate,
	stats.MetricProfitLoss,
	stats.MetricKills,
}

func historySessionCard(rec persistence.SessionRecord, onDelete func(id string)) fyne.CanvasObject {
	title := widget.NewLabel(rec.StartedAt.Local().Format("2006-01-02 15:04"))
	title.TextStyle = fyne.TextStyle{Bold: true}

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if onDelete != nil {
			onDelete(rec.ID)
		}
	})
	deleteBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, title, deleteBtn)

	// Stored snapshots are frozen, so the derived figures use the economy
	// configuration the session was recorded with.
	d := stats.Calculate(rec.Snapshot, stats.Options{
		ApplyMarkup:             rec.Snapshot.MarkupEnabled,
		ApplyAdditionalExpenses: rec.Snapshot.ExpensesEnabled,
	})
	cells := make([]fyne.CanvasObject, 0, len(historySummaryMetrics))
	for _, id := range historySummaryMetrics {
		rm, ok := stats.Render(id, rec.Snapshot, d)
		if !ok {
			continue
		}
		cells = append(cells, container.NewVBox(
			newSubtleText(rm.Label),
			widget.NewLabelWithStyle(rm.Value, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
		))
	}

	body := container.NewVBox(header, container.NewGridWithColumns(len(cells), cells...))
	return newSectionCard(body)
}

// NewHistoryTab lists stored sessions newest first.
func NewHistoryTab(records []persistence.SessionRecord, total int, onDelete func(id string)) fyne.CanvasObject {
	if len(records) == 0 {
		return newCenteredEmptyState(lang.X("history.empty", "No finished sessions yet.\nStopped sessions show up here."))
	}

	title := widget.NewLabelWithStyle(lang.X("history.title", "Session History"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabel(lang.X("history.subtitle", "{{.Count}} stored sessions", map[string]any{"Count": total}))

	cards := make([]fyne.CanvasObject, 0, len(records))
	for _, rec := range records {
		cards = append(cards, historySessionCard(rec, onDelete))
	}

	content := container.NewPadded(container.NewVBox(cards...))
	return container.NewBorder(
		container.NewPadded(container.NewVBox(title, subtitle)),
		nil, nil, nil,
		container.NewScroll(content),
	)
}
