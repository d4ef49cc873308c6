package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	"github.com/entropiahud/entropiahud/internal/session"
	"github.com/entropiahud/entropiahud/internal/stats"
)

// settingsService is the slice of the application service the settings tab
// needs.
type settingsService interface {
	ApplyMarkup() bool
	SetApplyMarkup(on bool)
	ApplyAdditionalExpenses() bool
	SetApplyAdditionalExpenses(on bool)
	Loadout() session.Loadout
	SetLoadout(l session.Loadout)
	TogglePinned(id stats.MetricID) bool
	PinnedIDs() []string
}

// SettingsTab holds settings UI state
type SettingsTab struct {
	LogPath      string
	OnPathChange func(string)
	service      settingsService
	win          fyne.Window
}

// NewSettingsTab creates the settings tab
func NewSettingsTab(
	currentPath string,
	win fyne.Window,
	svc settingsService,
	onPathChange func(string),
) fyne.CanvasObject {
	st := &SettingsTab{
		LogPath:      currentPath,
		OnPathChange: onPathChange,
		service:      svc,
		win:          win,
	}
	return st.build()
}

func (st *SettingsTab) build() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(lang.X("settings.title", "Settings"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	// Chat log path
	pathLabel := widget.NewLabel(lang.X("settings.log_path_label", "Chat Log File Path:"))
	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder(lang.X("settings.log_path_placeholder", "Path to chat.log"))
	pathEntry.SetText(st.LogPath)

	browseBtn := widget.NewButton(lang.X("settings.browse", "Browse..."), func() {
		dialog.ShowFileOpen(func(f fyne.URIReadCloser, err error) {
			if err != nil || f == nil {
				return
			}
			f.Close()
			path := f.URI().Path()
			pathEntry.SetText(path)
			st.LogPath = path
			if st.OnPathChange != nil {
				st.OnPathChange(path)
			}
		}, st.win)
	})

	applyBtn := widget.NewButton(lang.X("settings.apply", "Apply"), func() {
		path := pathEntry.Text
		st.LogPath = path
		if st.OnPathChange != nil {
			st.OnPathChange(path)
		}
	})
	applyBtn.Importance = widget.HighImportance

	pathRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, applyBtn), pathEntry)

	// Economy adjustments
	economyTitle := widget.NewLabelWithStyle(lang.X("settings.economy_title", "Economy Adjustments"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	markupCheck := widget.NewCheck(lang.X("settings.apply_markup", "Apply markup to loot value"), func(checked bool) {
		st.service.SetApplyMarkup(checked)
	})
	markupCheck.SetChecked(st.service.ApplyMarkup())

	expensesCheck := widget.NewCheck(lang.X("settings.apply_expenses", "Include additional expenses (armor decay, consumables)"), func(checked bool) {
		st.service.SetApplyAdditionalExpenses(checked)
	})
	expensesCheck.SetChecked(st.service.ApplyAdditionalExpenses())

	// Weapon loadout
	loadout := st.service.Loadout()
	weaponTitle := widget.NewLabelWithStyle(lang.X("settings.weapon_title", "Weapon Loadout"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	weaponHint := widget.NewLabel(lang.X("settings.weapon_hint", "Cost per use drives spend tracking. Uses per minute switches DPS/DPP to the weapon-rate formula; leave 0 to derive from session time."))
	weaponHint.Wrapping = fyne.TextWrapWord

	costEntry := widget.NewEntry()
	costEntry.SetText(strconv.FormatFloat(loadout.Weapon.CostPerUse, 'f', -1, 64))
	rateEntry := widget.NewEntry()
	rateEntry.SetText(strconv.FormatFloat(loadout.Weapon.UsesPerMinute, 'f', -1, 64))

	weaponApply := widget.NewButton(lang.X("settings.apply", "Apply"), func() {
		cost, err := strconv.ParseFloat(costEntry.Text, 64)
		if err != nil || cost < 0 {
			dialog.ShowInformation(
				lang.X("settings.invalid_value_title", "Invalid value"),
				lang.X("settings.invalid_cost", "Cost per use must be a non-negative number."),
				st.win,
			)
			return
		}
		rate, err := strconv.ParseFloat(rateEntry.Text, 64)
		if err != nil || rate < 0 {
			dialog.ShowInformation(
				lang.X("settings.invalid_value_title", "Invalid value"),
				lang.X("settings.invalid_rate", "Uses per minute must be a non-negative number."),
				st.win,
			)
			return
		}
		next := st.service.Loadout()
		next.Weapon.CostPerUse = cost
		next.Weapon.UsesPerMinute = rate
		st.service.SetLoadout(next)
	})
	weaponApply.Importance = widget.HighImportance

	weaponForm := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(lang.X("settings.cost_per_use", "Cost per use (PED):")), nil, costEntry),
		container.NewBorder(nil, nil, widget.NewLabel(lang.X("settings.uses_per_minute", "Uses per minute:")), weaponApply, rateEntry),
	)

	// Pinned metrics
	pinnedTitle := widget.NewLabelWithStyle(lang.X("settings.pinned_title", "Pinned Metrics"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pinnedHint := widget.NewLabel(lang.X("settings.pinned_hint", "Pin up to three metrics as large cards on the Overview tab."))
	pinnedHint.Wrapping = fyne.TextWrapWord

	pinnedSet := func() map[string]struct{} {
		set := make(map[string]struct{}, stats.PinnedSlots)
		for _, id := range st.service.PinnedIDs() {
			if id != "" {
				set[id] = struct{}{}
			}
		}
		return set
	}

	metricRows := make([]fyne.CanvasObject, 0, len(stats.Enumerate()))
	for _, metric := range stats.Enumerate() {
		metric := metric
		check := widget.NewCheck(metric.Label, nil)
		_, selected := pinnedSet()[string(metric.ID)]
		check.Checked = selected
		check.OnChanged = func(checked bool) {
			if st.service.TogglePinned(metric.ID) {
				return
			}
			// All slots taken: revert the checkbox without re-toggling.
			handler := check.OnChanged
			check.OnChanged = nil
			check.SetChecked(!checked)
			check.OnChanged = handler
			dialog.ShowInformation(
				lang.X("settings.pinned_full_title", "Pinned slots full"),
				lang.X("settings.pinned_full", "Unpin a metric before pinning another one."),
				st.win,
			)
		}

		helpBtn := widget.NewButton(lang.X("settings.help_button", "?"), func() {
			dialog.ShowInformation(metric.Label, metric.Help, st.win)
		})
		helpBtn.Importance = widget.LowImportance

		metricRows = append(metricRows, container.NewBorder(nil, nil, nil, helpBtn, check))
	}
	pinnedSection := container.NewVBox(metricRows...)

	// Info box
	infoLabel := widget.NewLabel(
		lang.X("settings.info_text", "The tracker monitors your chat.log in real-time.\nThe log is typically found at:\n\n  Windows:\n  Documents\\Entropia Universe\\chat.log\n\n  Linux (Steam Proton):\n  ~/.local/share/Steam/steamapps/compatdata/1353370/pfx/\n  drive_c/users/steamuser/Documents/Entropia Universe/\n\nOnly events logged while a session is running are counted."),
	)
	infoLabel.Wrapping = fyne.TextWrapBreak

	form := container.NewVBox(
		title,
		widget.NewSeparator(),
		pathLabel,
		pathRow,
		widget.NewSeparator(),
		economyTitle,
		markupCheck,
		expensesCheck,
		widget.NewSeparator(),
		weaponTitle,
		weaponHint,
		weaponForm,
		widget.NewSeparator(),
		pinnedTitle,
		pinnedHint,
		pinnedSection,
		widget.NewSeparator(),
		infoLabel,
	)

	return container.NewScroll(container.NewPadded(form))
}
