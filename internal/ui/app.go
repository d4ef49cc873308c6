package ui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/entropiahud/entropiahud/internal/application"
	"github.com/entropiahud/entropiahud/internal/persistence"
	"github.com/entropiahud/entropiahud/internal/settings"
	"github.com/entropiahud/entropiahud/internal/watcher"
)

// historyPageSize caps the history list; older sessions stay queryable from
// the database but are not rendered.
const historyPageSize = 50

// App is the main application controller
type App struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fyneApp fyne.App
	win     fyne.Window
	service application.AppService
	store   *settings.Store

	mu             sync.Mutex
	logPath        string
	watcher        *watcher.LogWatcher
	watcherGen     uint64
	isShuttingDown bool
	closeOnce      sync.Once
	refreshStop    chan struct{}
	refreshWG      sync.WaitGroup

	tabs            *container.AppTabs
	overviewContent *fyne.Container
	historyContent  *fyne.Container
	settingsContent *fyne.Container
	statusText      *widget.Label
}

// Run starts the application
func Run(service application.AppService, store *settings.Store) {
	if service == nil {
		return
	}

	a := app.New()
	a.Settings().SetTheme(hudTheme{})

	win := a.NewWindow(lang.X("app.window.title", "Entropia HUD"))
	win.Resize(fyne.NewSize(1100, 760))
	win.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())

	appCtrl := &App{
		ctx:         ctx,
		cancel:      cancel,
		fyneApp:     a,
		win:         win,
		service:     service,
		store:       store,
		refreshStop: make(chan struct{}),
	}

	win.SetCloseIntercept(func() {
		appCtrl.shutdown()
		win.SetCloseIntercept(nil)
		win.Close()
	})

	win.SetContent(appCtrl.buildUI())
	appCtrl.startRefreshLoop()
	go appCtrl.initLogFile()

	win.ShowAndRun()
}

func (a *App) buildUI() fyne.CanvasObject {
	a.statusText = widget.NewLabel(lang.X("app.status.initializing", "Initializing..."))
	a.statusText.Wrapping = fyne.TextWrapOff
	statusBar := newSectionCard(container.NewHBox(widget.NewIcon(theme.InfoIcon()), a.statusText))

	a.overviewContent = container.NewStack()
	a.historyContent = container.NewStack()
	a.settingsContent = container.NewStack()
	a.doRefreshOverview()
	a.doRefreshHistory()
	a.doRefreshSettings()

	a.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(lang.X("app.tab.overview", "Overview"), theme.HomeIcon(), a.overviewContent),
		container.NewTabItemWithIcon(lang.X("app.tab.history", "History"), theme.HistoryIcon(), a.historyContent),
		container.NewTabItemWithIcon(lang.X("app.tab.settings", "Settings"), theme.SettingsIcon(), a.settingsContent),
	)
	a.tabs.SetTabLocation(container.TabLocationLeading)
	a.tabs.OnSelected = func(item *container.TabItem) {
		switch item.Content {
		case a.historyContent:
			a.doRefreshHistory()
		case a.overviewContent:
			a.doRefreshOverview()
		}
	}

	return container.NewBorder(nil, container.NewPadded(statusBar), nil, nil, a.tabs)
}

// initLogFile resolves the chat log path: the saved setting wins, otherwise
// the known client locations are probed.
func (a *App) initLogFile() {
	path := ""
	if a.store != nil {
		path = a.store.GetString(settings.KeyChatLogPath, "")
	}
	if path == "" {
		detected, err := watcher.DetectChatLog()
		if err != nil {
			a.doSetStatus(lang.X("app.error.no_log_file", "No chat.log found: {{.Error}} — configure in Settings.", map[string]any{"Error": err}))
			return
		}
		path = detected
	}
	a.changeLogFile(path)
}

// changeLogFile swaps the tail watcher over to path. The generation counter
// invalidates callbacks of a watcher that is being replaced.
func (a *App) changeLogFile(path string) {
	if path == "" {
		return
	}

	a.mu.Lock()
	a.watcherGen++
	gen := a.watcherGen
	prevWatcher := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if prevWatcher != nil {
		prevWatcher.Stop()
	}

	w, err := watcher.New(path, watcher.Config{
		OnNewLines: func(lines []string, _, _ int64) {
			if !a.isCurrentWatcherGeneration(gen) {
				return
			}
			if err := a.service.IngestLines(a.ctx, lines); err != nil {
				a.doSetStatus(lang.X("app.error.ingest", "Ingest error: {{.Error}}", map[string]any{"Error": err}))
				return
			}
			fyne.Do(a.doRefreshOverview)
		},
		OnError: func(err error) {
			if !a.isCurrentWatcherGeneration(gen) {
				return
			}
			a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		},
	})
	if err != nil {
		a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		return
	}

	// Skip everything already in the file; sessions only count fresh events.
	if err := w.SeekEnd(); err != nil {
		a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
	}
	if err := w.Start(); err != nil {
		w.Stop()
		a.doSetStatus(lang.X("app.error.watcher_start", "Failed to start watcher: {{.Error}}", map[string]any{"Error": err}))
		return
	}

	a.mu.Lock()
	if a.watcherGen == gen && !a.isShuttingDown {
		a.watcher = w
		a.logPath = path
	} else {
		w.Stop()
	}
	a.mu.Unlock()

	if a.store != nil {
		a.store.Save(map[string]any{settings.KeyChatLogPath: path})
	}
	a.doSetStatus(lang.X("app.status.watching", "Watching: {{.Path}}", map[string]any{"Path": shortPath(path)}))
	fyne.Do(a.doRefreshSettings)
}

func (a *App) isCurrentWatcherGeneration(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.isShuttingDown && a.watcherGen == gen
}

// startRefreshLoop keeps the live duration and hourly projections moving
// while a session is running.
func (a *App) startRefreshLoop() {
	a.refreshWG.Add(1)
	go func() {
		defer a.refreshWG.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-a.refreshStop:
				return
			case <-ticker.C:
				if !a.service.SessionActive() {
					continue
				}
				fyne.Do(func() {
					if a.tabs != nil && a.tabs.Selected() != nil && a.tabs.Selected().Content == a.overviewContent {
						a.doRefreshOverview()
					}
				})
			}
		}
	}()
}

func (a *App) startSession() {
	if err := a.service.StartSession(a.ctx); err != nil {
		a.doSetStatus(lang.X("app.error.session_start", "Failed to start session: {{.Error}}", map[string]any{"Error": err}))
		return
	}
	a.doRefreshOverview()
}

func (a *App) stopSession() {
	if err := a.service.EndSession(a.ctx); err != nil {
		a.doSetStatus(lang.X("app.error.session_stop", "Failed to save session: {{.Error}}", map[string]any{"Error": err}))
	}
	a.doRefreshOverview()
	a.doRefreshHistory()
}

// doRefreshOverview rebuilds the overview tab content.
// MUST be called from the Fyne main thread (or wrapped in fyne.Do).
func (a *App) doRefreshOverview() {
	if a.overviewContent == nil {
		return
	}
	tab := NewOverviewTab(
		a.service.SessionActive(),
		a.service.RenderPinned(),
		a.service.RenderCatalog(),
		a.startSession,
		a.stopSession,
	)
	a.overviewContent.Objects = []fyne.CanvasObject{tab}
	a.overviewContent.Refresh()
}

func (a *App) doRefreshHistory() {
	if a.historyContent == nil {
		return
	}
	records, total, err := a.service.History(a.ctx, persistence.SessionFilter{Limit: historyPageSize})
	if err != nil {
		a.doSetStatus(lang.X("app.error.history", "History error: {{.Error}}", map[string]any{"Error": err}))
		return
	}
	tab := NewHistoryTab(records, total, func(id string) {
		if err := a.service.DeleteSession(a.ctx, id); err != nil {
			a.doSetStatus(lang.X("app.error.delete", "Delete error: {{.Error}}", map[string]any{"Error": err}))
			return
		}
		a.doRefreshHistory()
	})
	a.historyContent.Objects = []fyne.CanvasObject{tab}
	a.historyContent.Refresh()
}

func (a *App) doRefreshSettings() {
	if a.settingsContent == nil {
		return
	}
	a.mu.Lock()
	path := a.logPath
	a.mu.Unlock()

	tab := NewSettingsTab(path, a.win, a.service, func(nextPath string) {
		go a.changeLogFile(nextPath)
	})
	a.settingsContent.Objects = []fyne.CanvasObject{tab}
	a.settingsContent.Refresh()
}

func (a *App) shutdown() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.isShuttingDown = true
		a.watcherGen++
		if a.cancel != nil {
			a.cancel()
		}
		prevWatcher := a.watcher
		a.watcher = nil
		a.mu.Unlock()

		if prevWatcher != nil {
			prevWatcher.Stop()
		}
		close(a.refreshStop)
		a.refreshWG.Wait()
		if a.service != nil {
			_ = a.service.Close()
		}
	})
}

// doSetStatus safely updates the status bar label from any goroutine.
func (a *App) doSetStatus(msg string) {
	fyne.Do(func() {
		if a.statusText != nil {
			a.statusText.SetText(msg)
		}
	})
}

func shortPath(path string) string {
	if len(path) > 60 {
		return "..." + path[len(path)-57:]
	}
	return path
}
