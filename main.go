package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/entropiahud/entropiahud/internal/application"
	"github.com/entropiahud/entropiahud/internal/applog"
	"github.com/entropiahud/entropiahud/internal/persistence"
	"github.com/entropiahud/entropiahud/internal/settings"
	"github.com/entropiahud/entropiahud/internal/ui"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	applog.Init(*debug)

	store := settings.NewStore(settings.DefaultPath())

	repo := openRepository()
	ui.Run(application.NewService(repo, store), store)
}

// openRepository opens the session database next to the settings file,
// falling back to an in-memory store when sqlite is unavailable so the
// tracker still runs (history is lost on exit).
func openRepository() persistence.SessionRepository {
	dbPath := filepath.Join(filepath.Dir(settings.DefaultPath()), "sessions.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		slog.Warn("failed to create data directory, using in-memory history", "path", dbPath, "error", err)
		return persistence.NewMemoryRepository()
	}

	repo, err := persistence.NewSQLiteRepository(dbPath)
	if err != nil {
		slog.Warn("failed to open session database, using in-memory history", "path", dbPath, "error", err)
		return persistence.NewMemoryRepository()
	}
	return repo
}
