package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/entropiahud/entropiahud/internal/parser"
	"github.com/entropiahud/entropiahud/internal/persistence"
	"github.com/entropiahud/entropiahud/internal/session"
	"github.com/entropiahud/entropiahud/internal/settings"
	"github.com/entropiahud/entropiahud/internal/stats"
)

// AppService is the interface the UI layer depends on for session control and
// metric queries. application.Service satisfies this interface.
type AppService interface {
	StartSession(ctx context.Context) error
	EndSession(ctx context.Context) error
	SessionActive() bool
	IngestLines(ctx context.Context, lines []string) error

	Snapshot() (session.Snapshot, stats.Derived, bool)
	RenderPinned() []stats.RenderedMetric
	RenderCatalog() []stats.RenderedMetric

	TogglePinned(id stats.MetricID) bool
	PinnedIDs() []string

	ApplyMarkup() bool
	SetApplyMarkup(on bool)
	ApplyAdditionalExpenses() bool
	SetApplyAdditionalExpenses(on bool)
	Loadout() session.Loadout
	SetLoadout(l session.Loadout)

	History(ctx context.Context, f persistence.SessionFilter) ([]persistence.SessionRecord, int, error)
	DeleteSession(ctx context.Context, id string) error

	Close() error
}

type Service struct {
	mu       sync.RWMutex
	repo     persistence.SessionRepository
	parser   parser.Parser
	settings *settings.Store

	current *session.Session
	pinned  *stats.PinnedSelection
	loadout session.Loadout

	applyMarkup             bool
	applyAdditionalExpenses bool
}

// NewService restores pinned slots, toggles and the loadout from the settings
// store, so a restart picks up where the user left off.
func NewService(repo persistence.SessionRepository, store *settings.Store) *Service {
	s := &Service{
		repo:     repo,
		settings: store,
		pinned:   stats.NewPinnedSelection(nil),
	}
	if store != nil {
		s.pinned = stats.NewPinnedSelection(store.GetStringSlice(settings.KeyPinnedMetrics))
		s.applyMarkup = store.GetBool(settings.KeyApplyMarkup, false)
		s.applyAdditionalExpenses = store.GetBool(settings.KeyApplyAdditionalExpenses, false)
		s.loadout = session.Loadout{
			Weapon: session.Weapon{
				UsesPerMinute: store.GetFloat(settings.KeyWeaponUsesPerMinute, 0),
				CostPerUse:    store.GetFloat(settings.KeyWeaponCostPerUse, 0),
			},
		}
	}
	return s
}

// StartSession begins a fresh session. An already-running session is ended
// and persisted first so no tracked data is lost.
func (s *Service) StartSession(ctx context.Context) error {
	if err := s.EndSession(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session.New(s.stampedLoadoutLocked(), time.Now())
	slog.Info("session started", "id", s.current.ID)
	return nil
}

// stampedLoadoutLocked copies the loadout with the current calculator toggles
// stamped on, so the session's snapshot records the economy configuration it
// was tracked under.
func (s *Service) stampedLoadoutLocked() session.Loadout {
	l := s.loadout
	l.MarkupEnabled = s.applyMarkup
	l.MarkupValue = stats.DefaultMarkupMultiplier
	l.ExpensesEnabled = s.applyAdditionalExpenses
	return l
}

// EndSession freezes the running session and saves it to the history. With no
// session running it is a no-op.
func (s *Service) EndSession(ctx context.Context) error {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	if cur != nil {
		cur.End(time.Now())
	}
	applyMarkup := s.applyMarkup
	applyExpenses := s.applyAdditionalExpenses
	s.mu.Unlock()

	if cur == nil {
		return nil
	}

	// The toggles may have changed mid-session; the stored snapshot carries
	// the final state so the history view reproduces the live figures.
	snap := cur.SnapshotAt(cur.EndedAt)
	snap.MarkupEnabled = applyMarkup
	snap.MarkupValue = stats.DefaultMarkupMultiplier
	snap.ExpensesEnabled = applyExpenses

	rec := persistence.SessionRecord{
		ID:         cur.ID,
		StartedAt:  cur.StartedAt,
		EndedAt:    cur.EndedAt,
		EventCount: cur.EventCount(),
		Snapshot:   snap,
	}
	if err := s.repo.SaveSession(ctx, rec); err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	slog.Info("session ended", "id", rec.ID, "events", rec.EventCount)
	return nil
}

func (s *Service) SessionActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// IngestLines parses raw chat log lines and applies the recognized events to
// the running session. Lines arriving with no session active are dropped.
func (s *Service) IngestLines(ctx context.Context, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}

	applied := 0
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := s.parser.ParseLine(line)
		if !ok {
			continue
		}
		s.current.Apply(ev)
		applied++
	}
	if applied > 0 {
		slog.Debug("events applied", "lines", len(lines), "events", applied)
	}
	return nil
}

// Snapshot returns the live counters and derived metrics of the running
// session. ok is false when no session is active.
func (s *Service) Snapshot() (session.Snapshot, stats.Derived, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() (session.Snapshot, stats.Derived, bool) {
	if s.current == nil {
		return session.Snapshot{}, stats.Derived{}, false
	}
	snap := s.current.SnapshotAt(time.Now())
	d := stats.Calculate(snap, s.optionsLocked())
	return snap, d, true
}

func (s *Service) optionsLocked() stats.Options {
	return stats.Options{
		ApplyMarkup:             s.applyMarkup,
		ApplyAdditionalExpenses: s.applyAdditionalExpenses,
		WeaponUsesPerMinute:     s.loadout.Weapon.UsesPerMinute,
	}
}

// RenderPinned returns display-ready values for the pinned slots, in slot
// order. Empty slots and an inactive session render against zero data.
func (s *Service) RenderPinned() []stats.RenderedMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, d, _ := s.snapshotLocked()
	slots := s.pinned.Slots()
	return stats.RenderAll(slots[:], snap, d)
}

// RenderCatalog returns every known metric rendered in display order.
func (s *Service) RenderCatalog() []stats.RenderedMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, d, _ := s.snapshotLocked()
	return stats.RenderCatalog(snap, d)
}

// TogglePinned pins or unpins a metric and persists the new selection. It
// reports whether the selection changed; adding beyond the slot capacity
// leaves it untouched.
func (s *Service) TogglePinned(id stats.MetricID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pinned.Toggle(id) {
		return false
	}
	s.persistPinnedLocked()
	return true
}

func (s *Service) persistPinnedLocked() {
	if s.settings == nil {
		return
	}
	s.settings.Save(map[string]any{settings.KeyPinnedMetrics: s.pinned.IDs()})
}

// PinnedIDs returns the pinned slot ids with empty strings for free slots.
func (s *Service) PinnedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pinned.IDs()
}

func (s *Service) ApplyMarkup() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applyMarkup
}

func (s *Service) SetApplyMarkup(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMarkup = on
	if s.settings != nil {
		s.settings.Save(map[string]any{settings.KeyApplyMarkup: on})
	}
}

func (s *Service) ApplyAdditionalExpenses() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applyAdditionalExpenses
}

func (s *Service) SetApplyAdditionalExpenses(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyAdditionalExpenses = on
	if s.settings != nil {
		s.settings.Save(map[string]any{settings.KeyApplyAdditionalExpenses: on})
	}
}

func (s *Service) Loadout() session.Loadout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadout
}

// SetLoadout updates the weapon profile used for spend tracking and the
// weapon-rate metric branch. It applies to the next session; a running
// session keeps the loadout it started with.
func (s *Service) SetLoadout(l session.Loadout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadout = l
	if s.settings != nil {
		s.settings.Save(map[string]any{
			settings.KeyWeaponUsesPerMinute: l.Weapon.UsesPerMinute,
			settings.KeyWeaponCostPerUse:    l.Weapon.CostPerUse,
		})
	}
}

// History lists stored sessions (newest first) together with the total count
// matching the filter, for pagination.
func (s *Service) History(ctx context.Context, f persistence.SessionFilter) ([]persistence.SessionRecord, int, error) {
	records, err := s.repo.ListSessions(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountSessions(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}

func (s *Service) Close() error {
	if err := s.EndSession(context.Background()); err != nil {
		slog.Warn("failed to persist session on close", "error", err)
	}
	if c, ok := s.repo.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
