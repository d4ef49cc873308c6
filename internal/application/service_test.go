package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/entropiahud/entropiahud/internal/persistence"
	"github.com/entropiahud/entropiahud/internal/session"
	"github.com/entropiahud/entropiahud/internal/settings"
	"github.com/entropiahud/entropiahud/internal/stats"
)

func newTestService(t *testing.T) (*Service, *persistence.MemoryRepository, *settings.Store) {
	t.Helper()
	repo := persistence.NewMemoryRepository()
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	return NewService(repo, store), repo, store
}

func logLines() []string {
	return []string{
		"2026-08-26 14:03:22 [System] [] You inflicted 45.0 points of damage.",
		"2026-08-26 14:03:23 [System] [] Critical hit - additional damage! You inflicted 90.0 points of damage.",
		"2026-08-26 14:03:24 [System] [] You missed.",
		"2026-08-26 14:03:25 [System] [] You received Animal Hide x (3) Value: 1.50 PED",
		"2026-08-26 14:03:26 [System] [] You have gained 0.5000 experience in your Rifle skill",
		"this line is plain chatter and must be skipped",
	}
}

func TestIngestLinesUpdatesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.IngestLines(ctx, logLines()); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	snap, d, ok := svc.Snapshot()
	if !ok {
		t.Fatal("expected active snapshot")
	}
	if snap.Shots != 3 {
		t.Errorf("shots: expected 3, got %d", snap.Shots)
	}
	if snap.Hits != 2 || snap.Criticals != 1 {
		t.Errorf("hits/crits: expected 2/1, got %d/%d", snap.Hits, snap.Criticals)
	}
	if snap.DamageDealt != 135.0 {
		t.Errorf("damage: expected 135, got %v", snap.DamageDealt)
	}
	if snap.LootValue != 1.5 || snap.Kills != 1 {
		t.Errorf("loot/kills: expected 1.5/1, got %v/%d", snap.LootValue, snap.Kills)
	}
	if snap.SkillGains != 0.5 {
		t.Errorf("skills: expected 0.5, got %v", snap.SkillGains)
	}
	if d.HitRate < 66.6 || d.HitRate > 66.7 {
		t.Errorf("hit rate: expected ~66.67, got %v", d.HitRate)
	}
}

func TestIngestLinesWithoutSessionIsDropped(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.IngestLines(ctx, logLines()); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, _, ok := svc.Snapshot(); ok {
		t.Error("expected no active snapshot")
	}
}

func TestEndSessionPersistsRecord(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.IngestLines(ctx, logLines()); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := svc.EndSession(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}

	if svc.SessionActive() {
		t.Error("expected session to be inactive after end")
	}

	records, count, err := svc.History(ctx, persistence.SessionFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if count != 1 || len(records) != 1 {
		t.Fatalf("expected 1 stored session, got count=%d len=%d", count, len(records))
	}
	rec := records[0]
	if rec.EventCount != 5 {
		t.Errorf("event count: expected 5, got %d", rec.EventCount)
	}
	if rec.Snapshot.LootValue != 1.5 {
		t.Errorf("stored loot: expected 1.5, got %v", rec.Snapshot.LootValue)
	}

	// Ending again with no session running is a no-op.
	if err := svc.EndSession(ctx); err != nil {
		t.Fatalf("second end: %v", err)
	}
	if _, err := repo.GetSession(ctx, rec.ID); err != nil {
		t.Fatalf("get stored session: %v", err)
	}
}

func TestStartSessionEndsPreviousOne(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}

	_, count, err := svc.History(ctx, persistence.SessionFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if count != 1 {
		t.Errorf("expected previous session persisted, got %d records", count)
	}
	if !svc.SessionActive() {
		t.Error("expected new session to be active")
	}
}

func TestTogglePinnedPersistsAcrossRestart(t *testing.T) {
	svc, repo, store := newTestService(t)

	if !svc.TogglePinned(stats.MetricReturnRate) {
		t.Fatal("first pin should succeed")
	}
	if !svc.TogglePinned(stats.MetricDPS) {
		t.Fatal("second pin should succeed")
	}

	// A fresh service over the same settings store restores the selection.
	restarted := NewService(repo, store)
	ids := restarted.PinnedIDs()
	if ids[0] != string(stats.MetricReturnRate) || ids[1] != string(stats.MetricDPS) || ids[2] != "" {
		t.Errorf("restored pinned ids: %v", ids)
	}
}

func TestTogglePinnedFullSelectionRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, id := range []stats.MetricID{stats.MetricReturnRate, stats.MetricDPS, stats.MetricKills} {
		if !svc.TogglePinned(id) {
			t.Fatalf("pin %s should succeed", id)
		}
	}
	if svc.TogglePinned(stats.MetricHitRate) {
		t.Error("fourth pin must be rejected")
	}

	rendered := svc.RenderPinned()
	if len(rendered) != 3 {
		t.Fatalf("expected 3 pinned metrics rendered, got %d", len(rendered))
	}
	if rendered[0].ID != stats.MetricReturnRate {
		t.Errorf("slot order: expected return_rate first, got %s", rendered[0].ID)
	}
}

func TestMarkupToggleAffectsDerived(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService(t)

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.IngestLines(ctx, []string{
		"2026-08-26 14:03:25 [System] [] You received Animal Hide x (1) Value: 100 PED",
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	_, plain, _ := svc.Snapshot()
	svc.SetApplyMarkup(true)
	_, marked, _ := svc.Snapshot()

	if plain.AdjustedLoot != 100 {
		t.Errorf("plain adjusted loot: expected 100, got %v", plain.AdjustedLoot)
	}
	if marked.AdjustedLoot != 105 {
		t.Errorf("markup adjusted loot: expected 105, got %v", marked.AdjustedLoot)
	}
	if !store.GetBool(settings.KeyApplyMarkup, false) {
		t.Error("markup toggle should be persisted")
	}
}

func TestStoredSessionReproducesLiveDerived(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	svc.SetApplyMarkup(true)
	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.IngestLines(ctx, []string{
		"2026-08-26 14:03:25 [System] [] You received Animal Hide x (1) Value: 100 PED",
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	_, live, _ := svc.Snapshot()
	if live.AdjustedLoot != 105 {
		t.Fatalf("live adjusted loot: expected 105, got %v", live.AdjustedLoot)
	}

	if err := svc.EndSession(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	records, _, err := svc.History(ctx, persistence.SessionFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 stored session, got %d", len(records))
	}

	rec := records[0]
	if !rec.Snapshot.MarkupEnabled {
		t.Error("stored snapshot should carry the markup toggle")
	}
	if rec.Snapshot.ExpensesEnabled {
		t.Error("stored snapshot should not carry an expenses toggle that was off")
	}

	// Recompute the way the history view does: from the stored snapshot's own
	// economy configuration. The figures must match what was shown live.
	stored := stats.Calculate(rec.Snapshot, stats.Options{
		ApplyMarkup:             rec.Snapshot.MarkupEnabled,
		ApplyAdditionalExpenses: rec.Snapshot.ExpensesEnabled,
	})
	if stored.AdjustedLoot != live.AdjustedLoot {
		t.Errorf("stored adjusted loot: expected %v, got %v", live.AdjustedLoot, stored.AdjustedLoot)
	}
}

func TestMidSessionToggleStampedOnStoredSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Toggles flipped after the session started still reach the stored record.
	svc.SetApplyMarkup(true)
	svc.SetApplyAdditionalExpenses(true)
	if err := svc.EndSession(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}

	records, _, err := svc.History(ctx, persistence.SessionFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 stored session, got %d", len(records))
	}
	snap := records[0].Snapshot
	if !snap.MarkupEnabled || !snap.ExpensesEnabled {
		t.Errorf("stored toggles: expected markup=true expenses=true, got %v/%v",
			snap.MarkupEnabled, snap.ExpensesEnabled)
	}
	if snap.MarkupValue != stats.DefaultMarkupMultiplier {
		t.Errorf("stored markup value: expected %v, got %v",
			stats.DefaultMarkupMultiplier, snap.MarkupValue)
	}
}

func TestSetLoadoutPersistsAndAppliesToNextSession(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t)

	svc.SetLoadout(session.Loadout{Weapon: session.Weapon{
		Name:          "Opalo",
		UsesPerMinute: 40,
		CostPerUse:    0.05,
	}})

	if got := store.GetFloat(settings.KeyWeaponCostPerUse, 0); got != 0.05 {
		t.Errorf("persisted cost per use: expected 0.05, got %v", got)
	}

	if err := svc.StartSession(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.IngestLines(ctx, []string{
		"2026-08-26 14:03:22 [System] [] You inflicted 45.0 points of damage.",
		"2026-08-26 14:03:24 [System] [] You missed.",
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	snap, _, _ := svc.Snapshot()
	if snap.TotalSpend != 0.1 {
		t.Errorf("spend: expected 0.1, got %v", snap.TotalSpend)
	}

	// Restart restores the loadout from settings.
	restarted := NewService(repo, store)
	if got := restarted.Loadout().Weapon.UsesPerMinute; got != 40 {
		t.Errorf("restored uses per minute: expected 40, got %v", got)
	}
}
