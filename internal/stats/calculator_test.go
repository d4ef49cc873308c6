package stats

import (
	"math"
	"testing"

	"github.com/entropiahud/entropiahud/internal/session"
)

// Boundary Value Testing for the derived-metrics calculator: zero-spend and
// zero-duration boundaries, adjustment toggles, and the DPS/DPP formula
// branch switch.

const eps = 1e-9

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func baseSnapshot() session.Snapshot {
	return session.Snapshot{
		LootValue:   100,
		TotalSpend:  80,
		Shots:       50,
		Hits:        40,
		DamageDealt: 2000,
		Duration:    120,
		Kills:       10,
	}
}

func TestCalculateZeroSnapshot(t *testing.T) {
	d := Calculate(session.Snapshot{}, Options{})

	// Every ratio with a zero denominator is defined as 0.
	approx(t, "returnRate", d.ReturnRate, 0)
	approx(t, "skillsPerPED", d.SkillsPerPED, 0)
	approx(t, "hitRate", d.HitRate, 0)
	approx(t, "dps", d.DPS, 0)
	approx(t, "dpp", d.DPP, 0)
	approx(t, "lootPerHour", d.LootPerHour, 0)
	approx(t, "profitLoss", d.ProfitLoss, 0)
}

func TestCalculateBaseScenario(t *testing.T) {
	d := Calculate(baseSnapshot(), Options{})

	approx(t, "returnRate", d.ReturnRate, 125.0)
	approx(t, "profitLoss", d.ProfitLoss, 20.0)
	approx(t, "hitRate", d.HitRate, 80.0)
	approx(t, "dps empirical", d.DPS, 2000.0/120.0)
}

func TestCalculateMarkup(t *testing.T) {
	d := Calculate(baseSnapshot(), Options{ApplyMarkup: true})

	approx(t, "adjustedLoot", d.AdjustedLoot, 105.0)
	approx(t, "returnRate", d.ReturnRate, 131.25)
	approx(t, "markupMultiplier", d.MarkupMultiplier, 1.05)
}

func TestCalculateAdditionalExpenses(t *testing.T) {
	d := Calculate(baseSnapshot(), Options{ApplyAdditionalExpenses: true})

	approx(t, "additionalExpenses", d.AdditionalExpenses, 1.6)
	approx(t, "adjustedSpend", d.AdjustedSpend, 81.6)
	approx(t, "profitLoss", d.ProfitLoss, 100.0-81.6)
}

func TestCalculateDPSWeaponRate(t *testing.T) {
	d := Calculate(baseSnapshot(), Options{WeaponUsesPerMinute: 30})

	// (2000/50) * (30/60) = 20.0, regardless of duration.
	approx(t, "dps rate-based", d.DPS, 20.0)
}

func TestCalculateDPSBranchBoundaries(t *testing.T) {
	snap := baseSnapshot()

	// Boundary: weapon rate known but no shots yet — empirical fallback.
	snap.Shots = 0
	snap.Hits = 0
	d := Calculate(snap, Options{WeaponUsesPerMinute: 30})
	approx(t, "dps fallback", d.DPS, 2000.0/120.0)

	// Boundary: no shots and no duration — 0.
	snap.Duration = 0
	d = Calculate(snap, Options{WeaponUsesPerMinute: 30})
	approx(t, "dps zero", d.DPS, 0)
}

func TestCalculateDPP(t *testing.T) {
	snap := baseSnapshot()

	// Fallback branch: 2000 / (80 * 100) = 0.25
	d := Calculate(snap, Options{})
	approx(t, "dpp fallback", d.DPP, 0.25)

	// Weapon branch reduces to the same value by construction.
	d = Calculate(snap, Options{WeaponUsesPerMinute: 30})
	approx(t, "dpp weapon branch", d.DPP, 0.25)

	// Boundary: zero spend — 0 either way.
	snap.TotalSpend = 0
	d = Calculate(snap, Options{WeaponUsesPerMinute: 30})
	approx(t, "dpp zero spend", d.DPP, 0)
}

func TestCalculateHourlyProjections(t *testing.T) {
	snap := baseSnapshot()
	snap.SkillGains = 4
	d := Calculate(snap, Options{})

	approx(t, "lootPerHour", d.LootPerHour, 100.0/120.0*3600)
	approx(t, "spendPerHour", d.SpendPerHour, 80.0/120.0*3600)
	approx(t, "damagePerHour", d.DamagePerHour, 2000.0/120.0*3600)
	approx(t, "skillsPerHour", d.SkillsPerHour, 4.0/120.0*3600)
	approx(t, "killsPerHour", d.KillsPerHour, 10.0/120.0*3600)

	// Boundary: zero duration projects to 0, not infinity.
	snap.Duration = 0
	d = Calculate(snap, Options{})
	approx(t, "lootPerHour zero duration", d.LootPerHour, 0)
	approx(t, "killsPerHour zero duration", d.KillsPerHour, 0)
}

func TestCalculateHitRateBounds(t *testing.T) {
	// hits <= shots keeps the rate within [0, 100].
	for _, c := range []struct{ hits, shots int }{
		{0, 0}, {0, 1}, {1, 1}, {40, 50}, {50, 50},
	} {
		d := Calculate(session.Snapshot{Hits: c.hits, Shots: c.shots}, Options{})
		if d.HitRate < 0 || d.HitRate > 100 {
			t.Errorf("hitRate out of bounds for hits=%d shots=%d: %v", c.hits, c.shots, d.HitRate)
		}
	}
}

func TestCalculateNonNegative(t *testing.T) {
	// DPS/DPP never go negative for non-negative inputs.
	snaps := []session.Snapshot{
		{},
		{DamageDealt: 1, Duration: 0.001},
		{DamageDealt: 0, TotalSpend: 100, Shots: 10, Duration: 60},
		baseSnapshot(),
	}
	for i, snap := range snaps {
		for _, rate := range []float64{0, 30} {
			d := Calculate(snap, Options{WeaponUsesPerMinute: rate})
			if d.DPS < 0 || d.DPP < 0 {
				t.Errorf("case %d rate %v: negative efficiency dps=%v dpp=%v", i, rate, d.DPS, d.DPP)
			}
		}
	}
}

func TestCalculateSkillsPerPED(t *testing.T) {
	snap := baseSnapshot()
	snap.SkillGains = 16
	d := Calculate(snap, Options{})
	approx(t, "skillsPerPED", d.SkillsPerPED, 0.2)

	// Negative profit is allowed.
	snap.LootValue = 10
	d = Calculate(snap, Options{})
	approx(t, "negative profit", d.ProfitLoss, -70.0)
}

func TestCalculateCritRate(t *testing.T) {
	snap := baseSnapshot()
	snap.Criticals = 10
	d := Calculate(snap, Options{})
	approx(t, "critRate", d.CritRate, 25.0)

	// Boundary: no hits — 0.
	d = Calculate(session.Snapshot{Criticals: 0}, Options{})
	approx(t, "critRate no hits", d.CritRate, 0)
}
