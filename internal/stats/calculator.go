// Package stats is the session metrics engine: it derives secondary values
// from a raw session snapshot and exposes a fixed catalog of named,
// formatted, color-classified metrics.
package stats

import "github.com/entropiahud/entropiahud/internal/session"

// Configuration defaults for the economy adjustments. Markup simulates
// resale value on loot; additional expenses model overhead (armor decay,
// healing) as a flat fraction of weapon spend.
const (
	DefaultMarkupMultiplier = 1.05
	AdditionalExpenseRate   = 0.02
	secondsPerHour          = 3600.0
	pecPerPED               = 100.0
)

// Options selects the economy adjustments and the DPS/DPP formula branch.
// WeaponUsesPerMinute 0 means the firing rate is unknown and the calculator
// falls back to wall-clock averages.
type Options struct {
	ApplyMarkup             bool
	ApplyAdditionalExpenses bool
	WeaponUsesPerMinute     float64
}

// Derived holds every secondary value computed from one snapshot. All ratios
// define division by zero as 0.
type Derived struct {
	MarkupMultiplier   float64
	AdditionalExpenses float64
	AdjustedLoot       float64
	AdjustedSpend      float64

	ReturnRate   float64 // percent
	ProfitLoss   float64 // PED, may be negative
	SkillsPerPED float64
	HitRate      float64 // percent
	CritRate     float64 // percent of hits
	DPS          float64
	DPP          float64 // damage per PEC

	LootPerHour   float64
	SpendPerHour  float64
	DamagePerHour float64
	SkillsPerHour float64
	KillsPerHour  float64
}

// Calculate computes all derived values for one snapshot. It is pure: no
// I/O, no clock access, safe on the zero snapshot.
func Calculate(snap session.Snapshot, opt Options) Derived {
	d := Derived{MarkupMultiplier: 1.0}

	if opt.ApplyMarkup {
		d.MarkupMultiplier = DefaultMarkupMultiplier
	}
	if opt.ApplyAdditionalExpenses {
		d.AdditionalExpenses = snap.TotalSpend * AdditionalExpenseRate
	}
	d.AdjustedLoot = snap.LootValue * d.MarkupMultiplier
	d.AdjustedSpend = snap.TotalSpend + d.AdditionalExpenses

	if d.AdjustedSpend > 0 {
		d.ReturnRate = d.AdjustedLoot / d.AdjustedSpend * 100
		d.SkillsPerPED = snap.SkillGains / d.AdjustedSpend
	}
	d.ProfitLoss = d.AdjustedLoot - d.AdjustedSpend

	if snap.Shots > 0 {
		d.HitRate = float64(snap.Hits) / float64(snap.Shots) * 100
	}
	if snap.Hits > 0 {
		d.CritRate = float64(snap.Criticals) / float64(snap.Hits) * 100
	}

	d.DPS = damagePerSecond(snap, opt)
	d.DPP = damagePerPEC(snap, d.AdjustedSpend, opt)

	d.LootPerHour = perHour(snap.LootValue, snap.Duration)
	d.SpendPerHour = perHour(snap.TotalSpend, snap.Duration)
	d.DamagePerHour = perHour(snap.DamageDealt, snap.Duration)
	d.SkillsPerHour = perHour(snap.SkillGains, snap.Duration)
	d.KillsPerHour = perHour(float64(snap.Kills), snap.Duration)

	return d
}

// damagePerSecond prefers the weapon's nominal firing rate when known:
// per-shot damage extrapolated to that rate predicts better than wall-clock
// averages, which are diluted by non-firing time (movement, looting).
func damagePerSecond(snap session.Snapshot, opt Options) float64 {
	if opt.WeaponUsesPerMinute > 0 && snap.Shots > 0 {
		return (snap.DamageDealt / float64(snap.Shots)) * (opt.WeaponUsesPerMinute / 60)
	}
	if snap.Duration > 0 {
		return snap.DamageDealt / snap.Duration
	}
	return 0
}

func damagePerPEC(snap session.Snapshot, adjustedSpend float64, opt Options) float64 {
	if opt.WeaponUsesPerMinute > 0 && snap.Shots > 0 && adjustedSpend > 0 {
		shots := float64(snap.Shots)
		return snap.DamageDealt / shots / ((adjustedSpend / shots) * pecPerPED)
	}
	if adjustedSpend > 0 {
		return snap.DamageDealt / (adjustedSpend * pecPerPED)
	}
	return 0
}

func perHour(quantity, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return quantity / elapsedSeconds * secondsPerHour
}
