package stats

import (
	"fmt"

	"github.com/entropiahud/entropiahud/internal/session"
)

// MetricID is the stable key of a catalog metric. IDs are what the pinned
// selection and settings file store.
type MetricID string

const (
	MetricSessionTime   MetricID = "session_time"
	MetricLootValue     MetricID = "loot_value"
	MetricTotalSpend    MetricID = "total_spend"
	MetricReturnRate    MetricID = "return_rate"
	MetricProfitLoss    MetricID = "profit_loss"
	MetricLootPerHour   MetricID = "loot_per_hour"
	MetricSpendPerHour  MetricID = "spend_per_hour"
	MetricKills         MetricID = "kills"
	MetricKillsPerHour  MetricID = "kills_per_hour"
	MetricDeaths        MetricID = "deaths"
	MetricShots         MetricID = "shots"
	MetricHitRate       MetricID = "hit_rate"
	MetricCritRate      MetricID = "crit_rate"
	MetricDPS           MetricID = "dps"
	MetricDPP           MetricID = "dpp"
	MetricDamageDealt   MetricID = "damage_dealt"
	MetricDamagePerHour MetricID = "damage_per_hour"
	MetricDamageTaken   MetricID = "damage_taken"
	MetricTargetAvoids  MetricID = "target_avoids"
	MetricDeflects      MetricID = "deflects"
	MetricLootCount     MetricID = "loot_count"
	MetricSkillGains    MetricID = "skill_gains"
	MetricSkillsPerHour MetricID = "skills_per_hour"
	MetricSkillsPerPED  MetricID = "skills_per_ped"
)

// ColorToken is a UI-independent color classification. The rendering layer
// maps tokens to concrete theme colors.
type ColorToken string

const (
	ColorNeutral ColorToken = "neutral"
	ColorGood    ColorToken = "good"
	ColorWarn    ColorToken = "warn"
	ColorBad     ColorToken = "bad"
)

// MetricDefinition is one catalog entry: a pure extractor over (snapshot,
// derived) plus optional formatting and color classification. Extractors
// must be total: any valid snapshot, including the zero value, yields a
// number (0 when the underlying data is absent).
type MetricDefinition struct {
	ID    MetricID
	Label string
	Help  string

	Extract func(session.Snapshot, Derived) float64
	Format  func(float64) string     // nil: two-decimal stringify
	Color   func(float64) ColorToken // nil: ColorNeutral
}

// metricRegistry is the fixed catalog. Order is display order in the
// configuration UI; membership is static and IDs are unique.
var metricRegistry = []MetricDefinition{
	{
		ID:      MetricSessionTime,
		Label:   "Session Time",
		Help:    "Elapsed session time.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.Duration },
		Format:  formatDuration,
	},
	{
		ID:      MetricLootValue,
		Label:   "Loot",
		Help:    "Total loot value received this session, before markup.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.LootValue },
		Format:  formatPED,
	},
	{
		ID:      MetricTotalSpend,
		Label:   "Spend",
		Help:    "Total weapon decay and ammo burn this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.TotalSpend },
		Format:  formatPED,
	},
	{
		ID:      MetricReturnRate,
		Label:   "Return",
		Help:    "Adjusted loot as a percentage of adjusted spend. 100% is break-even.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.ReturnRate },
		Format:  formatPercent,
		Color:   colorForReturnRate,
	},
	{
		ID:      MetricProfitLoss,
		Label:   "Profit/Loss",
		Help:    "Adjusted loot minus adjusted spend.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.ProfitLoss },
		Format:  formatSignedPED,
		Color:   colorForProfit,
	},
	{
		ID:      MetricLootPerHour,
		Label:   "Loot/h",
		Help:    "Loot value projected to a full hour at the current pace.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.LootPerHour },
		Format:  formatPED,
	},
	{
		ID:      MetricSpendPerHour,
		Label:   "Spend/h",
		Help:    "Spend projected to a full hour at the current pace.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.SpendPerHour },
		Format:  formatPED,
	},
	{
		ID:      MetricKills,
		Label:   "Kills",
		Help:    "Creatures looted this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.Kills) },
		Format:  formatCount,
	},
	{
		ID:      MetricKillsPerHour,
		Label:   "Kills/h",
		Help:    "Kills projected to a full hour at the current pace.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.KillsPerHour },
		Format:  formatRate,
	},
	{
		ID:      MetricDeaths,
		Label:   "Deaths",
		Help:    "Times you were killed this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.Deaths) },
		Format:  formatCount,
		Color:   colorForDeaths,
	},
	{
		ID:      MetricShots,
		Label:   "Shots",
		Help:    "Weapon uses this session (hits, misses and avoided attacks).",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.Shots) },
		Format:  formatCount,
	},
	{
		ID:      MetricHitRate,
		Label:   "Hit Rate",
		Help:    "Hits as a percentage of shots fired.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.HitRate },
		Format:  formatPercent,
	},
	{
		ID:      MetricCritRate,
		Label:   "Crit Rate",
		Help:    "Critical hits as a percentage of hits.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.CritRate },
		Format:  formatPercent,
	},
	{
		ID:      MetricDPS,
		Label:   "DPS",
		Help:    "Damage per second. Rate-based when the weapon firing rate is known, otherwise wall-clock average.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.DPS },
		Format:  formatRate,
	},
	{
		ID:      MetricDPP,
		Label:   "DPP",
		Help:    "Damage per PEC of adjusted spend.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.DPP },
		Format:  formatRatio,
	},
	{
		ID:      MetricDamageDealt,
		Label:   "Damage Dealt",
		Help:    "Total damage inflicted this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.DamageDealt },
		Format:  formatRate,
	},
	{
		ID:      MetricDamagePerHour,
		Label:   "Damage/h",
		Help:    "Damage projected to a full hour at the current pace.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.DamagePerHour },
		Format:  formatRate,
	},
	{
		ID:      MetricDamageTaken,
		Label:   "Damage Taken",
		Help:    "Total damage received this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.DamageTaken },
		Format:  formatRate,
	},
	{
		ID:      MetricTargetAvoids,
		Label:   "Avoided",
		Help:    "Your attacks dodged or evaded by the target.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.Dodges + s.Evades) },
		Format:  formatCount,
	},
	{
		ID:      MetricDeflects,
		Label:   "Deflects",
		Help:    "Incoming attacks deflected by your armor.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.Deflects) },
		Format:  formatCount,
	},
	{
		ID:      MetricLootCount,
		Label:   "Items Looted",
		Help:    "Total item stacks received this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return float64(s.LootCount) },
		Format:  formatCount,
	},
	{
		ID:      MetricSkillGains,
		Label:   "Skill Gains",
		Help:    "Total skill experience gained this session.",
		Extract: func(s session.Snapshot, _ Derived) float64 { return s.SkillGains },
		Format:  formatSkill,
	},
	{
		ID:      MetricSkillsPerHour,
		Label:   "Skills/h",
		Help:    "Skill experience projected to a full hour at the current pace.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.SkillsPerHour },
		Format:  formatSkill,
	},
	{
		ID:      MetricSkillsPerPED,
		Label:   "Skills/PED",
		Help:    "Skill experience gained per PED of adjusted spend.",
		Extract: func(_ session.Snapshot, d Derived) float64 { return d.SkillsPerPED },
		Format:  formatSkill,
	},
}

var metricIndex = buildMetricIndex()

func buildMetricIndex() map[MetricID]int {
	idx := make(map[MetricID]int, len(metricRegistry))
	for i, def := range metricRegistry {
		idx[def.ID] = i
	}
	return idx
}

// Lookup resolves a metric id to its definition.
func Lookup(id MetricID) (MetricDefinition, bool) {
	i, ok := metricIndex[id]
	if !ok {
		return MetricDefinition{}, false
	}
	return metricRegistry[i], true
}

// Enumerate returns the catalog in display order. The slice is a copy;
// callers may not mutate the registry.
func Enumerate() []MetricDefinition {
	out := make([]MetricDefinition, len(metricRegistry))
	copy(out, metricRegistry)
	return out
}

// KnownID reports whether id names a catalog metric.
func KnownID(id MetricID) bool {
	_, ok := metricIndex[id]
	return ok
}

func formatPED(v float64) string {
	return fmt.Sprintf("%.2f PED", v)
}

func formatSignedPED(v float64) string {
	return fmt.Sprintf("%+.2f PED", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatCount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatRatio(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func formatSkill(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func formatDuration(v float64) string {
	total := int(v)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func colorForReturnRate(rate float64) ColorToken {
	if rate >= 100 {
		return ColorGood
	}
	if rate >= 90 {
		return ColorWarn
	}
	if rate > 0 {
		return ColorBad
	}
	return ColorNeutral
}

func colorForProfit(profit float64) ColorToken {
	if profit > 0 {
		return ColorGood
	}
	if profit < 0 {
		return ColorBad
	}
	return ColorNeutral
}

func colorForDeaths(deaths float64) ColorToken {
	if deaths > 0 {
		return ColorWarn
	}
	return ColorNeutral
}
