package session

// Snapshot is the point-in-time aggregate of a session's raw counters.
// It is always handed out by value; callers never observe in-place mutation.
// Monetary values are PED, damage values are damage points, Duration is
// elapsed seconds.
type Snapshot struct {
	Kills     int
	Shots     int
	Hits      int
	Criticals int
	Deaths    int

	DamageDealt float64
	DamageTaken float64

	Misses   int
	Dodges   int
	Evades   int
	Deflects int

	LootValue  float64
	LootCount  int
	TotalSpend float64

	Duration   float64
	SkillGains float64
	Armor      float64 // damage points absorbed by armor

	MarkupEnabled   bool
	MarkupValue     float64
	ExpensesEnabled bool

	Skills SkillAggregate
}

// SkillAggregate breaks session skill gains down by skill name.
// Total is the flat sum over all categories; a separate grand-total field
// would always equal it, so only one is kept.
type SkillAggregate struct {
	Total       float64
	TotalEvents int
	Categories  map[string]SkillCategory
}

// SkillCategory holds gains for a single skill.
type SkillCategory struct {
	Gains  float64
	Events int
}

// Category returns the per-skill record, zero-valued when the skill has not
// been seen or the aggregate is empty.
func (a SkillAggregate) Category(name string) SkillCategory {
	if a.Categories == nil {
		return SkillCategory{}
	}
	return a.Categories[name]
}

// Weapon is the equipped weapon's cost model. UsesPerMinute 0 means the
// firing rate is unknown and rate-based efficiency formulas do not apply.
type Weapon struct {
	Name          string
	UsesPerMinute float64
	CostPerUse    float64 // decay + ammo burn in PED per use
}

// Loadout is the equipment and economy configuration active for a session.
type Loadout struct {
	Weapon          Weapon
	MarkupEnabled   bool
	MarkupValue     float64
	ExpensesEnabled bool
}

// clone returns a deep copy of the snapshot so readers never share the
// accumulator's category map.
func (s Snapshot) clone() Snapshot {
	out := s
	if s.Skills.Categories != nil {
		cats := make(map[string]SkillCategory, len(s.Skills.Categories))
		for name, c := range s.Skills.Categories {
			cats[name] = c
		}
		out.Skills.Categories = cats
	}
	return out
}
