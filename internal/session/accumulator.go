package session

import (
	"time"

	"github.com/entropiahud/entropiahud/internal/parser"
)

// Accumulator folds parsed chat.log events into a Snapshot.
// Folding maintains the counter invariants: every outgoing attack outcome
// (hit, critical, miss, dodge, evade) counts one shot, criticals also count
// as hits, and spend grows by the loadout's per-use cost on each shot.
type Accumulator struct {
	loadout Loadout

	// Loot lines from a single kill share one timestamp; a new timestamp
	// starts a new loot claim and counts one kill.
	lastLootTime time.Time
}

func NewAccumulator(loadout Loadout) *Accumulator {
	return &Accumulator{loadout: loadout}
}

// Apply folds one event into snap. Events the snapshot has no counter for
// (self-evades, globals) are ignored.
func (a *Accumulator) Apply(snap *Snapshot, ev parser.Event) {
	if snap == nil {
		return
	}

	switch ev.Kind {
	case parser.EventDamageInflicted:
		a.countShot(snap)
		snap.Hits++
		snap.DamageDealt += ev.Amount
	case parser.EventCriticalHit:
		a.countShot(snap)
		snap.Hits++
		snap.Criticals++
		snap.DamageDealt += ev.Amount
	case parser.EventMiss:
		a.countShot(snap)
		snap.Misses++
	case parser.EventTargetDodged:
		a.countShot(snap)
		snap.Dodges++
	case parser.EventTargetEvaded:
		a.countShot(snap)
		snap.Evades++
	case parser.EventDamageTaken:
		snap.DamageTaken += ev.Amount
	case parser.EventArmorAbsorbed:
		snap.Armor += ev.Amount
	case parser.EventDeflected:
		snap.Deflects++
	case parser.EventDeath:
		snap.Deaths++
	case parser.EventLoot:
		snap.LootValue += ev.Amount
		snap.LootCount += ev.Count
		if !ev.Timestamp.Equal(a.lastLootTime) {
			snap.Kills++
			a.lastLootTime = ev.Timestamp
		}
	case parser.EventSkillGain:
		a.applySkillGain(snap, ev)
	}
}

func (a *Accumulator) countShot(snap *Snapshot) {
	snap.Shots++
	snap.TotalSpend += a.loadout.Weapon.CostPerUse
}

func (a *Accumulator) applySkillGain(snap *Snapshot, ev parser.Event) {
	snap.SkillGains += ev.Amount
	snap.Skills.Total += ev.Amount
	snap.Skills.TotalEvents++
	if snap.Skills.Categories == nil {
		snap.Skills.Categories = make(map[string]SkillCategory)
	}
	cat := snap.Skills.Categories[ev.Skill]
	cat.Gains += ev.Amount
	cat.Events++
	snap.Skills.Categories[ev.Skill] = cat
}
