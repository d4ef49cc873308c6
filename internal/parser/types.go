package parser

import "time"

// Channel is the chat channel a log line was emitted on.
type Channel string

const (
	ChannelSystem  Channel = "System"
	ChannelGlobals Channel = "Globals"
	ChannelLocal   Channel = "Local"
	ChannelUnknown Channel = "unknown"
)

// EventKind classifies a single chat.log event relevant to session tracking.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventDamageInflicted
	EventCriticalHit
	EventDamageTaken
	EventArmorAbsorbed
	EventMiss
	EventTargetDodged
	EventTargetEvaded
	EventDeflected
	EventSelfEvaded
	EventLoot
	EventSkillGain
	EventDeath
	EventGlobal
)

func (k EventKind) String() string {
	switch k {
	case EventDamageInflicted:
		return "DamageInflicted"
	case EventCriticalHit:
		return "CriticalHit"
	case EventDamageTaken:
		return "DamageTaken"
	case EventArmorAbsorbed:
		return "ArmorAbsorbed"
	case EventMiss:
		return "Miss"
	case EventTargetDodged:
		return "TargetDodged"
	case EventTargetEvaded:
		return "TargetEvaded"
	case EventDeflected:
		return "Deflected"
	case EventSelfEvaded:
		return "SelfEvaded"
	case EventLoot:
		return "Loot"
	case EventSkillGain:
		return "SkillGain"
	case EventDeath:
		return "Death"
	case EventGlobal:
		return "Global"
	default:
		return "Unknown"
	}
}

// Event is a single parsed chat.log occurrence.
// Amount carries damage points for combat events, PED value for loot and
// global events, and experience points for skill gains.
type Event struct {
	Timestamp time.Time
	Kind      EventKind
	Amount    float64
	Item      string // loot item or global creature name
	Count     int    // loot stack count
	Skill     string // skill name for EventSkillGain
	Player    string // announcing player for EventGlobal
}
