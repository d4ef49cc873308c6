package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reLine = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[(\w+)\] \[([^\]]*)\] (.+)$`)

	reCritInflicted = regexp.MustCompile(`^Critical hit - additional damage! You inflicted (\d+(?:\.\d+)?) points of damage\.?$`)
	reInflicted     = regexp.MustCompile(`^You inflicted (\d+(?:\.\d+)?) points of damage\.?$`)
	reTaken         = regexp.MustCompile(`^You took (\d+(?:\.\d+)?) points of damage\.?$`)
	reAbsorbed      = regexp.MustCompile(`^Reduced (\d+(?:\.\d+)?) points of armor damage\.?$`)
	reMiss          = regexp.MustCompile(`^You missed\.?$`)
	reTargetDodged  = regexp.MustCompile(`^The target Dodged your attack\.?$`)
	reTargetEvaded  = regexp.MustCompile(`^The target Evaded your attack\.?$`)
	reDeflected     = regexp.MustCompile(`^Damage deflected!$`)
	reSelfEvaded    = regexp.MustCompile(`^You Evaded the attack\.?$`)

	reLoot  = regexp.MustCompile(`^You received (.+?) x \((\d+)\) Value: (\d+(?:\.\d+)?) PED$`)
	reSkill = regexp.MustCompile(`^You have gained (\d+(?:\.\d+)?) experience in your (.+?) skill$`)
	reDeath = regexp.MustCompile(`^You were killed by the (?:unrelenting )?(.+?)\.?$`)

	reGlobal = regexp.MustCompile(`^(.+?) killed a creature \((.+?)\) with a value of (\d+(?:\.\d+)?) PED!?$`)
)

const timeLayout = "2006-01-02 15:04:05"

// Parser turns raw chat.log lines into Events.
// It is stateless per line; unrecognized lines are reported as not-ok
// rather than errors so the caller can skip chatter.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// ParseLine parses a single chat.log line. ok is false when the line is not
// a recognized session event (player chat, malformed lines, unknown system
// messages).
func (p *Parser) ParseLine(line string) (Event, bool) {
	m := reLine.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}
	ts, err := time.Parse(timeLayout, m[1])
	if err != nil {
		return Event{}, false
	}
	channel := Channel(m[2])
	speaker := m[3]
	msg := strings.TrimSpace(m[4])

	switch channel {
	case ChannelSystem:
		return p.parseSystemMessage(ts, msg)
	case ChannelGlobals:
		return p.parseGlobalMessage(ts, speaker, msg)
	default:
		return Event{}, false
	}
}

func (p *Parser) parseSystemMessage(ts time.Time, msg string) (Event, bool) {
	// Critical first: the plain inflicted pattern is a suffix of it.
	if m := reCritInflicted.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventCriticalHit, Amount: parseAmount(m[1])}, true
	}
	if m := reInflicted.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventDamageInflicted, Amount: parseAmount(m[1])}, true
	}
	if m := reTaken.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventDamageTaken, Amount: parseAmount(m[1])}, true
	}
	if m := reAbsorbed.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventArmorAbsorbed, Amount: parseAmount(m[1])}, true
	}
	if reMiss.MatchString(msg) {
		return Event{Timestamp: ts, Kind: EventMiss}, true
	}
	if reTargetDodged.MatchString(msg) {
		return Event{Timestamp: ts, Kind: EventTargetDodged}, true
	}
	if reTargetEvaded.MatchString(msg) {
		return Event{Timestamp: ts, Kind: EventTargetEvaded}, true
	}
	if reDeflected.MatchString(msg) {
		return Event{Timestamp: ts, Kind: EventDeflected}, true
	}
	if reSelfEvaded.MatchString(msg) {
		return Event{Timestamp: ts, Kind: EventSelfEvaded}, true
	}
	if m := reLoot.FindStringSubmatch(msg); m != nil {
		count, _ := strconv.Atoi(m[2])
		return Event{
			Timestamp: ts,
			Kind:      EventLoot,
			Item:      m[1],
			Count:     count,
			Amount:    parseAmount(m[3]),
		}, true
	}
	if m := reSkill.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventSkillGain, Amount: parseAmount(m[1]), Skill: m[2]}, true
	}
	if m := reDeath.FindStringSubmatch(msg); m != nil {
		return Event{Timestamp: ts, Kind: EventDeath, Item: m[1]}, true
	}
	return Event{}, false
}

func (p *Parser) parseGlobalMessage(ts time.Time, speaker, msg string) (Event, bool) {
	if m := reGlobal.FindStringSubmatch(msg); m != nil {
		player := m[1]
		if player == "" {
			player = speaker
		}
		return Event{
			Timestamp: ts,
			Kind:      EventGlobal,
			Player:    player,
			Item:      m[2],
			Amount:    parseAmount(m[3]),
		}, true
	}
	return Event{}, false
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
