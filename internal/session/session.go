// Package session models a single play session: its append-only event
// sequence folded into an immutable stats snapshot.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/entropiahud/entropiahud/internal/parser"
)

// Session is one tracked play session. It is created live, mutated only via
// Apply, and frozen permanently once End is called. Callers needing
// cross-goroutine access must serialize externally; the session itself is
// single-writer by design.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is live

	eventCount int
	acc        *Accumulator
	snap       Snapshot
}

// New starts a live session with an empty snapshot. The loadout's economy
// configuration is stamped onto the snapshot so downstream consumers see it
// without reaching back into settings.
func New(loadout Loadout, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: now,
		acc:       NewAccumulator(loadout),
		snap: Snapshot{
			MarkupEnabled:   loadout.MarkupEnabled,
			MarkupValue:     loadout.MarkupValue,
			ExpensesEnabled: loadout.ExpensesEnabled,
		},
	}
}

// Apply folds one event into the session. Events arriving after End are
// dropped: a frozen snapshot never moves again.
func (s *Session) Apply(ev parser.Event) {
	if s == nil || s.Ended() {
		return
	}
	s.eventCount++
	s.acc.Apply(&s.snap, ev)
}

// EventCount reports how many events have been folded in.
func (s *Session) EventCount() int {
	if s == nil {
		return 0
	}
	return s.eventCount
}

// Ended reports whether the session has been frozen.
func (s *Session) Ended() bool {
	return s != nil && !s.EndedAt.IsZero()
}

// End freezes the session at now. The snapshot's duration stops here;
// repeated calls keep the first end time.
func (s *Session) End(now time.Time) {
	if s == nil || s.Ended() {
		return
	}
	s.EndedAt = now
	s.snap.Duration = elapsedSeconds(s.StartedAt, now)
}

// SnapshotAt returns a defensive copy of the current snapshot. For a live
// session the duration is the wall-clock time elapsed since start; for an
// ended session it is the frozen duration.
func (s *Session) SnapshotAt(now time.Time) Snapshot {
	if s == nil {
		return Snapshot{}
	}
	snap := s.snap.clone()
	if !s.Ended() {
		snap.Duration = elapsedSeconds(s.StartedAt, now)
	}
	return snap
}

func elapsedSeconds(from, to time.Time) float64 {
	d := to.Sub(from).Seconds()
	if d < 0 {
		return 0
	}
	return d
}
