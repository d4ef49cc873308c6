package stats

// PinnedSlots is the number of hero slots on the HUD.
const PinnedSlots = 3

// PinnedSelection is the user's ordered choice of metrics for prominent
// display. It always holds exactly PinnedSlots entries; the empty id marks
// an unused slot. Selected ids are unique and packed to the left.
type PinnedSelection struct {
	slots [PinnedSlots]MetricID
}

// NewPinnedSelection restores a selection from persisted ids. Unknown ids,
// duplicates and overflow entries are dropped; survivors keep their order
// and are packed to the left.
func NewPinnedSelection(ids []string) *PinnedSelection {
	p := &PinnedSelection{}
	n := 0
	seen := make(map[MetricID]struct{}, PinnedSlots)
	for _, raw := range ids {
		id := MetricID(raw)
		if id == "" || !KnownID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if n == PinnedSlots {
			break
		}
		p.slots[n] = id
		seen[id] = struct{}{}
		n++
	}
	return p
}

// Slots returns the current selection, empty ids included.
func (p *PinnedSelection) Slots() [PinnedSlots]MetricID {
	if p == nil {
		return [PinnedSlots]MetricID{}
	}
	return p.slots
}

// IDs returns the selection as strings for persistence, placeholders
// included so slot positions survive a round-trip.
func (p *PinnedSelection) IDs() []string {
	out := make([]string, PinnedSlots)
	if p == nil {
		return out
	}
	for i, id := range p.slots {
		out[i] = string(id)
	}
	return out
}

// Contains reports whether id is currently pinned.
func (p *PinnedSelection) Contains(id MetricID) bool {
	if p == nil || id == "" {
		return false
	}
	for _, s := range p.slots {
		if s == id {
			return true
		}
	}
	return false
}

// Count returns the number of non-empty slots.
func (p *PinnedSelection) Count() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, s := range p.slots {
		if s != "" {
			n++
		}
	}
	return n
}

// Toggle adds or removes id. Removing shifts the remaining ids left and
// pads the right with empty slots. Adding fills the leftmost empty slot;
// when all slots are taken the toggle is a silent no-op so an existing
// choice is never overwritten. Returns true when the selection changed.
func (p *PinnedSelection) Toggle(id MetricID) bool {
	if p == nil || id == "" || !KnownID(id) {
		return false
	}

	if p.Contains(id) {
		kept := make([]MetricID, 0, PinnedSlots)
		for _, s := range p.slots {
			if s != id && s != "" {
				kept = append(kept, s)
			}
		}
		p.slots = [PinnedSlots]MetricID{}
		copy(p.slots[:], kept)
		return true
	}

	for i, s := range p.slots {
		if s == "" {
			p.slots[i] = id
			return true
		}
	}
	return false
}
