package stats

import "testing"

// Boundary Value Testing for the pinned selection: fill, evict-and-shift,
// and the full-selection rejection policy.

func TestPinnedSelectionEmpty(t *testing.T) {
	p := NewPinnedSelection(nil)

	slots := p.Slots()
	if len(slots) != PinnedSlots {
		t.Fatalf("expected %d slots, got %d", PinnedSlots, len(slots))
	}
	for i, s := range slots {
		if s != "" {
			t.Errorf("slot %d: expected empty, got %q", i, s)
		}
	}
	if p.Count() != 0 {
		t.Errorf("count: expected 0, got %d", p.Count())
	}
}

func TestPinnedSelectionToggleAdd(t *testing.T) {
	p := NewPinnedSelection(nil)

	if !p.Toggle(MetricReturnRate) {
		t.Error("first add should change the selection")
	}
	if !p.Toggle(MetricProfitLoss) {
		t.Error("second add should change the selection")
	}

	slots := p.Slots()
	if slots[0] != MetricReturnRate || slots[1] != MetricProfitLoss || slots[2] != "" {
		t.Errorf("unexpected slots: %v", slots)
	}
}

func TestPinnedSelectionToggleRemoveShiftsLeft(t *testing.T) {
	p := NewPinnedSelection([]string{"return_rate", "profit_loss", "dps"})

	if !p.Toggle(MetricReturnRate) {
		t.Fatal("remove should change the selection")
	}

	slots := p.Slots()
	if slots[0] != MetricProfitLoss || slots[1] != MetricDPS || slots[2] != "" {
		t.Errorf("expected left-shifted slots with right padding, got %v", slots)
	}
	if p.Count() != 2 {
		t.Errorf("count: expected 2, got %d", p.Count())
	}
}

func TestPinnedSelectionFullRejects(t *testing.T) {
	p := NewPinnedSelection([]string{"return_rate", "profit_loss", "dps"})

	if p.Toggle(MetricHitRate) {
		t.Error("adding a 4th metric should be rejected")
	}
	slots := p.Slots()
	if slots[0] != MetricReturnRate || slots[1] != MetricProfitLoss || slots[2] != MetricDPS {
		t.Errorf("selection must be unchanged after rejection, got %v", slots)
	}
}

func TestPinnedSelectionToggleUnknown(t *testing.T) {
	p := NewPinnedSelection(nil)

	if p.Toggle("no_such_metric") {
		t.Error("unknown ids must not change the selection")
	}
	if p.Toggle("") {
		t.Error("empty id must not change the selection")
	}
}

func TestPinnedSelectionRestoreSanitizes(t *testing.T) {
	// Unknown ids, duplicates and overflow entries are dropped on restore.
	p := NewPinnedSelection([]string{"bogus", "dps", "", "dps", "hit_rate", "kills", "deaths"})

	slots := p.Slots()
	if slots[0] != MetricDPS || slots[1] != MetricHitRate || slots[2] != MetricKills {
		t.Errorf("unexpected restored slots: %v", slots)
	}
}

func TestPinnedSelectionIDsRoundTrip(t *testing.T) {
	p := NewPinnedSelection([]string{"dps", "kills"})

	ids := p.IDs()
	if len(ids) != PinnedSlots {
		t.Fatalf("IDs length: expected %d, got %d", PinnedSlots, len(ids))
	}

	restored := NewPinnedSelection(ids)
	if restored.Slots() != p.Slots() {
		t.Errorf("round-trip mismatch: %v vs %v", restored.Slots(), p.Slots())
	}
}

func TestPinnedSelectionNoDuplicates(t *testing.T) {
	p := NewPinnedSelection(nil)
	p.Toggle(MetricDPS)
	// Toggling a selected id removes it rather than duplicating.
	if !p.Toggle(MetricDPS) {
		t.Error("toggle of selected id should change the selection")
	}
	if p.Count() != 0 {
		t.Errorf("count after re-toggle: expected 0, got %d", p.Count())
	}
}
