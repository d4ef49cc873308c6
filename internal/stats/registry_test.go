package stats

import (
	"testing"

	"github.com/entropiahud/entropiahud/internal/session"
)

func TestRegistryUniqueIDs(t *testing.T) {
	seen := make(map[MetricID]struct{}, len(metricRegistry))
	for _, def := range metricRegistry {
		if def.ID == "" {
			t.Error("registry entry with empty id")
		}
		if _, dup := seen[def.ID]; dup {
			t.Errorf("duplicate metric id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
}

func TestRegistryEntriesComplete(t *testing.T) {
	for _, def := range metricRegistry {
		if def.Label == "" {
			t.Errorf("%s: missing label", def.ID)
		}
		if def.Help == "" {
			t.Errorf("%s: missing help text", def.ID)
		}
		if def.Extract == nil {
			t.Errorf("%s: missing extractor", def.ID)
		}
	}
}

func TestRegistryExtractorsTotalOnZeroSnapshot(t *testing.T) {
	// Every extractor must be safe on the zero snapshot (absent data
	// defaults to 0, never panics).
	var snap session.Snapshot
	d := Calculate(snap, Options{})
	for _, def := range metricRegistry {
		v := def.Extract(snap, d)
		if v != 0 {
			t.Errorf("%s: expected 0 on zero snapshot, got %v", def.ID, v)
		}
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(MetricReturnRate)
	if !ok {
		t.Fatal("expected return_rate to exist")
	}
	if def.ID != MetricReturnRate {
		t.Errorf("lookup returned wrong entry: %s", def.ID)
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestEnumerateOrderAndCopy(t *testing.T) {
	first := Enumerate()
	if len(first) != len(metricRegistry) {
		t.Fatalf("expected %d entries, got %d", len(metricRegistry), len(first))
	}
	if first[0].ID != metricRegistry[0].ID {
		t.Error("enumeration must preserve display order")
	}

	// Mutating the returned slice must not touch the registry.
	first[0].ID = "mutated"
	if metricRegistry[0].ID == "mutated" {
		t.Error("Enumerate leaked the registry backing array")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}
	for _, c := range cases {
		if got := formatDuration(c.seconds); got != c.want {
			t.Errorf("formatDuration(%v): expected %q, got %q", c.seconds, c.want, got)
		}
	}
}

func TestColorClassifiers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(float64) ColorToken
		v    float64
		want ColorToken
	}{
		{"return break-even", colorForReturnRate, 100, ColorGood},
		{"return near-even", colorForReturnRate, 92.5, ColorWarn},
		{"return losing", colorForReturnRate, 50, ColorBad},
		{"return no data", colorForReturnRate, 0, ColorNeutral},
		{"profit positive", colorForProfit, 0.01, ColorGood},
		{"profit zero", colorForProfit, 0, ColorNeutral},
		{"profit negative", colorForProfit, -0.01, ColorBad},
		{"deaths zero", colorForDeaths, 0, ColorNeutral},
		{"deaths some", colorForDeaths, 1, ColorWarn},
	}
	for _, c := range cases {
		if got := c.fn(c.v); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}
