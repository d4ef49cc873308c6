package stats

import (
	"fmt"

	"github.com/entropiahud/entropiahud/internal/session"
)

// RenderedMetric is a display-ready metric: label, formatted value and a
// color token for the UI to map.
type RenderedMetric struct {
	ID    MetricID
	Label string
	Value string
	Color ColorToken
}

// Render resolves id through the registry and produces the renderable
// triple. ok is false for unknown ids; callers drop those rather than fail
// the whole render pass.
func Render(id MetricID, snap session.Snapshot, d Derived) (RenderedMetric, bool) {
	def, ok := Lookup(id)
	if !ok {
		return RenderedMetric{}, false
	}

	v := def.Extract(snap, d)

	value := fmt.Sprintf("%.2f", v)
	if def.Format != nil {
		value = def.Format(v)
	}

	colorToken := ColorNeutral
	if def.Color != nil {
		colorToken = def.Color(v)
	}

	return RenderedMetric{ID: id, Label: def.Label, Value: value, Color: colorToken}, true
}

// RenderAll renders the given ids in order, omitting unknown ids and empty
// placeholder slots.
func RenderAll(ids []MetricID, snap session.Snapshot, d Derived) []RenderedMetric {
	out := make([]RenderedMetric, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if rm, ok := Render(id, snap, d); ok {
			out = append(out, rm)
		}
	}
	return out
}

// RenderCatalog renders every registry metric in display order.
func RenderCatalog(snap session.Snapshot, d Derived) []RenderedMetric {
	out := make([]RenderedMetric, 0, len(metricRegistry))
	for _, def := range metricRegistry {
		if rm, ok := Render(def.ID, snap, d); ok {
			out = append(out, rm)
		}
	}
	return out
}
