package render

import (
	"strings"

	"github.com/Kalaith/storyline/internal/timeline/layout"
)

const (
	bandGuideColor = "#3a3a3a"
	tickColor      = "#808080"
	selectionColor = "#fbbf24"
	tooltipColor   = "#d1d5db"
)

// markerGlyph picks a rune by marker radius so tier sizing survives the drop
// to one terminal cell per event.
func markerGlyph(radius int) rune {
	switch {
	case radius >= 3:
		return '⬤'
	case radius == 2:
		return '●'
	default:
		return '•'
	}
}

// Terminal draws a layout plan onto a rune canvas sized to the plan. Lines
// longer than the visible viewport are clipped by the canvas itself; panning
// is already baked into the plan's coordinates.
type Terminal struct{}

// Render executes the plan. An empty plan produces no output at all, leaving
// the caller to show its own placeholder.
func (Terminal) Render(plan layout.Plan) []string {
	if plan.Empty() {
		return nil
	}

	canvas := NewCanvas(plan.Width, plan.Height)

	// Connectors go first so markers and labels overwrite them.
	for _, line := range plan.Connectors {
		drawConnector(canvas, line)
	}
	for _, m := range plan.Markers {
		drawMarker(canvas, m)
	}
	for _, band := range plan.Bands {
		canvas.DrawText(0, band.Y, band.Label, bandGuideColor)
		canvas.DrawH(band.Y, len(band.Label)+1, plan.Width-1, '·', bandGuideColor)
	}
	axisY := plan.Height - 1
	canvas.DrawH(axisY, 0, plan.Width-1, '─', tickColor)
	for _, tick := range plan.Ticks {
		canvas.Set(tick.X, axisY, '┬', tickColor)
		labelX := tick.X - len(tick.Label)/2
		if labelX < 0 {
			labelX = 0
		}
		if labelX+len(tick.Label) > plan.Width {
			labelX = plan.Width - len(tick.Label)
		}
		canvas.DrawText(labelX, axisY, tick.Label, tickColor)
	}

	return canvas.Lines()
}

func drawMarker(c *Canvas, m layout.Marker) {
	c.Set(m.X, m.Y, markerGlyph(m.Radius), m.Color)
	if m.Selected {
		c.Set(m.X-1, m.Y, '[', selectionColor)
		c.Set(m.X+1, m.Y, ']', selectionColor)
	}
	if m.Hovered {
		c.DrawText(m.X+2, m.Y, m.Title, m.Color)
		c.DrawText(m.X+2, m.Y+1, tooltipDetail(m), tooltipColor)
	}
}

// tooltipDetail is the second tooltip line: formatted date, tier, and the
// involved character names the layout resolved.
func tooltipDetail(m layout.Marker) string {
	detail := m.Date + " · " + string(m.Tier)
	if len(m.Characters) > 0 {
		detail += " · " + strings.Join(m.Characters, ", ")
	}
	return detail
}

// drawConnector approximates the diagonal between two bands with an L-shaped
// dashed path, the same shape the canvas uses for any cross-row edge.
func drawConnector(c *Canvas, line layout.Line) {
	midX := (line.X1 + line.X2) / 2
	c.DrawH(line.Y1, line.X1, midX, '╌', line.Color)
	c.DrawV(midX, line.Y1, line.Y2, '╎', line.Color)
	c.DrawH(line.Y2, midX, line.X2, '╌', line.Color)
}
