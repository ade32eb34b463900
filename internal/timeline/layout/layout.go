// Package layout turns a filtered timeline view into a deterministic plan of
// draw commands. It knows nothing about terminals or SVG; renderers execute
// the plan against whatever surface they own.
package layout

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/timeline"
)

const (
	MarginLeft  = 8
	MarginRight = 4
	MarginTop   = 1

	// BandSpacing is the fixed vertical distance between importance bands.
	BandSpacing = 4

	MinZoom     = 0.5
	MaxZoom     = 3.0
	DefaultZoom = 1.0

	// HoverRadiusBoost is the fixed enlargement applied to a hovered marker.
	HoverRadiusBoost = 1

	// tooltipMaxNames caps the character names carried for the hover
	// tooltip; the remainder collapses into an overflow mark.
	tooltipMaxNames = 3

	connectorSaturation = 0.45
	connectorLightness  = 0.55
	connectorOpacity    = 0.35
)

// tierStyle is the fixed per-tier visual encoding.
type tierStyle struct {
	Radius int
	Color  string
}

var tierStyles = map[story.Importance]tierStyle{
	story.ImportanceCritical: {Radius: 3, Color: "#ef4444"},
	story.ImportanceMajor:    {Radius: 2, Color: "#f97316"},
	story.ImportanceModerate: {Radius: 2, Color: "#3b82f6"},
	story.ImportanceMinor:    {Radius: 1, Color: "#9ca3af"},
}

// TierStyle returns the marker radius and fill color for a tier.
func TierStyle(tier story.Importance) (radius int, color string) {
	s, ok := tierStyles[tier]
	if !ok {
		s = tierStyles[story.ImportanceModerate]
	}
	return s.Radius, s.Color
}

// ClampZoom bounds the discrete zoom control to its 0.5x..3x range.
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Options carries everything the layout depends on. Any change to these (or
// to the view) means a full recompute; there is no incremental patching.
type Options struct {
	Width  int // base drawing surface width before zoom
	Height int

	Zoom        float64 // discrete zoom-level control, 0.5..3, default 1
	GestureZoom float64 // interactive zoom transform, composes with Zoom
	PanX        int     // horizontal pan offset in surface cells

	SelectedID string
	HoveredID  string
}

func (o Options) effectiveZoom() float64 {
	z := ClampZoom(o.Zoom)
	if o.Zoom == 0 {
		z = DefaultZoom
	}
	g := o.GestureZoom
	if g <= 0 {
		g = 1
	}
	return z * g
}

// Marker is one plotted event. Date and Characters feed the hover tooltip:
// the formatted instant and the resolved involvement names, capped at
// tooltipMaxNames with a trailing "…".
type Marker struct {
	EventID    string
	Title      string
	Tier       story.Importance
	Date       string
	Characters []string
	X          int
	Y          int
	Radius     int
	Color      string
	Selected   bool
	Hovered    bool
}

// Line is a connector segment between two plotted events.
type Line struct {
	X1, Y1      int
	X2, Y2      int
	Color       string
	Opacity     float64
	Dashed      bool
	CharacterID string
}

// Band is one of the four fixed importance rows.
type Band struct {
	Tier  story.Importance
	Label string
	Y     int
}

// Tick is an axis label anchor.
type Tick struct {
	X     int
	Label string
}

// Plan is the full set of draw commands for one render pass.
type Plan struct {
	Width  int // scaled surface width
	Height int

	Bands      []Band
	Connectors []Line
	Markers    []Marker
	Ticks      []Tick
}

// Empty reports whether the plan draws nothing.
func (p Plan) Empty() bool {
	return len(p.Markers) == 0
}

// Scale maps instants linearly onto the horizontal pixel/cell range.
type Scale struct {
	min, max time.Time
	x0, x1   int
}

// NewScale builds a scale for domain [min,max] and range [x0,x1].
func NewScale(min, max time.Time, x0, x1 int) Scale {
	return Scale{min: min, max: max, x0: x0, x1: x1}
}

// X maps an instant to a horizontal position. A single-instant domain maps
// everything to the range midpoint.
func (s Scale) X(t time.Time) int {
	span := s.max.Sub(s.min)
	if span <= 0 {
		return s.x0 + (s.x1-s.x0)/2
	}
	frac := float64(t.Sub(s.min)) / float64(span)
	return s.x0 + int(frac*float64(s.x1-s.x0)+0.5)
}

// bandY returns the fixed vertical offset for a tier row.
func bandY(tier story.Importance) int {
	return MarginTop + tier.Rank()*BandSpacing
}

// ConnectorColor derives the connector hue from the shared character's level
// (hue = level*30 mod 360) at fixed low saturation and lightness.
func ConnectorColor(c story.Character) string {
	return colorful.Hsl(c.Hue(), connectorSaturation, connectorLightness).Hex()
}

// Compute lays out the filtered view. An empty view yields an empty plan and
// renderers skip the pass entirely; that is the deliberate short-circuit for
// a filtered-to-nothing state, not an error.
func Compute(view []timeline.Event, characters map[string]story.Character, opts Options) Plan {
	plan := Plan{Height: opts.Height}
	plan.Width = int(float64(opts.Width) * opts.effectiveZoom())
	if plan.Width < opts.Width/2 {
		plan.Width = opts.Width / 2
	}

	// Bands are data-independent: all four tiers, fixed order, always present.
	for _, tier := range story.ImportanceTiers {
		plan.Bands = append(plan.Bands, Band{Tier: tier, Label: string(tier), Y: bandY(tier)})
	}

	if len(view) == 0 {
		return plan
	}

	min, max := view[0].Instant, view[0].Instant
	for _, e := range view[1:] {
		if e.Instant.Before(min) {
			min = e.Instant
		}
		if e.Instant.After(max) {
			max = e.Instant
		}
	}
	scale := NewScale(min, max, MarginLeft, plan.Width-MarginRight)

	markerAt := make(map[string]Marker, len(view))
	for _, e := range view {
		radius, color := TierStyle(e.Importance)
		m := Marker{
			EventID:    e.ID,
			Title:      e.Title,
			Tier:       e.Importance,
			Date:       e.Instant.Format("2006-01-02"),
			Characters: tooltipNames(e.CharactersInvolved, characters),
			X:          scale.X(e.Instant) + opts.PanX,
			Y:          bandY(e.Importance),
			Radius:     radius,
			Color:      color,
			Selected:   e.ID == opts.SelectedID,
			Hovered:    e.ID != "" && e.ID == opts.HoveredID,
		}
		if m.Hovered {
			m.Radius += HoverRadiusBoost
		}
		plan.Markers = append(plan.Markers, m)
		markerAt[e.ID] = m
	}

	for _, conn := range timeline.Connectors(view) {
		from, ok := markerAt[conn.From.ID]
		if !ok {
			continue
		}
		to, ok := markerAt[conn.To.ID]
		if !ok {
			continue
		}
		color := "#888888"
		if c, ok := characters[conn.CharacterID]; ok {
			color = ConnectorColor(c)
		}
		plan.Connectors = append(plan.Connectors, Line{
			X1: from.X, Y1: from.Y,
			X2: to.X, Y2: to.Y,
			Color:       color,
			Opacity:     connectorOpacity,
			Dashed:      true,
			CharacterID: conn.CharacterID,
		})
	}

	plan.Ticks = axisTicks(scale, min, max, opts.PanX)
	return plan
}

// tooltipNames resolves involvement IDs to display names. Unknown IDs keep
// the raw ID rather than disappearing.
func tooltipNames(ids []string, characters map[string]story.Character) []string {
	var names []string
	for _, id := range ids {
		if len(names) == tooltipMaxNames {
			names = append(names, "…")
			break
		}
		name := id
		if c, ok := characters[id]; ok && c.Name != "" {
			name = c.Name
		}
		names = append(names, name)
	}
	return names
}

func axisTicks(scale Scale, min, max time.Time, panX int) []Tick {
	format := "2006-01-02"
	if max.Sub(min) < 48*time.Hour {
		format = "01-02 15:04"
	}
	ticks := []Tick{{X: scale.X(min) + panX, Label: min.Format(format)}}
	if max.After(min) {
		mid := min.Add(max.Sub(min) / 2)
		ticks = append(ticks,
			Tick{X: scale.X(mid) + panX, Label: mid.Format(format)},
			Tick{X: scale.X(max) + panX, Label: max.Format(format)},
		)
	}
	return ticks
}
