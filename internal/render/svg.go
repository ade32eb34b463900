package render

import (
	"fmt"
	"strings"

	"github.com/Kalaith/storyline/internal/timeline/layout"
)

// SVGOptions control the exported document. CellSize converts the plan's
// cell coordinates to pixels.
type SVGOptions struct {
	CellWidth  int
	CellHeight int
	Background string
	FontFamily string
	FontSize   int
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.CellWidth <= 0 {
		o.CellWidth = 10
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 18
	}
	if o.Background == "" {
		o.Background = "#1e1e2e"
	}
	if o.FontFamily == "" {
		o.FontFamily = "monospace"
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	return o
}

// SVG writes a layout plan as a standalone SVG document. An empty plan
// yields an empty string.
func SVG(plan layout.Plan, opts SVGOptions) string {
	if plan.Empty() {
		return ""
	}
	o := opts.withDefaults()
	px := func(x int) int { return x * o.CellWidth }
	py := func(y int) int { return y*o.CellHeight + o.CellHeight/2 }

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.band-label { font-family: %s; font-size: %dpx; fill: #6b7280; }
.event-title { font-family: %s; font-size: %dpx; fill: #e5e7eb; }
.tick-label { font-family: %s; font-size: %dpx; fill: #9ca3af; }
</style>
</defs>
`, px(plan.Width), py(plan.Height), o.Background,
		o.FontFamily, o.FontSize-2,
		o.FontFamily, o.FontSize,
		o.FontFamily, o.FontSize-2))

	for _, band := range plan.Bands {
		y := py(band.Y)
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#374151" stroke-width="1" stroke-dasharray="1 4"/>`,
			y, px(plan.Width), y))
		svg.WriteString("\n")
		svg.WriteString(fmt.Sprintf(`<text x="4" y="%d" class="band-label">%s</text>`,
			y-4, escapeXML(band.Label)))
		svg.WriteString("\n")
	}

	for _, line := range plan.Connectors {
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" stroke-opacity="%.2f" stroke-dasharray="4 3"/>`,
			px(line.X1), py(line.Y1), px(line.X2), py(line.Y2),
			line.Color, line.Opacity))
		svg.WriteString("\n")
	}

	for _, m := range plan.Markers {
		r := m.Radius * 2
		stroke := "none"
		strokeWidth := 0
		if m.Selected {
			stroke = "#fbbf24"
			strokeWidth = 2
		}
		svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="%d"><title>%s</title></circle>`,
			px(m.X), py(m.Y), r, m.Color, stroke, strokeWidth,
			escapeXML(m.Title+"\n"+tooltipDetail(m))))
		svg.WriteString("\n")
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="event-title">%s</text>`,
			px(m.X)+r+4, py(m.Y)+4, escapeXML(m.Title)))
		svg.WriteString("\n")
	}

	axisY := py(plan.Height - 1)
	svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#6b7280" stroke-width="1"/>`,
		axisY, px(plan.Width), axisY))
	svg.WriteString("\n")
	for _, tick := range plan.Ticks {
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#6b7280" stroke-width="1"/>`,
			px(tick.X), axisY-4, px(tick.X), axisY+4))
		svg.WriteString("\n")
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="tick-label" text-anchor="middle">%s</text>`,
			px(tick.X), axisY+o.FontSize+6, escapeXML(tick.Label)))
		svg.WriteString("\n")
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
