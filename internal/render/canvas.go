// Package render executes layout plans against concrete surfaces: a terminal
// rune canvas for the interactive view and an SVG document for export.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	color string
}

// Canvas is a fixed-size rune grid with an optional foreground color per
// cell. Drawing outside the grid is silently clipped.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]cell, height)
	for y := range cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		cells[y] = row
	}
	return &Canvas{width: width, height: height, cells: cells}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) in(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

// Set overwrites a cell.
func (c *Canvas) Set(x, y int, r rune, color string) {
	if !c.in(x, y) {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

// SetIfEmpty writes a cell only when nothing has been drawn there yet, so
// earlier draws win over later ones.
func (c *Canvas) SetIfEmpty(x, y int, r rune, color string) {
	if !c.in(x, y) || c.cells[y][x].r != ' ' {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

// DrawText writes a string left to right, clipping at the edges.
func (c *Canvas) DrawText(x, y int, s, color string) {
	col := x
	for _, r := range s {
		c.Set(col, y, r, color)
		col++
	}
}

// DrawH draws a horizontal run between x1 and x2 without overwriting.
func (c *Canvas) DrawH(y, x1, x2 int, r rune, color string) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.SetIfEmpty(x, y, r, color)
	}
}

// DrawV draws a vertical run between y1 and y2 without overwriting.
func (c *Canvas) DrawV(x, y1, y2 int, r rune, color string) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.SetIfEmpty(x, y, r, color)
	}
}

// Lines renders the grid to terminal lines, applying lipgloss foreground
// colors over runs of identically-colored cells.
func (c *Canvas) Lines() []string {
	out := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var line strings.Builder
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			cl := c.cells[y][x]
			if cl.color != runColor {
				flush()
				runColor = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
		out = append(out, line.String())
	}
	return out
}

// PlainLines renders the grid without any styling. Used by tests and by
// plain-text export.
func (c *Canvas) PlainLines() []string {
	out := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var line strings.Builder
		for x := 0; x < c.width; x++ {
			line.WriteRune(c.cells[y][x].r)
		}
		out = append(out, line.String())
	}
	return out
}
