package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kalaith/storyline/internal/render"
	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/timeline"
	"github.com/Kalaith/storyline/internal/timeline/layout"
)

const (
	panStep  = 4
	zoomStep = 0.25

	// headerLines is how many terminal rows sit above the view body; mouse
	// coordinates arrive in screen space and need the offset removed.
	headerLines = 1

	gestureZoomFactor = 1.1
)

// tooltipExpiredMsg clears a hover tooltip. Carries the hover sequence it was
// scheduled for so a newer hover is not clobbered by an old timer.
type tooltipExpiredMsg struct {
	seq int
}

type timelineView struct {
	normalized timeline.Normalized
	characters []story.Character
	charIndex  map[string]story.Character

	filter    timeline.Filter
	zoom      float64
	baseZoom  float64
	gesture   float64
	panX      int
	dragging  bool
	dragX     int
	selected  string
	hovered   string
	hoverSeq  int
	showStats bool
	status    string

	tooltipTimeout time.Duration

	lastPlan layout.Plan
}

func newTimelineView(defaultZoom float64, tooltipTimeout time.Duration) *timelineView {
	zoom := layout.ClampZoom(defaultZoom)
	return &timelineView{
		zoom:           zoom,
		baseZoom:       zoom,
		gesture:        1.0,
		tooltipTimeout: tooltipTimeout,
	}
}

// SetStory replaces the working set. The active filter survives a reload; a
// selection pointing at an event no longer in view is dropped.
func (v *timelineView) SetStory(events []story.Event, characters []story.Character) {
	v.normalized = timeline.Normalize(events)
	v.characters = characters
	v.charIndex = story.CharacterIndex(characters)
	v.reconcileSelection()
}

func (v *timelineView) Select(id string) {
	v.selected = id
}

func (v *timelineView) SetStatus(text string) {
	v.status = strings.TrimSpace(text)
}

// SummaryLine feeds the header: totals for the full set, not the filtered
// view.
func (v *timelineView) SummaryLine() string {
	s := timeline.Stats(v.normalized)
	if s.TotalEvents == 0 {
		return "no events"
	}
	return fmt.Sprintf("%d events · %d major · %d characters · %dd span",
		s.TotalEvents, s.MajorEvents, s.ActiveCharacters, s.DaysSpan)
}

func (v *timelineView) view() []timeline.Event {
	return v.filter.Apply(v.normalized)
}

func (v *timelineView) reconcileSelection() {
	if v.selected == "" {
		return
	}
	for _, e := range v.view() {
		if e.ID == v.selected {
			return
		}
	}
	v.selected = ""
}

func (v *timelineView) Init() tea.Cmd {
	return nil
}

func (v *timelineView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(typed)
	case tea.MouseMsg:
		return v.handleMouse(typed)
	case tooltipExpiredMsg:
		if typed.seq == v.hoverSeq {
			v.hovered = ""
		}
		return nil
	}
	return nil
}

func (v *timelineView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "h", "left":
		v.panX += panStep
		return nil
	case "l", "right":
		v.panX -= panStep
		return nil
	case "+", "=":
		v.zoom = layout.ClampZoom(v.zoom + zoomStep)
		return nil
	case "-", "_":
		v.zoom = layout.ClampZoom(v.zoom - zoomStep)
		return nil
	case "0":
		v.zoom = v.baseZoom
		v.gesture = 1.0
		v.panX = 0
		return nil
	case "j", "down":
		v.moveSelection(1)
		return nil
	case "k", "up":
		v.moveSelection(-1)
		return nil
	case "enter":
		if e, ok := v.selectedEvent(); ok {
			return openEditorCmd(e.Event)
		}
		return nil
	case "a":
		return addEventCmd()
	case "c":
		v.cycleCharacterFilter()
		v.reconcileSelection()
		return nil
	case "i":
		v.cycleImportanceFilter()
		v.reconcileSelection()
		return nil
	case "x":
		v.filter = timeline.Filter{}
		v.reconcileSelection()
		return nil
	case "s":
		v.showStats = !v.showStats
		return nil
	}
	return nil
}

func (v *timelineView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.gesture = clampGesture(v.gesture * gestureZoomFactor)
		return nil
	case tea.MouseButtonWheelDown:
		v.gesture = clampGesture(v.gesture / gestureZoomFactor)
		return nil
	}

	x := msg.X
	y := msg.Y - headerLines

	switch msg.Action {
	case tea.MouseActionMotion:
		if v.dragging && msg.Button == tea.MouseButtonLeft {
			v.panX += x - v.dragX
			v.dragX = x
			return nil
		}
		if id, ok := v.markerAt(x, y); ok {
			return v.setHover(id)
		}
		v.clearHover()
		return nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if id, ok := v.markerAt(x, y); ok {
			v.selected = id
			if e, ok := v.eventByID(id); ok {
				return openEditorCmd(e.Event)
			}
			return nil
		}
		// Pressing empty canvas starts a pan drag.
		v.dragging = true
		v.dragX = x
		return nil
	case tea.MouseActionRelease:
		v.dragging = false
		return nil
	}
	return nil
}

// clearHover drops the tooltip the moment the pointer leaves a marker. The
// sequence bump turns the pending timer into a stale no-op.
func (v *timelineView) clearHover() {
	if v.hovered == "" {
		return
	}
	v.hovered = ""
	v.hoverSeq++
}

// setHover starts the tooltip timer. Each new hover bumps the sequence so
// the previous timer expires into nothing.
func (v *timelineView) setHover(id string) tea.Cmd {
	if id == v.hovered {
		return nil
	}
	v.hovered = id
	v.hoverSeq++
	seq := v.hoverSeq
	return tea.Tick(v.tooltipTimeout, func(time.Time) tea.Msg {
		return tooltipExpiredMsg{seq: seq}
	})
}

func (v *timelineView) markerAt(x, y int) (string, bool) {
	for _, m := range v.lastPlan.Markers {
		if m.Y == y && absInt(m.X-x) <= 2 {
			return m.EventID, true
		}
	}
	return "", false
}

func (v *timelineView) eventByID(id string) (timeline.Event, bool) {
	for _, e := range v.view() {
		if e.ID == id {
			return e, true
		}
	}
	return timeline.Event{}, false
}

func (v *timelineView) selectedEvent() (timeline.Event, bool) {
	if v.selected == "" {
		return timeline.Event{}, false
	}
	return v.eventByID(v.selected)
}

// moveSelection walks the chronological view order.
func (v *timelineView) moveSelection(delta int) {
	view := v.view()
	if len(view) == 0 {
		return
	}
	idx := -1
	for i, e := range view {
		if e.ID == v.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta > 0 {
			v.selected = view[0].ID
		} else {
			v.selected = view[len(view)-1].ID
		}
		return
	}
	idx = clampInt(idx+delta, 0, len(view)-1)
	v.selected = view[idx].ID
}

func (v *timelineView) cycleCharacterFilter() {
	if len(v.characters) == 0 {
		return
	}
	if v.filter.CharacterID == "" {
		v.filter.CharacterID = v.characters[0].ID
		return
	}
	for i, c := range v.characters {
		if c.ID == v.filter.CharacterID {
			if i+1 < len(v.characters) {
				v.filter.CharacterID = v.characters[i+1].ID
			} else {
				v.filter.CharacterID = ""
			}
			return
		}
	}
	v.filter.CharacterID = ""
}

func (v *timelineView) cycleImportanceFilter() {
	if v.filter.Importance == "" {
		v.filter.Importance = story.ImportanceTiers[0]
		return
	}
	for i, tier := range story.ImportanceTiers {
		if tier == v.filter.Importance {
			if i+1 < len(story.ImportanceTiers) {
				v.filter.Importance = story.ImportanceTiers[i+1]
			} else {
				v.filter.Importance = ""
			}
			return
		}
	}
	v.filter.Importance = ""
}

func (v *timelineView) View(width, height int, theme Theme) string {
	palette := themePalette(theme)
	if width <= 0 || height <= 0 {
		return ""
	}

	statusLines := v.renderStatusLines(width, palette.Base.Muted, palette.Status.Warning)
	canvasHeight := height - len(statusLines)
	if canvasHeight < 1 {
		canvasHeight = 1
	}

	view := v.view()
	v.lastPlan = layout.Compute(view, v.charIndex, layout.Options{
		Width:       width,
		Height:      canvasHeight,
		Zoom:        v.zoom,
		GestureZoom: v.gesture,
		PanX:        v.panX,
		SelectedID:  v.selected,
		HoveredID:   v.hovered,
	})

	var body string
	if v.lastPlan.Empty() {
		placeholder := "no events match the current filters"
		if len(v.normalized.Events) == 0 {
			placeholder = "no events yet - press a to add one"
		}
		body = lipgloss.Place(width, canvasHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render(placeholder))
	} else {
		body = strings.Join(render.Terminal{}.Render(v.lastPlan), "\n")
	}

	if len(statusLines) == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{body}, statusLines...)...)
}

func (v *timelineView) renderStatusLines(width int, mutedColor, warnColor string) []string {
	var lines []string

	if v.filter.Active() || v.status != "" {
		parts := make([]string, 0, 3)
		if v.filter.CharacterID != "" {
			name := v.filter.CharacterID
			if c, ok := v.charIndex[v.filter.CharacterID]; ok {
				name = c.Name
			}
			parts = append(parts, "character: "+name)
		}
		if v.filter.Importance != "" {
			parts = append(parts, "importance: "+string(v.filter.Importance))
		}
		if v.status != "" {
			parts = append(parts, v.status)
		}
		line := "filters  " + strings.Join(parts, "  ")
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(truncate(line, width)))
	}

	if n := len(v.normalized.Warnings); n > 0 {
		line := fmt.Sprintf("%d event(s) excluded: unparsable dates", n)
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(warnColor)).Render(truncate(line, width)))
	}

	if v.showStats {
		s := timeline.Stats(v.normalized)
		line := fmt.Sprintf("stats  total %d  major %d  characters %d  span %dd",
			s.TotalEvents, s.MajorEvents, s.ActiveCharacters, s.DaysSpan)
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(truncate(line, width)))
	}

	return lines
}

func clampGesture(g float64) float64 {
	if g < layout.MinZoom {
		return layout.MinZoom
	}
	if g > layout.MaxZoom {
		return layout.MaxZoom
	}
	return g
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
