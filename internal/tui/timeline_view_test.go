package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/timeline/layout"
)

func storyFixture() ([]story.Event, []story.Character) {
	events := []story.Event{
		{ID: "e1", Title: "Ambush", Date: "2026-03-01", Importance: story.ImportanceCritical, CharactersInvolved: []string{"hero"}},
		{ID: "e2", Title: "Retreat", Date: "2026-03-03", Importance: story.ImportanceMinor, CharactersInvolved: []string{"hero", "rival"}},
		{ID: "e3", Title: "Duel", Date: "2026-03-05", Importance: story.ImportanceCritical, CharactersInvolved: []string{"rival"}},
	}
	characters := []story.Character{
		{ID: "hero", Name: "Hero", Level: 5},
		{ID: "rival", Name: "Rival", Level: 4},
	}
	return events, characters
}

func fixtureView() *timelineView {
	v := newTimelineView(1.0, 3*time.Second)
	events, characters := storyFixture()
	v.SetStory(events, characters)
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestTimelineCharacterFilterCyclesThroughRoster(t *testing.T) {
	v := fixtureView()

	require.Empty(t, v.filter.CharacterID)
	v.Update(key("c"))
	require.Equal(t, "hero", v.filter.CharacterID)
	v.Update(key("c"))
	require.Equal(t, "rival", v.filter.CharacterID)
	v.Update(key("c"))
	require.Empty(t, v.filter.CharacterID, "cycle wraps back to unset")
}

func TestTimelineImportanceFilterCyclesThroughTiers(t *testing.T) {
	v := fixtureView()

	v.Update(key("i"))
	require.Equal(t, story.ImportanceCritical, v.filter.Importance)
	for range story.ImportanceTiers[1:] {
		v.Update(key("i"))
	}
	v.Update(key("i"))
	require.Empty(t, v.filter.Importance)
}

func TestTimelineFilterDropsStaleSelection(t *testing.T) {
	v := fixtureView()
	v.Select("e2")

	v.Update(key("i")) // critical only; e2 is minor
	require.Empty(t, v.selected)

	v.Select("e1")
	v.Update(key("x"))
	require.Equal(t, "e1", v.selected, "clearing filters keeps a still-valid selection")
}

func TestTimelineReloadDropsVanishedSelection(t *testing.T) {
	v := fixtureView()
	v.Select("e2")

	events, characters := storyFixture()
	v.SetStory(events[:1], characters)
	require.Empty(t, v.selected)
}

func TestTimelineZoomIsClamped(t *testing.T) {
	v := fixtureView()

	for i := 0; i < 20; i++ {
		v.Update(key("+"))
	}
	require.Equal(t, layout.MaxZoom, v.zoom)

	for i := 0; i < 40; i++ {
		v.Update(key("-"))
	}
	require.Equal(t, layout.MinZoom, v.zoom)

	v.Update(key("0"))
	require.Equal(t, 1.0, v.zoom)
	require.Equal(t, 1.0, v.gesture)
}

func TestTimelineWheelZoomComposesAndClamps(t *testing.T) {
	v := fixtureView()

	for i := 0; i < 50; i++ {
		v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	}
	require.Equal(t, layout.MaxZoom, v.gesture)
}

func TestTimelineSelectionWalksChronologicalOrder(t *testing.T) {
	v := fixtureView()

	v.Update(key("j"))
	require.Equal(t, "e1", v.selected)
	v.Update(key("j"))
	require.Equal(t, "e2", v.selected)
	v.Update(key("k"))
	require.Equal(t, "e1", v.selected)
	v.Update(key("k"))
	require.Equal(t, "e1", v.selected, "selection stops at the edges")
}

func TestTimelineEnterOpensEditorForSelection(t *testing.T) {
	v := fixtureView()
	v.Select("e2")

	cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(openEditorMsg)
	require.True(t, ok)
	require.Equal(t, "e2", msg.event.ID)
}

func TestTimelineTooltipIgnoresStaleTimer(t *testing.T) {
	v := fixtureView()

	cmd := v.setHover("e1")
	require.NotNil(t, cmd)
	firstSeq := v.hoverSeq

	require.NotNil(t, v.setHover("e2"))
	require.Equal(t, "e2", v.hovered)

	v.Update(tooltipExpiredMsg{seq: firstSeq})
	require.Equal(t, "e2", v.hovered, "an expired timer for an older hover is ignored")

	v.Update(tooltipExpiredMsg{seq: v.hoverSeq})
	require.Empty(t, v.hovered)
}

func TestTimelineViewRendersPlaceholderWhenFilteredOut(t *testing.T) {
	v := fixtureView()
	v.filter.CharacterID = "nobody"

	out := v.View(80, 20, ThemeDark)
	require.Contains(t, out, "no events match the current filters")
}

func TestTimelineViewRendersCanvasOtherwise(t *testing.T) {
	v := fixtureView()
	out := v.View(80, 20, ThemeDark)
	require.NotContains(t, out, "no events")
	require.NotEmpty(t, v.lastPlan.Markers)
}

func TestTimelineSummaryLine(t *testing.T) {
	v := fixtureView()
	require.Contains(t, v.SummaryLine(), "3 events")

	empty := newTimelineView(1.0, time.Second)
	require.Equal(t, "no events", empty.SummaryLine())
}

func TestTimelineMouseOutClearsHoverImmediately(t *testing.T) {
	v := fixtureView()
	v.View(80, 20, ThemeDark)
	m := v.lastPlan.Markers[0]

	v.Update(tea.MouseMsg{X: m.X, Y: m.Y + headerLines, Action: tea.MouseActionMotion})
	require.Equal(t, m.EventID, v.hovered)
	seq := v.hoverSeq

	v.Update(tea.MouseMsg{X: m.X + 10, Y: m.Y + headerLines + 1, Action: tea.MouseActionMotion})
	require.Empty(t, v.hovered, "leaving the marker restores the view without waiting for the timer")
	require.Greater(t, v.hoverSeq, seq, "the pending timer expires into a stale sequence")
}

func TestTimelineMouseDragPans(t *testing.T) {
	v := fixtureView()
	v.View(80, 20, ThemeDark)

	// Row 3 sits between the critical and major bands, so the press lands on
	// empty canvas and starts a drag.
	v.Update(tea.MouseMsg{X: 10, Y: 3 + headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, v.dragging)

	v.Update(tea.MouseMsg{X: 16, Y: 3 + headerLines, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.Equal(t, 6, v.panX)
	v.Update(tea.MouseMsg{X: 12, Y: 3 + headerLines, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.Equal(t, 2, v.panX, "dragging back pans the other way")

	v.Update(tea.MouseMsg{X: 12, Y: 3 + headerLines, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	require.False(t, v.dragging)
	v.Update(tea.MouseMsg{X: 40, Y: 3 + headerLines, Action: tea.MouseActionMotion})
	require.Equal(t, 2, v.panX, "motion after release no longer pans")
}
