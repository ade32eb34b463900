package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/timeline"
)

func evt(id, date string, importance story.Importance, chars ...string) story.Event {
	return story.Event{
		ID:                 id,
		Title:              "Event " + id,
		Date:               date,
		CharactersInvolved: chars,
		Importance:         importance,
	}
}

func view(events ...story.Event) []timeline.Event {
	return timeline.Normalize(events).Events
}

func TestComputeEmptyViewYieldsEmptyPlan(t *testing.T) {
	plan := Compute(nil, nil, Options{Width: 80, Height: 20})

	require.True(t, plan.Empty())
	require.Empty(t, plan.Markers)
	require.Empty(t, plan.Connectors)
	require.Empty(t, plan.Ticks)
	require.Len(t, plan.Bands, 4, "importance bands are data-independent")
}

func TestComputeBandsFixedOrder(t *testing.T) {
	plan := Compute(nil, nil, Options{Width: 80, Height: 20})

	require.Equal(t, story.ImportanceCritical, plan.Bands[0].Tier)
	require.Equal(t, story.ImportanceMajor, plan.Bands[1].Tier)
	require.Equal(t, story.ImportanceModerate, plan.Bands[2].Tier)
	require.Equal(t, story.ImportanceMinor, plan.Bands[3].Tier)
	for i := 1; i < len(plan.Bands); i++ {
		require.Greater(t, plan.Bands[i].Y, plan.Bands[i-1].Y)
	}
}

func TestComputePlacesMarkersByTimeAndTier(t *testing.T) {
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceCritical),
		evt("b", "2026-03-11", story.ImportanceMinor),
	), nil, Options{Width: 80, Height: 20})

	require.Len(t, plan.Markers, 2)
	a, b := plan.Markers[0], plan.Markers[1]
	require.Equal(t, MarginLeft, a.X, "earliest event sits at the left margin")
	require.Equal(t, plan.Width-MarginRight, b.X, "latest event sits at the right margin")
	require.Less(t, a.Y, b.Y, "critical band is above minor band")

	criticalRadius, criticalColor := TierStyle(story.ImportanceCritical)
	require.Equal(t, criticalRadius, a.Radius)
	require.Equal(t, criticalColor, a.Color)
	minorRadius, _ := TierStyle(story.ImportanceMinor)
	require.Greater(t, criticalRadius, minorRadius)
}

func TestComputeSingleInstantCentersMarkers(t *testing.T) {
	plan := Compute(view(
		evt("a", "2026-03-01 12:00", story.ImportanceMajor),
		evt("b", "2026-03-01 12:00", story.ImportanceMajor),
	), nil, Options{Width: 80, Height: 20})

	require.Len(t, plan.Markers, 2)
	require.Equal(t, plan.Markers[0].X, plan.Markers[1].X)
	mid := MarginLeft + (plan.Width-MarginRight-MarginLeft)/2
	require.Equal(t, mid, plan.Markers[0].X)
}

func TestComputeZoomScalesWidth(t *testing.T) {
	base := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil,
		Options{Width: 100, Height: 20})
	wide := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil,
		Options{Width: 100, Height: 20, Zoom: 2})
	narrow := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil,
		Options{Width: 100, Height: 20, Zoom: 0.5})

	require.Equal(t, 100, base.Width, "zero zoom defaults to 1x")
	require.Equal(t, 200, wide.Width)
	require.Equal(t, 50, narrow.Width)
}

func TestComputeGestureZoomComposes(t *testing.T) {
	plan := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil,
		Options{Width: 100, Height: 20, Zoom: 2, GestureZoom: 1.5})
	require.Equal(t, 300, plan.Width)
}

func TestClampZoomBounds(t *testing.T) {
	require.Equal(t, MinZoom, ClampZoom(0.1))
	require.Equal(t, MaxZoom, ClampZoom(10))
	require.Equal(t, 1.7, ClampZoom(1.7), "zoom is continuous inside its range")
}

func TestComputeSelectionAndHover(t *testing.T) {
	v := view(
		evt("a", "2026-03-01", story.ImportanceMajor),
		evt("b", "2026-03-02", story.ImportanceMajor),
	)
	plan := Compute(v, nil, Options{Width: 80, Height: 20, SelectedID: "a", HoveredID: "b"})

	baseRadius, _ := TierStyle(story.ImportanceMajor)
	require.True(t, plan.Markers[0].Selected)
	require.False(t, plan.Markers[0].Hovered)
	require.Equal(t, baseRadius, plan.Markers[0].Radius)

	require.True(t, plan.Markers[1].Hovered)
	require.Equal(t, baseRadius+HoverRadiusBoost, plan.Markers[1].Radius,
		"hover enlarges the marker")
}

func TestComputeConnectorsUseCharacterHue(t *testing.T) {
	chars := story.CharacterIndex([]story.Character{{ID: "hero", Name: "Hero", Level: 3}})
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceMajor, "hero"),
		evt("b", "2026-03-02", story.ImportanceMajor, "hero"),
	), chars, Options{Width: 80, Height: 20})

	require.Len(t, plan.Connectors, 1)
	line := plan.Connectors[0]
	require.Equal(t, "hero", line.CharacterID)
	require.True(t, line.Dashed)
	require.Equal(t, ConnectorColor(story.Character{Level: 3}), line.Color)
	require.Equal(t, plan.Markers[0].X, line.X1)
	require.Equal(t, plan.Markers[1].X, line.X2)
}

func TestComputeConnectorFallbackColorForUnknownCharacter(t *testing.T) {
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceMajor, "ghost"),
		evt("b", "2026-03-02", story.ImportanceMajor, "ghost"),
	), nil, Options{Width: 80, Height: 20})

	require.Len(t, plan.Connectors, 1)
	require.Equal(t, "#888888", plan.Connectors[0].Color)
}

func TestComputePanShiftsMarkersAndTicks(t *testing.T) {
	opts := Options{Width: 80, Height: 20}
	still := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil, opts)
	opts.PanX = -5
	panned := Compute(view(evt("a", "2026-03-01", story.ImportanceMajor)), nil, opts)

	require.Equal(t, still.Markers[0].X-5, panned.Markers[0].X)
	require.Equal(t, still.Ticks[0].X-5, panned.Ticks[0].X)
}

func TestComputeTicksSpanTheDomain(t *testing.T) {
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceMajor),
		evt("b", "2026-03-31", story.ImportanceMajor),
	), nil, Options{Width: 80, Height: 20})

	require.Len(t, plan.Ticks, 3)
	require.Equal(t, "2026-03-01", plan.Ticks[0].Label)
	require.Equal(t, "2026-03-16", plan.Ticks[1].Label)
	require.Equal(t, "2026-03-31", plan.Ticks[2].Label)
}

func TestComputeMarkersCarryTooltipData(t *testing.T) {
	characters := story.CharacterIndex([]story.Character{
		{ID: "hero", Name: "Hero", Level: 5},
		{ID: "rival", Name: "Rival", Level: 4},
		{ID: "sage", Name: "Sage", Level: 9},
		{ID: "extra", Name: "Extra", Level: 2},
	})
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceCritical, "hero", "rival", "sage", "extra"),
	), characters, Options{Width: 80, Height: 20})

	m := plan.Markers[0]
	require.Equal(t, "2026-03-01", m.Date)
	require.Equal(t, []string{"Hero", "Rival", "Sage", "…"}, m.Characters,
		"a fourth name collapses into the overflow mark")
}

func TestComputeTooltipNamesFallBackToIDs(t *testing.T) {
	plan := Compute(view(
		evt("a", "2026-03-01", story.ImportanceMinor, "ghost"),
	), nil, Options{Width: 80, Height: 20})

	require.Equal(t, []string{"ghost"}, plan.Markers[0].Characters)
}
