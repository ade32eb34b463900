package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kalaith/storyline/internal/story"
)

func TestConnectorsLinkSharedCharactersForwardOnly(t *testing.T) {
	n := Normalize([]story.Event{
		evt("e1", "2026-03-01", story.ImportanceMajor, "x"),
		evt("e2", "2026-03-02", story.ImportanceMajor, "x"),
		evt("e3", "2026-03-03", story.ImportanceMajor, "y"),
	})

	conns := Connectors(n.Events)
	require.Len(t, conns, 1)
	require.Equal(t, "e1", conns[0].From.ID)
	require.Equal(t, "e2", conns[0].To.ID)
	require.Equal(t, "x", conns[0].CharacterID)
}

func TestConnectorsOnePerSharedCharacter(t *testing.T) {
	n := Normalize([]story.Event{
		evt("e1", "2026-03-01", story.ImportanceMajor, "x", "y"),
		evt("e2", "2026-03-02", story.ImportanceMajor, "y", "x"),
	})

	conns := Connectors(n.Events)
	require.Len(t, conns, 2)
	for _, c := range conns {
		require.Equal(t, "e1", c.From.ID)
		require.Equal(t, "e2", c.To.ID)
	}
}

func TestConnectorsSkipSimultaneousEvents(t *testing.T) {
	n := Normalize([]story.Event{
		evt("e1", "2026-03-01 12:00", story.ImportanceMajor, "x"),
		evt("e2", "2026-03-01 12:00", story.ImportanceMajor, "x"),
	})

	require.Empty(t, Connectors(n.Events), "equal instants do not strictly precede")
}

func TestConnectorsEmptyView(t *testing.T) {
	require.Empty(t, Connectors(nil))
}
