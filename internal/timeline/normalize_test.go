package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kalaith/storyline/internal/story"
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

func TestNormalizeSortsChronologicallyWithDensePositions(t *testing.T) {
	n := Normalize([]story.Event{
		evt("c", "2026-03-03", story.ImportanceMinor),
		evt("a", "2026-03-01", story.ImportanceMajor),
		evt("b", "2026-03-02", story.ImportanceCritical),
	})

	require.Empty(t, n.Warnings)
	require.Len(t, n.Events, 3)
	for i, want := range []string{"a", "b", "c"} {
		require.Equal(t, want, n.Events[i].ID)
		require.Equal(t, i, n.Events[i].Position)
	}
	for i := 1; i < len(n.Events); i++ {
		require.False(t, n.Events[i].Instant.Before(n.Events[i-1].Instant))
	}
}

func TestNormalizeIsStableForEqualInstants(t *testing.T) {
	n := Normalize([]story.Event{
		evt("first", "2026-03-01 12:00", story.ImportanceMinor),
		evt("second", "2026-03-01 12:00", story.ImportanceMinor),
		evt("third", "2026-03-01 12:00", story.ImportanceMinor),
	})

	require.Len(t, n.Events, 3)
	require.Equal(t, "first", n.Events[0].ID)
	require.Equal(t, "second", n.Events[1].ID)
	require.Equal(t, "third", n.Events[2].ID)
}

func TestNormalizeExcludesUnparsableDatesWithWarning(t *testing.T) {
	n := Normalize([]story.Event{
		evt("ok", "2026-03-01", story.ImportanceMajor),
		evt("bad", "sometime in spring", story.ImportanceMajor),
	})

	require.Len(t, n.Events, 1)
	require.Equal(t, "ok", n.Events[0].ID)
	require.Len(t, n.Warnings, 1)
	require.Equal(t, "bad", n.Warnings[0].EventID)
	require.Contains(t, n.Warnings[0].String(), "unparsable")
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := Normalize(nil)
	require.Empty(t, n.Events)
	require.Empty(t, n.Warnings)
}
