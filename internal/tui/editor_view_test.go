package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Kalaith/storyline/internal/story"
)

func fixtureEditor() *editorView {
	v := newEditorView()
	_, characters := storyFixture()
	v.SetCharacters(characters)
	v.SetEvent(story.Event{
		ID:                 "e1",
		Title:              "Ambush",
		Description:        "The caravan is attacked.",
		Date:               "2026-03-01",
		Importance:         story.ImportanceCritical,
		CharactersInvolved: []string{"hero"},
	})
	return v
}

func patchFromCmd(t *testing.T, v *editorView, msg tea.KeyMsg) (string, story.EventPatch) {
	t.Helper()
	cmd := v.Update(msg)
	require.NotNil(t, cmd)
	applied, ok := cmd().(applyPatchMsg)
	require.True(t, ok, "expected an applyPatchMsg")
	return applied.id, applied.patch
}

func TestEditorTitleCommitEmitsSingleFieldPatch(t *testing.T) {
	v := fixtureEditor()

	v.Update(key("!"))
	id, patch := patchFromCmd(t, v, key("tab"))

	require.Equal(t, "e1", id)
	require.NotNil(t, patch.Title)
	require.Equal(t, "Ambush!", *patch.Title)
	require.Nil(t, patch.Date)
	require.Nil(t, patch.Description)
	require.Nil(t, patch.Importance)
	require.Nil(t, patch.CharactersInvolved)
}

func TestEditorUnchangedFieldEmitsNothing(t *testing.T) {
	v := fixtureEditor()
	require.Nil(t, v.Update(key("tab")))
}

func TestEditorInvalidDateBlocksPatch(t *testing.T) {
	v := fixtureEditor()
	v.Update(key("tab")) // focus date
	require.Equal(t, fieldDate, v.focus)

	v.Update(key("x"))
	require.Nil(t, v.Update(key("tab")), "an unparsable date must not leave the editor")
	require.NotEmpty(t, v.dateErr)
}

func TestEditorValidDateCommits(t *testing.T) {
	v := fixtureEditor()
	v.Update(key("tab"))
	for i := 0; i < len("2026-03-01"); i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	v.Update(key("2026-04-15"))

	_, patch := patchFromCmd(t, v, key("tab"))
	require.NotNil(t, patch.Date)
	require.Equal(t, "2026-04-15", *patch.Date)
	require.Empty(t, v.dateErr)
}

func TestEditorImportanceCycleCommitsImmediately(t *testing.T) {
	v := fixtureEditor()
	v.Update(key("tab"))
	v.Update(key("tab")) // focus importance

	_, patch := patchFromCmd(t, v, key("j"))
	require.NotNil(t, patch.Importance)
	require.Equal(t, story.ImportanceMajor, *patch.Importance)
	require.Equal(t, story.ImportanceMajor, v.importance)
}

func TestEditorCharacterToggleEmitsRosterOrderedSlice(t *testing.T) {
	v := fixtureEditor()
	for v.focus != fieldCharacters {
		v.Update(key("tab"))
	}

	// Hero is already involved; adding Rival keeps roster order.
	v.Update(key("j"))
	_, patch := patchFromCmd(t, v, key(" "))
	require.NotNil(t, patch.CharactersInvolved)
	require.Equal(t, []string{"hero", "rival"}, *patch.CharactersInvolved)

	// Removing Hero leaves just Rival.
	v.Update(key("k"))
	_, patch = patchFromCmd(t, v, key(" "))
	require.Equal(t, []string{"rival"}, *patch.CharactersInvolved)
}

func TestEditorRefreshUpdatesBaselineForNextCommit(t *testing.T) {
	v := fixtureEditor()

	v.Update(key("!"))
	_, patch := patchFromCmd(t, v, key("tab"))
	require.Equal(t, "Ambush!", *patch.Title)

	updated := v.event
	updated.Title = "Ambush!"
	v.Refresh(updated)

	v.focus = fieldTitle
	require.Nil(t, v.commitFocused(), "a saved buffer does not re-emit")
}

func TestEditorEscCommitsAndCloses(t *testing.T) {
	v := fixtureEditor()
	v.Update(key("!"))

	cmd := v.Update(key("esc"))
	require.NotNil(t, cmd, "esc flushes the pending edit and closes the view")
}
