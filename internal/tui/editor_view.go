package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kalaith/storyline/internal/story"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldDate
	fieldImportance
	fieldDescription
	fieldCharacters
)

const editorFieldCount = 5

// editorView is the detail editor. Text fields are committed on blur and
// emit one partial update per changed field; importance cycling and
// character toggles commit immediately.
type editorView struct {
	event      story.Event
	characters []story.Character

	focus       editorField
	title       string
	date        string
	description string
	importance  story.Importance
	involved    map[string]bool
	charCursor  int

	dateErr string
	errMsg  string
	status  string
}

func newEditorView() *editorView {
	return &editorView{involved: make(map[string]bool)}
}

// SetEvent loads an event into the edit buffers.
func (v *editorView) SetEvent(e story.Event) {
	v.event = e
	v.title = e.Title
	v.date = e.Date
	v.description = e.Description
	v.importance = e.Importance
	v.involved = make(map[string]bool, len(e.CharactersInvolved))
	for _, id := range e.CharactersInvolved {
		v.involved[id] = true
	}
	v.focus = fieldTitle
	v.charCursor = 0
	v.dateErr = ""
	v.errMsg = ""
	v.status = ""
}

// Refresh replaces the persisted snapshot after a save without touching the
// edit buffers.
func (v *editorView) Refresh(e story.Event) {
	v.event = e
	v.status = "saved"
}

func (v *editorView) SetError(msg string) {
	v.errMsg = msg
}

func (v *editorView) SetCharacters(characters []story.Character) {
	v.characters = characters
	if v.charCursor >= len(characters) {
		v.charCursor = 0
	}
}

func (v *editorView) Init() tea.Cmd {
	return nil
}

func (v *editorView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	return v.handleKey(keyMsg)
}

func (v *editorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		cmd := v.commitFocused()
		v.focus = editorField((int(v.focus) + 1) % editorFieldCount)
		return cmd
	case "shift+tab":
		cmd := v.commitFocused()
		v.focus = editorField((int(v.focus) + editorFieldCount - 1) % editorFieldCount)
		return cmd
	case "esc":
		return tea.Batch(v.commitFocused(), popViewCmd())
	case "ctrl+s":
		// Everything is already persisted field by field; this just
		// acknowledges it.
		cmd := v.commitFocused()
		v.status = "all changes saved"
		return cmd
	case "enter":
		switch v.focus {
		case fieldCharacters:
			return v.toggleCharacter()
		case fieldDescription:
			v.description += "\n"
			return nil
		default:
			cmd := v.commitFocused()
			v.focus = editorField((int(v.focus) + 1) % editorFieldCount)
			return cmd
		}
	case " ":
		if v.focus == fieldCharacters {
			return v.toggleCharacter()
		}
	case "up", "k":
		switch v.focus {
		case fieldImportance:
			return v.cycleImportance(-1)
		case fieldCharacters:
			v.charCursor = clampInt(v.charCursor-1, 0, maxInt(0, len(v.characters)-1))
			return nil
		}
	case "down", "j":
		switch v.focus {
		case fieldImportance:
			return v.cycleImportance(1)
		case fieldCharacters:
			v.charCursor = clampInt(v.charCursor+1, 0, maxInt(0, len(v.characters)-1))
			return nil
		}
	case "backspace", "ctrl+h":
		v.deleteRune()
		return nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		if v.focus == fieldCharacters || v.focus == fieldImportance {
			return nil
		}
		r := string(msg.Runes)
		switch v.focus {
		case fieldTitle:
			v.title += r
		case fieldDate:
			v.date += r
			v.dateErr = ""
		case fieldDescription:
			v.description += r
		}
	}
	return nil
}

func (v *editorView) deleteRune() {
	trim := func(s string) string {
		runes := []rune(s)
		if len(runes) == 0 {
			return s
		}
		return string(runes[:len(runes)-1])
	}
	switch v.focus {
	case fieldTitle:
		v.title = trim(v.title)
	case fieldDate:
		v.date = trim(v.date)
		v.dateErr = ""
	case fieldDescription:
		v.description = trim(v.description)
	}
}

// commitFocused emits a single-field patch for the focused text field if its
// buffer diverged from the persisted event. An unparsable date never leaves
// the editor; it surfaces as a validation error instead.
func (v *editorView) commitFocused() tea.Cmd {
	switch v.focus {
	case fieldTitle:
		if v.title == v.event.Title {
			return nil
		}
		title := v.title
		return applyPatchCmd(v.event.ID, story.EventPatch{Title: &title})
	case fieldDate:
		if v.date == v.event.Date {
			return nil
		}
		if _, ok := story.ParseDate(v.date); !ok {
			v.dateErr = "unrecognized date, use YYYY-MM-DD or RFC 3339"
			return nil
		}
		v.dateErr = ""
		date := v.date
		return applyPatchCmd(v.event.ID, story.EventPatch{Date: &date})
	case fieldDescription:
		if v.description == v.event.Description {
			return nil
		}
		description := v.description
		return applyPatchCmd(v.event.ID, story.EventPatch{Description: &description})
	}
	return nil
}

func (v *editorView) cycleImportance(delta int) tea.Cmd {
	idx := v.importance.Rank()
	idx = (idx + delta + len(story.ImportanceTiers)) % len(story.ImportanceTiers)
	v.importance = story.ImportanceTiers[idx]
	importance := v.importance
	return applyPatchCmd(v.event.ID, story.EventPatch{Importance: &importance})
}

// toggleCharacter flips the cursor row and emits the full membership slice
// in roster order.
func (v *editorView) toggleCharacter() tea.Cmd {
	if v.charCursor < 0 || v.charCursor >= len(v.characters) {
		return nil
	}
	id := v.characters[v.charCursor].ID
	v.involved[id] = !v.involved[id]

	selected := make([]string, 0, len(v.characters))
	for _, c := range v.characters {
		if v.involved[c.ID] {
			selected = append(selected, c.ID)
		}
	}
	return applyPatchCmd(v.event.ID, story.EventPatch{CharactersInvolved: &selected})
}

func (v *editorView) View(width, height int, theme Theme) string {
	palette := themePalette(theme)
	panelWidth := minInt(maxInt(50, width-8), 96)

	cursor := "_"
	field := func(f editorField, value string) string {
		if v.focus == f {
			return value + cursor
		}
		return value
	}

	head := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).
		Render("Edit Event")

	lines := []string{
		head,
		"",
		"Title: " + field(fieldTitle, v.title),
		"Date: " + field(fieldDate, v.date),
	}
	if v.dateErr != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Base.Error)).
			Render("  "+v.dateErr))
	}

	importanceLine := "Importance: " + string(v.importance)
	if v.focus == fieldImportance {
		importanceLine += "  (j/k to change)"
	}
	lines = append(lines, importanceLine, "", "Description:")

	for _, line := range strings.Split(v.description, "\n") {
		suffix := ""
		if v.focus == fieldDescription && line == lastLine(v.description) {
			suffix = cursor
		}
		lines = append(lines, "  "+line+suffix)
	}

	lines = append(lines, "", "Characters:")
	for i, c := range v.characters {
		mark := "[ ]"
		if v.involved[c.ID] {
			mark = "[x]"
		}
		row := "  " + mark + " " + c.Name
		if v.focus == fieldCharacters && i == v.charCursor {
			row = lipgloss.NewStyle().
				Foreground(lipgloss.Color(palette.Chrome.SelectedItem)).
				Render("> " + mark + " " + c.Name)
		}
		lines = append(lines, row)
	}
	if len(v.characters) == 0 {
		lines = append(lines, "  (no characters defined)")
	}

	status := "[Tab: Next] [Esc: Close] [Space: Toggle]"
	if v.errMsg != "" {
		status = "save failed: " + v.errMsg
	} else if v.status != "" {
		status = v.status
	}
	lines = append(lines, "", status)

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Borders.ActivePane)).
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}

func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
