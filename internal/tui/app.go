// Package tui implements the interactive story timeline terminal UI.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/tui/styles"
)

const defaultTooltipTimeout = 3 * time.Second

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type ViewID string

const (
	ViewTimeline ViewID = "timeline"
	ViewEditor   ViewID = "editor"
)

// Source is the data access surface the TUI needs. The storage package
// provides the production implementation.
type Source interface {
	Events(ctx context.Context) ([]story.Event, error)
	Characters(ctx context.Context) ([]story.Character, error)
	AddEvent(ctx context.Context, e story.Event) (story.Event, error)
	PatchEvent(ctx context.Context, id string, patch story.EventPatch) (story.Event, error)
}

// Callbacks let an embedder observe timeline interactions. All fields are
// optional.
type Callbacks struct {
	// OnEventClick fires when an event is activated on the timeline.
	OnEventClick func(story.Event)
	// OnEventUpdate fires for every partial update the editor emits.
	OnEventUpdate func(id string, patch story.EventPatch)
	// OnAddEvent fires with the pre-filled template when a new event is
	// created.
	OnAddEvent func(template story.Event)
}

type Config struct {
	Source         Source
	Callbacks      Callbacks
	Theme          string
	DefaultZoom    float64
	TooltipTimeout time.Duration
	Logger         zerolog.Logger
}

func (c Config) normalize() (Config, error) {
	if c.Source == nil {
		return Config{}, fmt.Errorf("source is required")
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = string(ThemeDark)
	}
	switch Theme(c.Theme) {
	case ThemeDark, ThemeLight:
	default:
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	if c.DefaultZoom == 0 {
		c.DefaultZoom = 1.0
	}
	if c.TooltipTimeout <= 0 {
		c.TooltipTimeout = defaultTooltipTimeout
	}
	return c, nil
}

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme Theme) string
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

// storyLoadedMsg carries a fresh snapshot of all events and characters.
type storyLoadedMsg struct {
	events     []story.Event
	characters []story.Character
	err        error
}

// openEditorMsg opens the detail editor for an event.
type openEditorMsg struct {
	event story.Event
}

// applyPatchMsg asks the model to persist a partial update.
type applyPatchMsg struct {
	id    string
	patch story.EventPatch
}

// patchAppliedMsg reports the outcome of a persisted update.
type patchAppliedMsg struct {
	event story.Event
	err   error
}

// addEventMsg asks the model to create a new event from the template.
type addEventMsg struct{}

// eventAddedMsg reports the outcome of creating an event.
type eventAddedMsg struct {
	event story.Event
	err   error
}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

func openEditorCmd(e story.Event) tea.Cmd {
	return func() tea.Msg {
		return openEditorMsg{event: e}
	}
}

func applyPatchCmd(id string, patch story.EventPatch) tea.Cmd {
	return func() tea.Msg {
		return applyPatchMsg{id: id, patch: patch}
	}
}

func addEventCmd() tea.Cmd {
	return func() tea.Msg {
		return addEventMsg{}
	}
}

type Model struct {
	source    Source
	callbacks Callbacks
	theme     Theme
	logger    zerolog.Logger

	width    int
	height   int
	showHelp bool
	loadErr  string

	viewStack []ViewID
	views     map[ViewID]viewModel
	timeline  *timelineView
	editor    *editorView
}

func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	m := &Model{
		source:    normalized.Source,
		callbacks: normalized.Callbacks,
		theme:     Theme(normalized.Theme),
		logger:    normalized.Logger,
		viewStack: []ViewID{ViewTimeline},
		views:     make(map[ViewID]viewModel),
	}
	m.timeline = newTimelineView(normalized.DefaultZoom, normalized.TooltipTimeout)
	m.editor = newEditorView()
	m.views[ViewTimeline] = m.timeline
	m.views[ViewEditor] = m.editor
	return m, nil
}

func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadStoryCmd(), m.timeline.Init())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case storyLoadedMsg:
		if typed.err != nil {
			m.loadErr = typed.err.Error()
			m.logger.Error().Err(typed.err).Msg("failed to load story")
			return m, nil
		}
		m.loadErr = ""
		m.timeline.SetStory(typed.events, typed.characters)
		m.editor.SetCharacters(typed.characters)
		return m, nil
	case openEditorMsg:
		if m.callbacks.OnEventClick != nil {
			m.callbacks.OnEventClick(typed.event)
		}
		m.editor.SetEvent(typed.event)
		m.pushView(ViewEditor)
		return m, m.editor.Init()
	case applyPatchMsg:
		if m.callbacks.OnEventUpdate != nil {
			m.callbacks.OnEventUpdate(typed.id, typed.patch)
		}
		return m, m.persistPatchCmd(typed.id, typed.patch)
	case patchAppliedMsg:
		if typed.err != nil {
			m.editor.SetError(typed.err.Error())
			return m, nil
		}
		m.editor.Refresh(typed.event)
		return m, m.loadStoryCmd()
	case addEventMsg:
		return m, m.createEventCmd()
	case eventAddedMsg:
		if typed.err != nil {
			m.timeline.SetStatus("add failed: " + typed.err.Error())
			return m, nil
		}
		m.timeline.Select(typed.event.ID)
		return m, tea.Batch(m.loadStoryCmd(), openEditorCmd(typed.event))
	case pushViewMsg:
		m.pushView(typed.id)
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case popViewMsg:
		m.popView()
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	if active := m.activeView(); active != nil {
		return m, active.Update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	active := m.activeView()
	if active == nil {
		return "no active view"
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := active.View(m.width, contentHeight, m.theme)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// The editor consumes plain runes, so only control chords are global
	// while it is open.
	if m.activeViewID() == ViewEditor {
		if msg.String() == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	}
	return nil, false
}

func (m *Model) loadStoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		events, err := m.source.Events(ctx)
		if err != nil {
			return storyLoadedMsg{err: err}
		}
		characters, err := m.source.Characters(ctx)
		if err != nil {
			return storyLoadedMsg{err: err}
		}
		return storyLoadedMsg{events: events, characters: characters}
	}
}

func (m *Model) persistPatchCmd(id string, patch story.EventPatch) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.source.PatchEvent(context.Background(), id, patch)
		return patchAppliedMsg{event: updated, err: err}
	}
}

func (m *Model) createEventCmd() tea.Cmd {
	template := story.NewEventTemplate(time.Now())
	if m.callbacks.OnAddEvent != nil {
		m.callbacks.OnAddEvent(template)
	}
	return func() tea.Msg {
		added, err := m.source.AddEvent(context.Background(), template)
		return eventAddedMsg{event: added, err: err}
	}
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if len(m.viewStack) == 0 {
		return ViewTimeline
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *Model) pushView(id ViewID) {
	if id == "" {
		return
	}
	if _, ok := m.views[id]; !ok {
		return
	}
	if m.activeViewID() == id {
		return
	}
	m.viewStack = append(m.viewStack, id)
}

func (m *Model) popView() {
	if len(m.viewStack) <= 1 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

func themePalette(theme Theme) styles.Theme {
	if palette, ok := styles.Themes[string(theme)]; ok {
		return palette
	}
	return styles.DarkTheme
}
