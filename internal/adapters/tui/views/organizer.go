package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"treewarden/internal/adapters/tui/styles"
	"treewarden/internal/application"
	"treewarden/internal/application/commands"
)

// OrganizerKeyMap defines key bindings for the organizer view
type OrganizerKeyMap struct {
	Confirm  key.Binding
	Create   key.Binding
	Validate key.Binding
	Move     key.Binding
	Copy     key.Binding
	Focus    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var OrganizerKeys = OrganizerKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "set base name"),
	),
	Create: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "create structure"),
	),
	Validate: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "validate"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move unexpected"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy report"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch focus"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// Pane identifies the focused pane
type Pane int

const (
	PaneInput Pane = iota
	PaneActions
)

// Action results
type (
	createDoneMsg struct {
		result *commands.CreateResult
		err    error
	}
	validateDoneMsg struct {
		report *application.ValidationReport
		err    error
	}
	remediateDoneMsg struct {
		summary *application.RemediationSummary
		err     error
	}
)

// OrganizerModel drives a commands.Session: base name input, the three
// actions and the report of the last one.
type OrganizerModel struct {
	Frame

	ctx     context.Context
	session *commands.Session
	input   textinput.Model
	report  viewport.Model
	focus   Pane
	keys    OrganizerKeyMap

	// Actions run off the update loop. While one runs the session is not
	// touched here; baseName and unexpected mirror its state.
	baseName   string
	unexpected int
	root       string

	// last rendered report, plain text, for the clipboard
	plain string
	copy  func(string) error
}

// NewOrganizerModel creates the organizer for session. The session's
// current base name, if any, prefills the input.
func NewOrganizerModel(ctx context.Context, session *commands.Session) *OrganizerModel {
	input := textinput.New()
	input.Placeholder = "Base directory name, e.g. Game"
	input.CharLimit = 64
	input.SetValue(session.BaseName())
	input.Focus()

	m := &OrganizerModel{
		ctx:      ctx,
		session:  session,
		input:    input,
		report:   viewport.New(80, 12),
		focus:    PaneInput,
		keys:     OrganizerKeys,
		baseName: session.BaseName(),
		root:     session.Schema().Root,
		copy:     clipboard.WriteAll,
	}
	m.syncKeys()
	return m
}

// SetClipboard replaces the clipboard writer
func (m *OrganizerModel) SetClipboard(fn func(string) error) {
	m.copy = fn
}

// Focus returns the focused pane
func (m *OrganizerModel) Focus() Pane {
	return m.focus
}

// Report returns the plain text shown in the report pane
func (m *OrganizerModel) Report() string {
	return m.plain
}

// Init initializes the organizer view
func (m *OrganizerModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the view dimensions and the report viewport
func (m *OrganizerModel) SetSize(width, height int) {
	m.Frame.SetSize(width, height)
	m.report.Width = max(width-8, 20)
	m.report.Height = max(height-16, 5)
}

// Update handles messages for the organizer view
func (m *OrganizerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case createDoneMsg:
		m.Finish()
		if msg.err != nil {
			m.fail("create", msg.err)
			break
		}
		m.Notify(msg.result.Message)
		lines := make([]string, 0, len(msg.result.Created))
		for _, p := range msg.result.Created {
			lines = append(lines, "+ "+p)
		}
		m.setReport(strings.Join(lines, "\n"), strings.Join(lines, "\n"))

	case validateDoneMsg:
		m.Finish()
		m.unexpected = 0
		if msg.err != nil {
			m.fail("validate", msg.err)
			m.setReport("", "")
			break
		}
		if msg.report.Clean() {
			m.Notify(application.SuccessMessage)
		} else {
			m.Alert(fmt.Sprintf("%d issue(s) found", len(msg.report.Findings)))
		}
		m.unexpected = len(msg.report.Unexpected)
		m.setReport(RenderReport(msg.report), strings.Join(msg.report.Messages, "\n"))

	case remediateDoneMsg:
		m.Finish()
		if msg.summary == nil {
			m.fail("remediate", msg.err)
			break
		}
		m.showSummary(msg.summary, msg.err)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	m.syncKeys()
	return m, nil
}

func (m *OrganizerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	defer m.syncKeys()

	if key.Matches(msg, m.keys.Focus) {
		m.toggleFocus()
		return nil
	}

	if m.focus == PaneInput {
		if key.Matches(msg, m.keys.Confirm) {
			return m.confirmBaseName()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, m.keys.Create):
		return m.start("create", m.runCreate)
	case key.Matches(msg, m.keys.Validate):
		return m.start("validate", m.runValidate)
	case key.Matches(msg, m.keys.Move):
		return m.start("remediate", m.runRemediate)
	case key.Matches(msg, m.keys.Copy):
		m.copyReport()
	default:
		var cmd tea.Cmd
		m.report, cmd = m.report.Update(msg)
		return cmd
	}
	return nil
}

func (m *OrganizerModel) toggleFocus() {
	if m.focus == PaneInput {
		m.focus = PaneActions
		m.input.Blur()
		return
	}
	m.focus = PaneInput
	m.input.Focus()
}

func (m *OrganizerModel) confirmBaseName() tea.Cmd {
	if m.Running() != "" {
		return nil
	}
	name := m.input.Value()
	if err := m.session.SetBaseName(name); err != nil {
		m.Alert(err.Error())
		return nil
	}
	if name != m.baseName {
		m.unexpected = 0
	}
	m.baseName = name

	m.Notify(fmt.Sprintf("Base directory set to %s", name))
	m.focus = PaneActions
	m.input.Blur()

	if paths, err := m.session.ExpectedPaths(); err == nil {
		text := "Expected folders:\n" + strings.Join(paths, "\n")
		m.setReport(text, text)
	}
	return nil
}

// start runs action in the background unless another one is running
func (m *OrganizerModel) start(name string, action func() tea.Msg) tea.Cmd {
	if m.baseName == "" || !m.Begin(name) {
		return nil
	}
	return action
}

func (m *OrganizerModel) runCreate() tea.Msg {
	res, err := m.session.RunCreate(m.ctx)
	return createDoneMsg{result: res, err: err}
}

func (m *OrganizerModel) runValidate() tea.Msg {
	report, err := m.session.RunValidate(m.ctx)
	return validateDoneMsg{report: report, err: err}
}

func (m *OrganizerModel) runRemediate() tea.Msg {
	summary, err := m.session.RunRemediate(m.ctx)
	return remediateDoneMsg{summary: summary, err: err}
}

func (m *OrganizerModel) showSummary(summary *application.RemediationSummary, err error) {
	if summary.Report != nil {
		m.unexpected = len(summary.Report.Unexpected)
	}

	var styled, plain []string
	for _, mv := range summary.Moves {
		if mv.OK() {
			line := fmt.Sprintf("moved %s -> %s", mv.Source, mv.Destination)
			styled = append(styled, styles.Success.Render(line))
			plain = append(plain, line)
			continue
		}
		line := fmt.Sprintf("failed %s: %v", mv.Source, mv.Err)
		styled = append(styled, styles.ErrorMsg.Render(line))
		plain = append(plain, line)
	}
	if summary.Report != nil {
		styled = append(styled, "", RenderReport(summary.Report))
		plain = append(plain, "", strings.Join(summary.Report.Messages, "\n"))
	}
	m.setReport(strings.Join(styled, "\n"), strings.Join(plain, "\n"))

	if err != nil {
		m.fail("remediate", err)
		return
	}
	if len(summary.Failed()) > 0 {
		m.Alert(summary.Message())
		return
	}
	m.Notify(summary.Message())
}

func (m *OrganizerModel) fail(action string, err error) {
	log.Error().Err(err).Str("action", action).Msg("action failed")
	m.Alert(fmt.Sprintf("%s failed: %v", action, err))
}

func (m *OrganizerModel) copyReport() {
	if m.plain == "" {
		m.Alert("Nothing to copy")
		return
	}
	if err := m.copy(m.plain); err != nil {
		m.Alert(fmt.Sprintf("copy failed: %v", err))
		return
	}
	m.Notify("Report copied to clipboard")
}

func (m *OrganizerModel) setReport(styled, plain string) {
	m.plain = plain
	m.report.SetContent(styled)
	m.report.GotoTop()
}

// syncKeys enables the actions that can run in the current state
func (m *OrganizerModel) syncKeys() {
	ready := m.baseName != "" && m.Running() == ""

	m.keys.Create.SetEnabled(ready)
	m.keys.Validate.SetEnabled(ready)
	m.keys.Move.SetEnabled(ready && m.unexpected > 0)
	m.keys.Copy.SetEnabled(m.plain != "")
}

// View renders the organizer view
func (m *OrganizerModel) View() string {
	inputPane, actionPane := styles.Pane, styles.Pane
	if m.focus == PaneInput {
		inputPane = styles.PaneFocused
	} else {
		actionPane = styles.PaneFocused
	}

	input := styles.InputLabel.Render("Base directory name") + "\n" + m.input.View()

	bindings := []key.Binding{m.keys.Create, m.keys.Validate}
	// move is only offered when the report lists unexpected folders
	if m.keys.Move.Enabled() {
		bindings = append(bindings, m.keys.Move)
	}
	bindings = append(bindings, m.keys.Copy)

	var actions []string
	for _, b := range bindings {
		actions = append(actions, RenderAction(b))
	}
	if running := m.Running(); running != "" {
		actions = append(actions, styles.MutedText.Render(running+"..."))
	}

	status := fmt.Sprintf("root %s", m.root)
	if m.baseName != "" {
		status += fmt.Sprintf(" • base %s", m.baseName)
	}

	note, noteErr := m.Status()
	return NewViewBuilder().
		Title("Tree Warden").
		Subtitle("Project folder layout organizer").
		Line(inputPane.Render(input)).
		Line(actionPane.Render(strings.Join(actions, "  "))).
		BlankLine().
		Message(note, noteErr).
		Line(styles.Pane.Render(m.report.View())).
		Line(styles.StatusBar.Render(status)).
		Help(m.keys.Confirm, m.keys.Focus, m.keys.Help, m.keys.Quit).
		String()
}
