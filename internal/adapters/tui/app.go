package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"treewarden/internal/adapters/tui/views"
	"treewarden/internal/application/commands"
)

// ViewState represents the current view
type ViewState int

const (
	ViewOrganizer ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	session *commands.Session

	state     ViewState
	organizer *views.OrganizerModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over session
func NewApp(ctx context.Context, session *commands.Session) *App {
	return &App{
		session:   session,
		state:     ViewOrganizer,
		organizer: views.NewOrganizerModel(ctx, session),
		help:      views.NewHelpModel(session.Schema()),
	}
}

// Organizer returns the organizer view
func (a *App) Organizer() *views.OrganizerModel {
	return a.organizer
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.organizer.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.organizer.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToOrganizerMsg:
		a.state = ViewOrganizer
		return a, nil
	}

	// Key presses go to the current view; everything else (action
	// results) belongs to the organizer.
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); isKey && a.state == ViewHelp {
		_, cmd = a.help.Update(msg)
	} else {
		_, cmd = a.organizer.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.organizer.View()
	}
}
