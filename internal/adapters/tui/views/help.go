package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"treewarden/internal/adapters/tui/styles"
	"treewarden/internal/application"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	Frame
	schema application.Schema
}

// NewHelpModel creates a new help view model describing schema
func NewHelpModel(schema application.Schema) *HelpModel {
	return &HelpModel{schema: schema}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToOrganizerMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Tree Warden Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Project folder layout organizer"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Base name input"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter", "Confirm the base directory name"))
	b.WriteString(helpLine("tab", "Switch to the actions"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("c", "Create missing folders and markers"))
	b.WriteString(helpLine("v", "Validate the tree"))
	b.WriteString(helpLine("m", "Move unexpected folders to "+m.schema.QuarantinePath()))
	b.WriteString(helpLine("y", "Copy the report to the clipboard"))
	b.WriteString(helpLine("j / k / ↑ / ↓", "Scroll the report"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q", "Quit (actions pane)"))
	b.WriteString(helpLine("Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Layout"))
	b.WriteString("\n")
	var rootGroups, nested []string
	for _, g := range m.schema.Groups {
		if m.schema.IsRootAnchored(g.Name) {
			rootGroups = append(rootGroups, g.Name)
		} else {
			nested = append(nested, g.Name)
		}
	}
	b.WriteString(styles.MutedText.Render("  " + m.schema.Root + "/<base>/ : " + strings.Join(nested, ", ")))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + m.schema.Root + "/        : " + strings.Join(rootGroups, ", ")))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 16)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
