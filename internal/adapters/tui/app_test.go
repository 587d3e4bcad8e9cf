package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"treewarden/internal/adapters/memfs"
	"treewarden/internal/adapters/tui/views"
	"treewarden/internal/application/commands"
	"treewarden/internal/domain"
)

func newTestApp(t *testing.T) (*App, *memfs.FS) {
	t.Helper()

	fs := memfs.New("", domain.DefaultRoot)
	session, err := commands.NewSession(fs, domain.DefaultSchema())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return NewApp(context.Background(), session), fs
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// press sends an action key and feeds the action's result back
func press(t *testing.T, a *App, k string) {
	t.Helper()

	cmd := send(a, runes(k))
	if cmd == nil {
		t.Fatalf("key %q did not start an action", k)
	}
	send(a, cmd())
}

func setBaseName(t *testing.T, a *App, name string) {
	t.Helper()

	send(a, runes(name))
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.Organizer().Focus() != views.PaneActions {
		note, _ := a.Organizer().Status()
		t.Fatalf("expected focus on actions after confirming %q: %s", name, note)
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_ActionsDisabledWithoutBaseName(t *testing.T) {
	a, fs := newTestApp(t)

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	if cmd := send(a, runes("c")); cmd != nil {
		t.Error("create must not start without a base name")
	}
	if cmd := send(a, runes("v")); cmd != nil {
		t.Error("validate must not start without a base name")
	}
	if fs.Stats() != (memfs.Stats{}) {
		t.Errorf("expected no filesystem calls, got %+v", fs.Stats())
	}
}

func TestApp_InvalidBaseNameKeepsFocus(t *testing.T) {
	a, _ := newTestApp(t)

	send(a, runes("a/b"))
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	o := a.Organizer()
	if o.Focus() != views.PaneInput {
		t.Error("focus should stay on the input")
	}
	note, isErr := o.Status()
	if !isErr || !strings.Contains(note, "path separators") {
		t.Errorf("expected validation error message, got %q", note)
	}
}

func TestApp_CreateValidateMove(t *testing.T) {
	a, fs := newTestApp(t)
	setBaseName(t, a, "Game")

	if !strings.Contains(a.Organizer().Report(), "Assets/Game/Art/UI") {
		t.Error("expected the expected folders preview after confirming the base name")
	}

	press(t, a, "c")
	if note, _ := a.Organizer().Status(); !strings.Contains(note, "35 folder(s) created") {
		t.Errorf("unexpected create message: %q", note)
	}
	if !fs.Exists("Assets/Game/Scripts/Core") {
		t.Error("structure was not created")
	}

	// move is not offered before a validation lists unexpected folders
	if strings.Contains(a.View(), "move unexpected") {
		t.Error("move action should be hidden")
	}
	if cmd := send(a, runes("m")); cmd != nil {
		t.Error("move must not start without unexpected folders")
	}

	fs.MkdirAll("Assets/LegacyStuff")
	press(t, a, "v")
	if !strings.Contains(a.Organizer().Report(), "Unexpected top-level folder: Assets/LegacyStuff") {
		t.Errorf("report missing unexpected folder:\n%s", a.Organizer().Report())
	}
	if !strings.Contains(a.View(), "move unexpected") {
		t.Error("move action should be offered")
	}

	press(t, a, "m")
	if !fs.Exists("Assets/Plugins/ThirdParty/LegacyStuff") {
		t.Error("folder was not moved to quarantine")
	}
	report := a.Organizer().Report()
	if !strings.Contains(report, "moved Assets/LegacyStuff -> Assets/Plugins/ThirdParty/LegacyStuff") {
		t.Errorf("report missing move outcome:\n%s", report)
	}
	if !strings.Contains(report, domain.SuccessMessage) {
		t.Errorf("report missing refreshed validation:\n%s", report)
	}
}

func TestApp_CopyReport(t *testing.T) {
	a, _ := newTestApp(t)
	var copied string
	a.Organizer().SetClipboard(func(s string) error {
		copied = s
		return nil
	})

	setBaseName(t, a, "Game")
	press(t, a, "v")
	send(a, runes("y"))

	if copied == "" || copied != a.Organizer().Report() {
		t.Errorf("clipboard = %q, want the report %q", copied, a.Organizer().Report())
	}
	if !strings.Contains(copied, "Missing base folder: Assets/Game") {
		t.Errorf("expected plain report text, got %q", copied)
	}
}

func TestApp_Quit(t *testing.T) {
	a, _ := newTestApp(t)

	// q is text while typing the base name
	if isQuit(send(a, runes("q"))) {
		t.Error("q in the input must not quit")
	}
	if !isQuit(send(a, tea.KeyMsg{Type: tea.KeyCtrlC})) {
		t.Error("ctrl+c should quit from the input")
	}

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	if !isQuit(send(a, runes("q"))) {
		t.Error("q should quit from the actions pane")
	}
}

func TestApp_Help(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, tea.KeyMsg{Type: tea.KeyTab})

	cmd := send(a, runes("?"))
	if cmd == nil {
		t.Fatal("expected a view switch")
	}
	send(a, cmd())
	if a.State() != ViewHelp {
		t.Fatal("expected help view")
	}
	if !strings.Contains(a.View(), "Assets/Plugins/ThirdParty") {
		t.Error("help should name the quarantine folder")
	}

	cmd = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a view switch")
	}
	send(a, cmd())
	if a.State() != ViewOrganizer {
		t.Error("expected organizer view")
	}
}

func TestApp_OneActionAtATime(t *testing.T) {
	a, fs := newTestApp(t)
	setBaseName(t, a, "Game")

	create := send(a, runes("c"))
	if create == nil {
		t.Fatal("create did not start")
	}
	if a.Organizer().Running() != "create" {
		t.Errorf("running = %q, want create", a.Organizer().Running())
	}
	if !strings.Contains(a.View(), "create...") {
		t.Error("view should show the running action")
	}
	if cmd := send(a, runes("v")); cmd != nil {
		t.Error("validate must not start while create runs")
	}

	send(a, create())
	if a.Organizer().Running() != "" {
		t.Errorf("expected idle after create, still running %q", a.Organizer().Running())
	}
	if fs.Stats().Mkdirs != 35 {
		t.Errorf("expected one create run, got %+v", fs.Stats())
	}
	press(t, a, "v")
}
