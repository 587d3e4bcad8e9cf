package views

// Frame is what every view tracks besides its own content: the terminal
// size, the status line and the action in progress.
type Frame struct {
	Width  int
	Height int

	status    string
	statusErr bool
	running   string
}

// SetSize records the terminal size
func (f *Frame) SetSize(width, height int) {
	f.Width = width
	f.Height = height
}

// Notify shows msg on the status line
func (f *Frame) Notify(msg string) {
	f.status, f.statusErr = msg, false
}

// Alert shows msg on the status line as an error
func (f *Frame) Alert(msg string) {
	f.status, f.statusErr = msg, true
}

// Status returns the status line and whether it reports an error
func (f *Frame) Status() (string, bool) {
	return f.status, f.statusErr
}

// Begin marks action as running and clears the status line. It returns
// false while another action is still running.
func (f *Frame) Begin(action string) bool {
	if f.running != "" {
		return false
	}
	f.running = action
	f.status, f.statusErr = "", false
	return true
}

// Finish marks the running action as done
func (f *Frame) Finish() {
	f.running = ""
}

// Running returns the action in progress, empty when idle
func (f *Frame) Running() string {
	return f.running
}

// View switching messages
type (
	SwitchToHelpMsg      struct{}
	SwitchToOrganizerMsg struct{}
)
