package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"treewarden/internal/adapters/tui/styles"
	"treewarden/internal/application"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders the enabled key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderAction renders an action button, struck through when disabled
func RenderAction(b key.Binding) string {
	help := b.Help()
	if !b.Enabled() {
		return styles.ActionDisabled.Render(help.Key + " " + help.Desc)
	}
	return styles.ActionKey.Render(help.Key) + help.Desc
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderReport renders every line of a validation report, coloured by finding kind
func RenderReport(report *application.ValidationReport) string {
	if report == nil {
		return ""
	}
	if len(report.Findings) == 0 {
		return strings.Join(report.Messages, "\n")
	}

	lines := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		lines = append(lines, RenderFinding(f))
	}
	return strings.Join(lines, "\n")
}

// RenderFinding renders one finding
func RenderFinding(f application.Finding) string {
	style := styles.FindingMissing
	if f.Kind == application.FindingUnexpected {
		style = styles.FindingUnexpected
	}
	msg := f.Message()
	prefix := strings.TrimSuffix(msg, f.Path)
	return style.Render(prefix) + styles.ReportPath.Render(f.Path)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
