package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"treewarden/internal/domain"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // green
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	strayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func printReport(w io.Writer, report *domain.ValidationReport) {
	if len(report.Findings) == 0 {
		for _, msg := range report.Messages {
			fmt.Fprintln(w, successStyle.Render(msg))
		}
		return
	}
	for _, f := range report.Findings {
		style := missingStyle
		if f.Kind == domain.FindingUnexpected {
			style = strayStyle
		}
		fmt.Fprintln(w, style.Render(f.Message()))
	}
}

func printSummary(w io.Writer, summary *domain.RemediationSummary) {
	for _, m := range summary.Moves {
		if m.OK() {
			fmt.Fprintf(w, "%s %s -> %s\n", successStyle.Render("moved"), m.Source, m.Destination)
		} else {
			fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("failed"), m.Source, m.Err)
		}
	}
	fmt.Fprintln(w, summary.Message())
	if summary.Report != nil {
		fmt.Fprintln(w)
		printReport(w, summary.Report)
	}
}
