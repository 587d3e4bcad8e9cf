package commands

import (
	"context"
	"fmt"

	"treewarden/internal/application"
	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// ValidateResult contains the result of a validation pass
type ValidateResult struct {
	Report  *domain.ValidationReport
	Message string
}

// ValidateCommand compares the expected layout with the tree
type ValidateCommand struct {
	layout   ports.Layout
	schema   domain.Schema
	BaseName string
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(layout ports.Layout, schema domain.Schema, baseName string) *ValidateCommand {
	return &ValidateCommand{
		layout:   layout,
		schema:   schema,
		BaseName: baseName,
	}
}

// Validate checks if the validate operation is valid
func (c *ValidateCommand) Validate() error {
	return application.ValidateBaseName(c.BaseName)
}

// Execute runs the validation. Missing directories are reported as
// findings; only an unreadable root is an error.
func (c *ValidateCommand) Execute(ctx context.Context) (*ValidateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := c.schema.Resolve(c.BaseName)
	report := &domain.ValidationReport{}

	if !c.layout.Exists(res.Base) {
		report.Add(domain.FindingMissingBase, res.Base)
	}

	// A missing anchor hides its own children only
	for _, a := range res.Anchors {
		if !c.layout.Exists(a.Path) {
			report.Add(domain.FindingMissingFolder, a.Path)
			continue
		}
		for _, child := range a.Children {
			if !c.layout.Exists(child) {
				report.Add(domain.FindingMissingSubfolder, child)
			}
		}
	}

	entries, err := c.layout.ListSubdirectories(res.Root)
	if err != nil {
		return nil, &application.StepError{Step: "list root", Path: res.Root, Err: err}
	}

	allowed := make(map[string]bool)
	for _, p := range res.AllowedRootEntries() {
		allowed[p] = true
	}
	for _, e := range entries {
		if !allowed[e] {
			report.Add(domain.FindingUnexpected, e)
		}
	}

	report.Finish()

	return &ValidateResult{
		Report:  report,
		Message: validateMessage(report),
	}, nil
}

func validateMessage(r *domain.ValidationReport) string {
	if r.Clean() {
		return domain.SuccessMessage
	}
	missing := len(r.Missing())
	return fmt.Sprintf("Found %d missing and %d unexpected folder(s)", missing, len(r.Unexpected))
}
