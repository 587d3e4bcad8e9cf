package commands

import (
	"context"
	"slices"

	"treewarden/internal/application"
	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// Session is the reconciler a frontend drives: set the base directory
// name once, then run create, validate and remediate. It remembers the
// last validation report, which remediation works from.
//
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	layout    ports.Layout
	schema    domain.Schema
	refresher ports.Refresher
	baseName  string
	last      *domain.ValidationReport
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithRefresher installs the hook invoked after mutating operations
func WithRefresher(r ports.Refresher) SessionOption {
	return func(s *Session) {
		s.refresher = r
	}
}

// NewSession creates a Session over layout for a validated copy of schema
func NewSession(layout ports.Layout, schema domain.Schema, opts ...SessionOption) (*Session, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	s := &Session{layout: layout, schema: schema.Clone()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Schema returns a copy of the session's layout catalog
func (s *Session) Schema() domain.Schema {
	return s.schema.Clone()
}

// SetBaseName sets the base directory name. Changing it discards the
// last report, whose unexpected list was computed for the old name.
func (s *Session) SetBaseName(name string) error {
	if err := application.ValidateBaseName(name); err != nil {
		return err
	}
	if name != s.baseName {
		s.last = nil
	}
	s.baseName = name
	return nil
}

// BaseName returns the current base directory name
func (s *Session) BaseName() string {
	return s.baseName
}

// Ready reports whether actions can run
func (s *Session) Ready() bool {
	return application.ValidateBaseName(s.baseName) == nil
}

// ExpectedPaths returns the expected path set for the current base name
func (s *Session) ExpectedPaths() ([]string, error) {
	if err := application.ValidateBaseName(s.baseName); err != nil {
		return nil, err
	}
	return s.schema.Resolve(s.baseName).Paths(), nil
}

// RunCreate provisions the layout
func (s *Session) RunCreate(ctx context.Context) (*CreateResult, error) {
	return NewCreateCommand(s.layout, s.schema, s.refresher, s.baseName).Execute(ctx)
}

// RunValidate runs a validation pass; its report replaces the last one.
// On error no report is kept.
func (s *Session) RunValidate(ctx context.Context) (*domain.ValidationReport, error) {
	res, err := NewValidateCommand(s.layout, s.schema, s.baseName).Execute(ctx)
	if err != nil {
		s.last = nil
		return nil, err
	}
	s.last = res.Report
	return res.Report, nil
}

// RunRemediate moves the unexpected folders listed by the last validation
// pass. Without one, or with an empty list, it reports nothing to do.
func (s *Session) RunRemediate(ctx context.Context) (*domain.RemediationSummary, error) {
	var unexpected []string
	if s.last != nil {
		unexpected = slices.Clone(s.last.Unexpected)
	}

	res, err := NewRemediateCommand(s.layout, s.schema, s.refresher, s.baseName, unexpected).Execute(ctx)
	if res == nil {
		return nil, err
	}
	if !res.Summary.NothingToDo {
		s.last = res.Summary.Report
	}
	return res.Summary, err
}

// LastReport returns the report of the last validation pass, or nil
func (s *Session) LastReport() *domain.ValidationReport {
	return s.last
}
