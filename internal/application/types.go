package application

import "treewarden/internal/domain"

// Re-export domain types for use by adapters
type (
	Schema             = domain.Schema
	Finding            = domain.Finding
	ValidationReport   = domain.ValidationReport
	RemediationSummary = domain.RemediationSummary
	ErrorKind          = domain.ErrorKind
)

const (
	FindingUnexpected = domain.FindingUnexpected
	SuccessMessage    = domain.SuccessMessage
)

// KindOf classifies an error returned by the reconciler
func KindOf(err error) ErrorKind {
	return domain.KindOf(err)
}
