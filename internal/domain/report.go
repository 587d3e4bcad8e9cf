package domain

import "fmt"

// FindingKind is the type of drift found by a validation pass
type FindingKind int

const (
	FindingMissingBase FindingKind = iota
	FindingMissingFolder
	FindingMissingSubfolder
	FindingUnexpected
)

// String returns the string representation of a FindingKind
func (k FindingKind) String() string {
	switch k {
	case FindingMissingBase:
		return "missing-base"
	case FindingMissingFolder:
		return "missing-folder"
	case FindingMissingSubfolder:
		return "missing-subfolder"
	case FindingUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// SuccessMessage is the only message of a report without findings
const SuccessMessage = "All folders are correctly set up!"

// Finding is one drift entry
type Finding struct {
	Kind FindingKind
	Path string
}

// Message renders the finding the way it is shown to users
func (f Finding) Message() string {
	switch f.Kind {
	case FindingMissingBase:
		return "Missing base folder: " + f.Path
	case FindingMissingFolder:
		return "Missing folder: " + f.Path
	case FindingMissingSubfolder:
		return "Missing subfolder: " + f.Path
	case FindingUnexpected:
		return "Unexpected top-level folder: " + f.Path
	default:
		return f.Path
	}
}

// ValidationReport is the result of one validation pass. It is rebuilt
// in full on every pass and never merged with an earlier one.
type ValidationReport struct {
	Findings   []Finding
	Messages   []string
	Unexpected []string
}

// Add appends a finding and its message
func (r *ValidationReport) Add(kind FindingKind, path string) {
	f := Finding{Kind: kind, Path: path}
	r.Findings = append(r.Findings, f)
	r.Messages = append(r.Messages, f.Message())
	if kind == FindingUnexpected {
		r.Unexpected = append(r.Unexpected, path)
	}
}

// Finish adds the success message when nothing was found
func (r *ValidationReport) Finish() {
	if len(r.Findings) == 0 {
		r.Messages = append(r.Messages, SuccessMessage)
	}
}

// Clean reports whether the tree matched the schema
func (r *ValidationReport) Clean() bool {
	return len(r.Findings) == 0
}

// Missing returns the paths of all missing-entry findings, in report order
func (r *ValidationReport) Missing() []string {
	var out []string
	for _, f := range r.Findings {
		if f.Kind != FindingUnexpected {
			out = append(out, f.Path)
		}
	}
	return out
}

// MoveOutcome is the result of relocating one unexpected folder
type MoveOutcome struct {
	Source      string
	Destination string
	Err         error
}

// OK reports whether the move succeeded
func (m MoveOutcome) OK() bool {
	return m.Err == nil
}

// RemediationSummary lists the per-item outcomes of a remediation and the
// validation report taken after it.
type RemediationSummary struct {
	Quarantine  string
	NothingToDo bool
	Moves       []MoveOutcome
	Report      *ValidationReport
}

// Moved returns the successful moves
func (s *RemediationSummary) Moved() []MoveOutcome {
	var out []MoveOutcome
	for _, m := range s.Moves {
		if m.OK() {
			out = append(out, m)
		}
	}
	return out
}

// Failed returns the moves that did not happen
func (s *RemediationSummary) Failed() []MoveOutcome {
	var out []MoveOutcome
	for _, m := range s.Moves {
		if !m.OK() {
			out = append(out, m)
		}
	}
	return out
}

// Message summarizes the remediation in one line
func (s *RemediationSummary) Message() string {
	if s.NothingToDo {
		return "nothing to do: no unexpected folders"
	}
	failed := len(s.Failed())
	if failed == 0 {
		return fmt.Sprintf("Moved %d folder(s) to %s", len(s.Moves), s.Quarantine)
	}
	return fmt.Sprintf("Moved %d of %d folder(s) to %s, %d failed",
		len(s.Moves)-failed, len(s.Moves), s.Quarantine, failed)
}
