package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationReport_Messages(t *testing.T) {
	var r ValidationReport
	r.Add(FindingMissingBase, "Assets/Game")
	r.Add(FindingMissingSubfolder, "Assets/Plugins/Custom")
	r.Add(FindingUnexpected, "Assets/LegacyStuff")
	r.Finish()

	want := []string{
		"Missing base folder: Assets/Game",
		"Missing subfolder: Assets/Plugins/Custom",
		"Unexpected top-level folder: Assets/LegacyStuff",
	}
	if len(r.Messages) != len(want) {
		t.Fatalf("expected %d messages, got %v", len(want), r.Messages)
	}
	for i := range want {
		if r.Messages[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, r.Messages[i], want[i])
		}
	}
	if len(r.Unexpected) != 1 || r.Unexpected[0] != "Assets/LegacyStuff" {
		t.Errorf("unexpected = %v", r.Unexpected)
	}
	if got := r.Missing(); len(got) != 2 {
		t.Errorf("expected 2 missing paths, got %v", got)
	}
	if r.Clean() {
		t.Error("report with findings reported clean")
	}
}

func TestValidationReport_Success(t *testing.T) {
	var r ValidationReport
	r.Finish()

	if !r.Clean() {
		t.Error("empty report should be clean")
	}
	if len(r.Messages) != 1 || r.Messages[0] != SuccessMessage {
		t.Errorf("expected only the success message, got %v", r.Messages)
	}
}

func TestRemediationSummary_Message(t *testing.T) {
	s := &RemediationSummary{NothingToDo: true}
	if !strings.Contains(s.Message(), "nothing to do") {
		t.Errorf("got %q", s.Message())
	}

	s = &RemediationSummary{
		Quarantine: "Assets/Plugins/ThirdParty",
		Moves: []MoveOutcome{
			{Source: "Assets/A", Destination: "Assets/Plugins/ThirdParty/A"},
			{Source: "Assets/B", Destination: "Assets/Plugins/ThirdParty/B", Err: ErrConflict},
		},
	}
	if len(s.Moved()) != 1 || len(s.Failed()) != 1 {
		t.Errorf("moved=%d failed=%d", len(s.Moved()), len(s.Failed()))
	}
	if !strings.Contains(s.Message(), "1 of 2") {
		t.Errorf("got %q", s.Message())
	}
}

func TestPathError_Kinds(t *testing.T) {
	err := fmt.Errorf("move: %w", NewPathError("move", "Assets/Plugins/ThirdParty/A", KindConflict, nil))

	if !errors.Is(err, ErrConflict) {
		t.Error("expected errors.Is(ErrConflict)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("conflict must not match ErrNotFound")
	}
	if KindOf(err) != KindConflict {
		t.Errorf("KindOf = %s", KindOf(err))
	}
	if !strings.Contains(err.Error(), "Assets/Plugins/ThirdParty/A") {
		t.Errorf("error should name the path: %v", err)
	}
	if KindOf(errors.New("boom")) != KindIOFailure {
		t.Error("unclassified errors are IO failures")
	}
}
