package commands

import (
	"context"
	"errors"
	"testing"

	"treewarden/internal/adapters/memfs"
	"treewarden/internal/application"
	"treewarden/internal/domain"
)

func newSession(t *testing.T, fs *memfs.FS, opts ...SessionOption) *Session {
	t.Helper()

	s, err := NewSession(fs, domain.DefaultSchema(), opts...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSession_RejectsInvalidSchema(t *testing.T) {
	schema := domain.DefaultSchema()
	schema.RootSet = append(schema.RootSet, "Nope")

	if _, err := NewSession(newTree(), schema); !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSession_ActionsRequireBaseName(t *testing.T) {
	fs := newTree()
	s := newSession(t, fs)
	ctx := context.Background()

	if s.Ready() {
		t.Error("session without base name reported ready")
	}
	if _, err := s.RunCreate(ctx); !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("create: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.RunValidate(ctx); !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("validate: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.ExpectedPaths(); !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("paths: expected ErrInvalidInput, got %v", err)
	}
	if err := s.SetBaseName("a/b"); !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("set base: expected ErrInvalidInput, got %v", err)
	}
	if fs.Stats() != (memfs.Stats{}) {
		t.Errorf("expected no filesystem calls, got %+v", fs.Stats())
	}
}

func TestSession_FullCycle(t *testing.T) {
	fs := newTree()
	hook := &countingRefresher{}
	s := newSession(t, fs, WithRefresher(hook))
	ctx := context.Background()

	if err := s.SetBaseName("Game"); err != nil {
		t.Fatalf("SetBaseName: %v", err)
	}
	if _, err := s.RunCreate(ctx); err != nil {
		t.Fatalf("RunCreate: %v", err)
	}

	fs.MkdirAll("Assets/LegacyStuff")

	report, err := s.RunValidate(ctx)
	if err != nil {
		t.Fatalf("RunValidate: %v", err)
	}
	if len(report.Unexpected) != 1 || report.Unexpected[0] != "Assets/LegacyStuff" {
		t.Fatalf("expected LegacyStuff unexpected, got %v", report.Unexpected)
	}

	summary, err := s.RunRemediate(ctx)
	if err != nil {
		t.Fatalf("RunRemediate: %v", err)
	}
	if len(summary.Moved()) != 1 {
		t.Errorf("expected one move, got %+v", summary.Moves)
	}
	if s.LastReport() != summary.Report {
		t.Error("remediation report should replace the last report")
	}
	if len(s.LastReport().Unexpected) != 0 {
		t.Errorf("expected no unexpected folders, got %v", s.LastReport().Unexpected)
	}
	if hook.calls != 2 {
		t.Errorf("expected 2 refreshes (create, remediate), got %d", hook.calls)
	}

	// a second remediation has nothing left to do
	again, err := s.RunRemediate(ctx)
	if err != nil {
		t.Fatalf("second RunRemediate: %v", err)
	}
	if !again.NothingToDo {
		t.Error("expected nothing to do")
	}
}

func TestSession_RemediateWithoutValidate(t *testing.T) {
	fs := newTree()
	fs.MkdirAll("Assets/Stray")
	s := newSession(t, fs)
	if err := s.SetBaseName("Game"); err != nil {
		t.Fatal(err)
	}

	summary, err := s.RunRemediate(context.Background())
	if err != nil {
		t.Fatalf("RunRemediate: %v", err)
	}
	if !summary.NothingToDo {
		t.Error("expected nothing to do without a prior validation")
	}
	if fs.Stats().Moves != 0 {
		t.Error("expected no moves")
	}
}

func TestSession_BaseNameChangeDropsReport(t *testing.T) {
	fs := provisioned(t, "Game")
	fs.MkdirAll("Assets/Stray")
	s := newSession(t, fs)
	ctx := context.Background()

	if err := s.SetBaseName("Game"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunValidate(ctx); err != nil {
		t.Fatal(err)
	}
	if s.LastReport() == nil {
		t.Fatal("expected a report")
	}

	if err := s.SetBaseName("Game"); err != nil {
		t.Fatal(err)
	}
	if s.LastReport() == nil {
		t.Error("same base name should keep the report")
	}

	if err := s.SetBaseName("Other"); err != nil {
		t.Fatal(err)
	}
	if s.LastReport() != nil {
		t.Error("new base name should drop the report")
	}
}

func TestSession_FailedValidateDropsReport(t *testing.T) {
	fs := provisioned(t, "Game")
	s := newSession(t, fs)
	ctx := context.Background()
	if err := s.SetBaseName("Game"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunValidate(ctx); err != nil {
		t.Fatal(err)
	}

	fs.FailOn(memfs.OpList, "Assets", errors.New("io error"))
	if _, err := s.RunValidate(ctx); err == nil {
		t.Fatal("expected error")
	}
	if s.LastReport() != nil {
		t.Error("failed validation must not leave a report behind")
	}
}
