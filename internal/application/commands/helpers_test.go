package commands

import (
	"context"
	"strings"
	"testing"

	"treewarden/internal/adapters/memfs"
	"treewarden/internal/domain"
)

// newTree returns a simulated filesystem holding only the tree root
func newTree() *memfs.FS {
	return memfs.New(domain.DefaultMarkerName, domain.DefaultRoot)
}

// provisioned returns a simulated filesystem with the full layout for base
func provisioned(t *testing.T, base string) *memfs.FS {
	t.Helper()

	fs := newTree()
	if _, err := NewCreateCommand(fs, domain.DefaultSchema(), nil, base).Execute(context.Background()); err != nil {
		t.Fatalf("setup create failed: %v", err)
	}
	fs.ResetStats()
	return fs
}

// countingRefresher records how often the index hook ran
type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls++
	return r.err
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// recordingRefresher is an index hook that also takes moves directly
type recordingRefresher struct {
	countingRefresher
	recorded  [][]domain.MoveOutcome
	recordErr error
}

func (r *recordingRefresher) RecordMoves(ctx context.Context, moves []domain.MoveOutcome) error {
	r.recorded = append(r.recorded, moves)
	return r.recordErr
}
