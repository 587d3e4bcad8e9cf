package ports

import (
	"context"

	"treewarden/internal/domain"
)

// Refresher is the hook invoked after operations that mutate the tree, so
// an external index can pick up created and moved directories.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a plain function to Refresher
type RefreshFunc func(ctx context.Context) error

// Refresh calls f
func (f RefreshFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// MoveRecorder is a Refresher that can apply completed moves directly
// instead of rescanning the tree.
type MoveRecorder interface {
	RecordMoves(ctx context.Context, moves []domain.MoveOutcome) error
}

// DirectoryIndex provides cached access to the directories of the tree
type DirectoryIndex interface {
	Refresher
	MoveRecorder

	// Lifecycle
	Close() error

	// Queries
	Nodes() ([]domain.IndexNode, error)
	GetNode(path string) (*domain.IndexNode, error)
	LastSync() (int64, error)

	// Batch updates
	BeginTx(ctx context.Context) (IndexTx, error)
}

// IndexTx represents a transaction for atomic index updates
type IndexTx interface {
	UpsertNode(node *domain.IndexNode) error
	DeleteNode(path string) error
	RenameNode(oldPath, newPath string) error

	Commit() error
	Rollback() error
}
