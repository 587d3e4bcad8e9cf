package sqlite

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"treewarden/internal/domain"
)

type nodeState struct {
	hasMarker bool
	mtime     int64
}

// Sync walks the tree root and updates only the directories that changed
// since the last sync. Directories that vanished are deleted.
func (idx *Index) Sync(ctx context.Context) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	existing, err := idx.existingNodes(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := idx.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	seen := make(map[string]bool)
	err = idx.walkDirs(ctx, filepath.Join(idx.projectDir, idx.root), func(node *domain.IndexNode) error {
		seen[node.Path] = true
		stats.DirsScanned++

		old, known := existing[node.Path]
		if known && old == (nodeState{hasMarker: node.HasMarker, mtime: node.Mtime}) {
			return nil
		}
		if err := tx.UpsertNode(node); err != nil {
			return err
		}
		if known {
			stats.NodesUpdated++
		} else {
			stats.NodesAdded++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Delete nodes that no longer exist
	for p := range existing {
		if seen[p] {
			continue
		}
		if err := tx.DeleteNode(p); err != nil {
			return nil, err
		}
		stats.NodesDeleted++
	}

	if err := tx.touchLastSync(time.Now()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	idx.lastStats = stats
	return stats, nil
}

// RecordMoves applies completed moves in one transaction. Recorded
// subtrees are renamed in place; a moved directory the index has not seen
// yet is read from disk. The parents on both sides are re-read as well.
func (idx *Index) RecordMoves(ctx context.Context, moves []domain.MoveOutcome) error {
	type move struct {
		domain.MoveOutcome
		known bool
	}

	var planned []move
	touched := make(map[string]bool)
	for _, m := range moves {
		if !m.OK() {
			continue
		}
		node, err := idx.GetNode(m.Source)
		if err != nil {
			return err
		}
		planned = append(planned, move{MoveOutcome: m, known: node != nil})

		touched[path.Dir(m.Source)] = true
		for dir := path.Dir(m.Destination); dir != "." && dir != "/"; dir = path.Dir(dir) {
			touched[dir] = true
		}
	}
	if len(planned) == 0 {
		return nil
	}

	tx, err := idx.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	parents := make([]string, 0, len(touched))
	for dir := range touched {
		parents = append(parents, dir)
	}
	slices.Sort(parents)
	for _, dir := range parents {
		node, err := idx.readNode(dir)
		if err != nil {
			return err
		}
		if err := tx.UpsertNode(node); err != nil {
			return err
		}
	}

	for _, m := range planned {
		if m.known {
			err = tx.RenameNode(m.Source, m.Destination)
		} else {
			err = idx.walkDirs(ctx, idx.abs(m.Destination), tx.UpsertNode)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Int("moves", len(planned)).Msg("index recorded moves")
	return nil
}

// walkDirs visits every directory below dir, dir included. Hidden
// directories are skipped and symlinks are not followed. A missing dir
// visits nothing; unreadable entries below it are logged and skipped.
func (idx *Index) walkDirs(ctx context.Context, dir string, visit func(node *domain.IndexNode) error) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			log.Debug().Err(err).Str("path", p).Msg("index skipped unreadable entry")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// Skip hidden directories
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		info, err := d.Info()
		if err != nil {
			log.Debug().Err(err).Str("path", p).Msg("index skipped unreadable entry")
			return nil
		}
		return visit(idx.nodeFor(p, info))
	})
}

// readNode stats a logical path on disk
func (idx *Index) readNode(logical string) (*domain.IndexNode, error) {
	info, err := os.Stat(idx.abs(logical))
	if err != nil {
		return nil, err
	}
	return idx.nodeFor(idx.abs(logical), info), nil
}

func (idx *Index) nodeFor(abs string, info fs.FileInfo) *domain.IndexNode {
	rel, _ := filepath.Rel(idx.projectDir, abs)
	logical := filepath.ToSlash(rel)
	return &domain.IndexNode{
		Path:      logical,
		Depth:     depthOf(logical),
		HasMarker: markerExists(abs, idx.marker),
		Mtime:     info.ModTime().Unix(),
	}
}

func (idx *Index) abs(logical string) string {
	return filepath.Join(idx.projectDir, filepath.FromSlash(logical))
}

// existingNodes loads the recorded state of every node
func (idx *Index) existingNodes(ctx context.Context) (map[string]nodeState, error) {
	rows, err := idx.db.QueryContext(ctx, `SELECT path, has_marker, mtime FROM nodes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]nodeState)
	for rows.Next() {
		var p string
		var state nodeState
		if err := rows.Scan(&p, &state.hasMarker, &state.mtime); err != nil {
			return nil, err
		}
		existing[path.Clean(p)] = state
	}
	return existing, rows.Err()
}

// markerExists reports whether dir holds a regular marker file
func markerExists(dir, marker string) bool {
	info, err := os.Lstat(filepath.Join(dir, marker))
	return err == nil && info.Mode().IsRegular()
}
