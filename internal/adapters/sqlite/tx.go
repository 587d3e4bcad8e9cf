package sqlite

import (
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertNode inserts or updates a node
func (t *indexTx) UpsertNode(node *domain.IndexNode) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO nodes (path, depth, has_marker, mtime)
		VALUES (?, ?, ?, ?)
	`, node.Path, node.Depth, node.HasMarker, node.Mtime)
	return err
}

// DeleteNode removes a node and everything recorded below it
func (t *indexTx) DeleteNode(path string) error {
	_, err := t.tx.Exec(`DELETE FROM nodes WHERE path = ? OR path LIKE ? ESCAPE '\'`, path, likePrefix(path))
	return err
}

// RenameNode moves a node and its descendants to newPath
func (t *indexTx) RenameNode(oldPath, newPath string) error {
	_, err := t.tx.Exec(`
		UPDATE nodes
		SET path = ? || SUBSTR(path, ?),
		    depth = depth + ?
		WHERE path = ? OR path LIKE ? ESCAPE '\'
	`, newPath, utf8.RuneCountInString(oldPath)+1, depthOf(newPath)-depthOf(oldPath), oldPath, likePrefix(oldPath))
	return err
}

// touchLastSync records now as the time of the last completed sync
func (t *indexTx) touchLastSync(now time.Time) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`, now.Unix())
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}

// likePrefix returns a LIKE pattern matching every path below p
func likePrefix(p string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(p)
	return escaped + "/%"
}

// depthOf returns the number of segments below the tree root
func depthOf(p string) int {
	return strings.Count(p, "/")
}
