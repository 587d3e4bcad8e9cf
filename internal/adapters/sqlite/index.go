package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"treewarden/internal/domain"
	"treewarden/internal/ports"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.DirectoryIndex using SQLite. It records every
// directory below the tree root together with its marker state.
type Index struct {
	db         *sql.DB
	projectDir string
	root       string
	marker     string
	dbPath     string
	lastStats  *domain.SyncStats
}

// Ensure Index implements DirectoryIndex
var _ ports.DirectoryIndex = (*Index)(nil)

// NewIndex creates a new SQLite index for the tree root inside projectDir
func NewIndex(projectDir, root, marker string) *Index {
	if marker == "" {
		marker = domain.DefaultMarkerName
	}
	return &Index{
		projectDir: projectDir,
		root:       root,
		marker:     marker,
	}
}

// Open initializes the database. An empty dbPath selects a per-project
// file under the XDG data directory.
func (idx *Index) Open(dbPath string) error {
	// Expand ~ in path
	if len(idx.projectDir) > 0 && idx.projectDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		idx.projectDir = filepath.Join(home, idx.projectDir[1:])
	}

	if dbPath == "" {
		dbPath = databasePath(idx.projectDir)
	}
	idx.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS nodes (
			path TEXT PRIMARY KEY,
			depth INTEGER NOT NULL,
			has_marker INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_depth ON nodes(depth);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if idx.NeedsFullRebuild() {
		if _, err := db.Exec(`DELETE FROM nodes`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the stored data belongs to another
// schema version or another project
func (idx *Index) NeedsFullRebuild() bool {
	var version, projectHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'project_path_hash'").Scan(&projectHash)

	return version != schemaVersion || projectHash != hashProjectPath(idx.projectDir)
}

// databasePath returns the default path for the SQLite database
func databasePath(projectDir string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "treewarden", hashProjectPath(projectDir)+".db")
}

// hashProjectPath returns a short hash of the project path
func hashProjectPath(projectDir string) string {
	h := sha256.Sum256([]byte(projectDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and project path hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('project_path_hash', ?);
	`, schemaVersion, hashProjectPath(idx.projectDir))
	return err
}

// Refresh brings the index in line with the directories on disk
func (idx *Index) Refresh(ctx context.Context) error {
	stats, err := idx.Sync(ctx)
	if err != nil {
		return err
	}
	log.Debug().
		Int("added", stats.NodesAdded).
		Int("updated", stats.NodesUpdated).
		Int("deleted", stats.NodesDeleted).
		Dur("took", stats.Duration).
		Msg("index refreshed")
	return nil
}

// LastStats returns the statistics of the most recent sync, or nil
func (idx *Index) LastStats() *domain.SyncStats {
	return idx.lastStats
}

// GetNode retrieves a node by path. A missing node yields nil, nil.
func (idx *Index) GetNode(path string) (*domain.IndexNode, error) {
	var node domain.IndexNode

	err := idx.db.QueryRow(`
		SELECT path, depth, has_marker, mtime
		FROM nodes WHERE path = ?
	`, path).Scan(&node.Path, &node.Depth, &node.HasMarker, &node.Mtime)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// Nodes returns every recorded directory ordered by path
func (idx *Index) Nodes() ([]domain.IndexNode, error) {
	rows, err := idx.db.Query(`
		SELECT path, depth, has_marker, mtime
		FROM nodes ORDER BY path
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.IndexNode
	for rows.Next() {
		var n domain.IndexNode
		if err := rows.Scan(&n.Path, &n.Depth, &n.HasMarker, &n.Mtime); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return nodes, rows.Err()
}

// LastSync returns the Unix time of the last completed sync, 0 if none
func (idx *Index) LastSync() (int64, error) {
	var value string
	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx(ctx context.Context) (ports.IndexTx, error) {
	return idx.beginTx(ctx)
}

func (idx *Index) beginTx(ctx context.Context) (*indexTx, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}
