package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// Layout implements ports.Layout on the host filesystem. Logical paths
// such as "Assets/Game" are resolved below the project directory.
type Layout struct {
	projectDir string
	marker     string
	dirPerm    os.FileMode
	filePerm   os.FileMode
}

// Ensure Layout implements ports.Layout
var _ ports.Layout = (*Layout)(nil)

// NewLayout creates a filesystem layout rooted at projectDir. An empty
// marker name selects the default.
func NewLayout(projectDir, marker string) *Layout {
	// Expand ~ to home directory
	if strings.HasPrefix(projectDir, "~") {
		home, _ := os.UserHomeDir()
		projectDir = filepath.Join(home, projectDir[1:])
	}
	if marker == "" {
		marker = domain.DefaultMarkerName
	}
	return &Layout{
		projectDir: projectDir,
		marker:     marker,
		dirPerm:    0755,
		filePerm:   0644,
	}
}

// ProjectDir returns the directory that contains the tree root
func (l *Layout) ProjectDir() string {
	return l.projectDir
}

// MarkerName returns the marker file name
func (l *Layout) MarkerName() string {
	return l.marker
}

// Abs returns the host path for a logical path
func (l *Layout) Abs(p string) string {
	return filepath.Join(l.projectDir, filepath.FromSlash(path.Clean(p)))
}

// Logical converts a host path below the project directory back to a logical path
func (l *Layout) Logical(abs string) (string, error) {
	rel, err := filepath.Rel(l.projectDir, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", domain.NewPathError("resolve", abs, domain.KindInvalidInput, nil)
	}
	return rel, nil
}

// Exists reports whether p is an existing directory
func (l *Layout) Exists(p string) bool {
	info, err := os.Stat(l.Abs(p))
	return err == nil && info.IsDir()
}

// CreateDirectory creates parent/name
func (l *Layout) CreateDirectory(parent, name string) error {
	target := path.Join(parent, name)
	if !domain.ValidSegment(name) {
		return domain.NewPathError("create", target, domain.KindInvalidInput, nil)
	}

	info, err := os.Stat(l.Abs(parent))
	switch {
	case err != nil:
		return classify("create", parent, err)
	case !info.IsDir():
		return domain.NewPathError("create", parent, domain.KindNotFound, errors.New("parent is not a directory"))
	}

	info, err = os.Lstat(l.Abs(target))
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return domain.NewPathError("create", target, domain.KindConflict, errors.New("a file occupies the name"))
	case !errors.Is(err, fs.ErrNotExist):
		return classify("create", target, err)
	}

	if err := os.Mkdir(l.Abs(target), l.dirPerm); err != nil {
		return classify("create", target, err)
	}
	return nil
}

// ListSubdirectories returns the immediate subdirectories of p in lexical
// order. Symlinks to directories are listed like directories.
func (l *Layout) ListSubdirectories(p string) ([]string, error) {
	entries, err := os.ReadDir(l.Abs(p))
	if err != nil {
		return nil, classify("list", p, err)
	}

	var out []string
	for _, entry := range entries {
		child := path.Join(p, entry.Name())
		if entry.IsDir() || (entry.Type()&fs.ModeSymlink != 0 && l.Exists(child)) {
			out = append(out, child)
		}
	}
	return out, nil
}

// WriteMarker creates the zero-byte marker in dir unless it is already there
func (l *Layout) WriteMarker(dir string) error {
	markerPath := path.Join(dir, l.marker)

	info, err := os.Lstat(l.Abs(markerPath))
	switch {
	case err == nil && info.IsDir():
		return domain.NewPathError("marker", markerPath, domain.KindConflict, errors.New("a directory occupies the marker name"))
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return classify("marker", markerPath, err)
	}

	if !l.Exists(dir) {
		return domain.NewPathError("marker", dir, domain.KindNotFound, nil)
	}

	f, err := os.OpenFile(l.Abs(markerPath), os.O_CREATE|os.O_WRONLY|os.O_EXCL, l.filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return classify("marker", markerPath, err)
	}
	if err := f.Close(); err != nil {
		return classify("marker", markerPath, err)
	}
	return nil
}

// MoveDirectory renames src to dst. The rename is atomic on a single
// volume; the collision check runs first so an existing dst is never replaced.
// A symlinked directory is moved as the link, its target stays put.
func (l *Layout) MoveDirectory(src, dst string) error {
	info, err := os.Lstat(l.Abs(src))
	switch {
	case err != nil:
		return classify("move", src, err)
	case info.Mode()&fs.ModeSymlink != 0:
		if !l.Exists(src) {
			return domain.NewPathError("move", src, domain.KindInvalidInput, errors.New("link does not point to a directory"))
		}
	case !info.IsDir():
		return domain.NewPathError("move", src, domain.KindInvalidInput, errors.New("source is not a directory"))
	}

	if _, err := os.Lstat(l.Abs(dst)); err == nil {
		return domain.NewPathError("move", dst, domain.KindConflict, errors.New("destination already exists"))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return classify("move", dst, err)
	}

	if !l.Exists(path.Dir(dst)) {
		return domain.NewPathError("move", path.Dir(dst), domain.KindNotFound, nil)
	}

	if err := os.Rename(l.Abs(src), l.Abs(dst)); err != nil {
		return classify("move", src, err)
	}
	return nil
}

// classify maps a host error to a PathError kind
func classify(op, p string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.NewPathError(op, p, domain.KindNotFound, err)
	case errors.Is(err, fs.ErrExist):
		return domain.NewPathError(op, p, domain.KindConflict, err)
	default:
		return domain.NewPathError(op, p, domain.KindIOFailure, err)
	}
}
