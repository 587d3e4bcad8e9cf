// Package memfs is an in-memory implementation of ports.Layout.
//
// It backs the command and TUI tests: it counts mutating calls, lets tests
// inject failures per operation and path, and can place plain files to
// provoke collisions.
package memfs

import (
	"path"
	"slices"
	"strings"

	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// Operation names accepted by FailOn
const (
	OpCreate = "create"
	OpList   = "list"
	OpMarker = "marker"
	OpMove   = "move"
)

// Stats counts the mutating calls that changed the simulated tree
type Stats struct {
	Mkdirs  int
	Markers int
	Moves   int
}

// FS is a simulated filesystem. It is not safe for concurrent use.
type FS struct {
	marker string
	dirs   map[string]bool
	files  map[string]bool
	faults map[string]error
	stats  Stats
}

// Ensure FS implements Layout
var _ ports.Layout = (*FS)(nil)

// New creates a simulated filesystem containing the given directories
// (and their parents). Setup directories are not counted in Stats.
func New(marker string, dirs ...string) *FS {
	if marker == "" {
		marker = domain.DefaultMarkerName
	}
	fs := &FS{
		marker: marker,
		dirs:   make(map[string]bool),
		files:  make(map[string]bool),
		faults: make(map[string]error),
	}
	for _, d := range dirs {
		fs.MkdirAll(d)
	}
	return fs
}

// Exists reports whether p is a directory
func (fs *FS) Exists(p string) bool {
	return fs.dirs[clean(p)]
}

// CreateDirectory creates parent/name
func (fs *FS) CreateDirectory(parent, name string) error {
	parent = clean(parent)
	target := path.Join(parent, name)
	if err := fs.fault(OpCreate, target); err != nil {
		return err
	}
	if !domain.ValidSegment(name) {
		return domain.NewPathError(OpCreate, target, domain.KindInvalidInput, nil)
	}
	if !fs.dirs[parent] {
		return domain.NewPathError(OpCreate, parent, domain.KindNotFound, nil)
	}
	if fs.files[target] {
		return domain.NewPathError(OpCreate, target, domain.KindConflict, nil)
	}
	if fs.dirs[target] {
		return nil
	}
	fs.dirs[target] = true
	fs.stats.Mkdirs++
	return nil
}

// ListSubdirectories returns the immediate subdirectories of p, sorted
func (fs *FS) ListSubdirectories(p string) ([]string, error) {
	p = clean(p)
	if err := fs.fault(OpList, p); err != nil {
		return nil, err
	}
	if !fs.dirs[p] {
		return nil, domain.NewPathError(OpList, p, domain.KindNotFound, nil)
	}
	var out []string
	for d := range fs.dirs {
		if d != p && path.Dir(d) == p {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out, nil
}

// WriteMarker places the marker file in dir
func (fs *FS) WriteMarker(dir string) error {
	dir = clean(dir)
	m := path.Join(dir, fs.marker)
	if err := fs.fault(OpMarker, dir); err != nil {
		return err
	}
	if !fs.dirs[dir] {
		return domain.NewPathError(OpMarker, dir, domain.KindNotFound, nil)
	}
	if fs.dirs[m] {
		return domain.NewPathError(OpMarker, m, domain.KindConflict, nil)
	}
	if fs.files[m] {
		return nil
	}
	fs.files[m] = true
	fs.stats.Markers++
	return nil
}

// MoveDirectory relocates src and everything below it to dst
func (fs *FS) MoveDirectory(src, dst string) error {
	src, dst = clean(src), clean(dst)
	if err := fs.fault(OpMove, src); err != nil {
		return err
	}
	if !fs.dirs[src] {
		return domain.NewPathError(OpMove, src, domain.KindNotFound, nil)
	}
	if fs.dirs[dst] || fs.files[dst] {
		return domain.NewPathError(OpMove, dst, domain.KindConflict, nil)
	}
	if !fs.dirs[path.Dir(dst)] {
		return domain.NewPathError(OpMove, path.Dir(dst), domain.KindNotFound, nil)
	}
	if strings.HasPrefix(dst, src+"/") {
		return domain.NewPathError(OpMove, dst, domain.KindInvalidInput, nil)
	}

	fs.dirs = relocate(fs.dirs, src, dst)
	fs.files = relocate(fs.files, src, dst)
	fs.stats.Moves++
	return nil
}

// MkdirAll creates p and its parents without counting them
func (fs *FS) MkdirAll(p string) {
	p = clean(p)
	for p != "." && p != "/" && p != "" {
		fs.dirs[p] = true
		p = path.Dir(p)
	}
}

// AddFile places a plain file at p, creating its parents
func (fs *FS) AddFile(p string) {
	p = clean(p)
	fs.MkdirAll(path.Dir(p))
	fs.files[p] = true
}

// RemoveAll deletes p and everything below it
func (fs *FS) RemoveAll(p string) {
	p = clean(p)
	for d := range fs.dirs {
		if d == p || strings.HasPrefix(d, p+"/") {
			delete(fs.dirs, d)
		}
	}
	for f := range fs.files {
		if f == p || strings.HasPrefix(f, p+"/") {
			delete(fs.files, f)
		}
	}
}

// HasFile reports whether a plain file exists at p
func (fs *FS) HasFile(p string) bool {
	return fs.files[clean(p)]
}

// HasMarker reports whether dir carries the marker file
func (fs *FS) HasMarker(dir string) bool {
	return fs.files[path.Join(clean(dir), fs.marker)]
}

// FailOn makes every call of op on p fail with err until cleared with a nil err
func (fs *FS) FailOn(op, p string, err error) {
	key := op + ":" + clean(p)
	if err == nil {
		delete(fs.faults, key)
		return
	}
	fs.faults[key] = err
}

// Stats returns the mutation counters
func (fs *FS) Stats() Stats {
	return fs.stats
}

// ResetStats zeroes the mutation counters
func (fs *FS) ResetStats() {
	fs.stats = Stats{}
}

// Snapshot returns every directory and file path, sorted
func (fs *FS) Snapshot() []string {
	out := make([]string, 0, len(fs.dirs)+len(fs.files))
	for d := range fs.dirs {
		out = append(out, d+"/")
	}
	for f := range fs.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func (fs *FS) fault(op, p string) error {
	if err, ok := fs.faults[op+":"+p]; ok {
		return domain.NewPathError(op, p, domain.KindOf(err), err)
	}
	return nil
}

func relocate(set map[string]bool, src, dst string) map[string]bool {
	out := make(map[string]bool, len(set))
	for p := range set {
		switch {
		case p == src:
			out[dst] = true
		case strings.HasPrefix(p, src+"/"):
			out[dst+strings.TrimPrefix(p, src)] = true
		default:
			out[p] = true
		}
	}
	return out
}

func clean(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}
