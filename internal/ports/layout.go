package ports

// Layout is the capability surface over a real or simulated filesystem.
// Paths are logical, slash separated and start with the tree root
// (e.g. "Assets/Game/Art"). Errors are *domain.PathError values.
type Layout interface {
	// Exists reports whether path is an existing directory
	Exists(path string) bool

	// CreateDirectory creates parent/name. It fails with NotFound when
	// parent is absent and with Conflict when a non-directory occupies
	// the name. An existing directory is not an error.
	CreateDirectory(parent, name string) error

	// ListSubdirectories returns the immediate subdirectories of path as
	// full paths in lexical order. NotFound when path is absent.
	ListSubdirectories(path string) ([]string, error)

	// WriteMarker places the zero-byte marker file in dir. It is a no-op
	// when the marker already exists.
	WriteMarker(dir string) error

	// MoveDirectory relocates src to dst, either fully or not at all.
	// Conflict when dst exists, NotFound when src or dst's parent is absent.
	MoveDirectory(src, dst string) error
}
