package domain

import "path"

// Anchor is the resolved location of one group and its children
type Anchor struct {
	Group        string
	Path         string
	Children     []string // full paths, catalog order
	RootAnchored bool
}

// Resolution is the expected layout for one base directory name.
// Paths are logical, slash separated and start with the schema root.
type Resolution struct {
	Root    string
	Base    string
	Anchors []Anchor
}

// Resolve computes the expected directories for base. It performs no I/O.
func (s Schema) Resolve(base string) Resolution {
	r := Resolution{
		Root:    s.Root,
		Base:    path.Join(s.Root, base),
		Anchors: make([]Anchor, 0, len(s.Groups)),
	}

	for _, g := range s.Groups {
		a := Anchor{Group: g.Name, RootAnchored: s.IsRootAnchored(g.Name)}
		if a.RootAnchored {
			a.Path = path.Join(s.Root, g.Name)
		} else {
			a.Path = path.Join(r.Base, g.Name)
		}
		a.Children = make([]string, 0, len(g.Children))
		for _, c := range g.Children {
			a.Children = append(a.Children, path.Join(a.Path, c))
		}
		r.Anchors = append(r.Anchors, a)
	}
	return r
}

// Paths returns the expected path set in catalog order: the base
// directory, then each anchor followed by its children.
func (r Resolution) Paths() []string {
	out := []string{r.Base}
	for _, a := range r.Anchors {
		out = append(out, a.Path)
		out = append(out, a.Children...)
	}
	return out
}

// Set returns the expected paths as a set
func (r Resolution) Set() map[string]struct{} {
	paths := r.Paths()
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// AllowedRootEntries returns the only directories permitted directly
// under the root: the base directory and the root-anchored groups.
func (r Resolution) AllowedRootEntries() []string {
	out := []string{r.Base}
	for _, a := range r.Anchors {
		if a.RootAnchored {
			out = append(out, a.Path)
		}
	}
	return out
}

// Anchor returns the resolved anchor for the named group
func (r Resolution) Anchor(group string) (Anchor, bool) {
	for _, a := range r.Anchors {
		if a.Group == group {
			return a, true
		}
	}
	return Anchor{}, false
}

// QuarantineAnchor returns the root-anchored group holding the quarantine
func (s Schema) QuarantineAnchor() string {
	return path.Join(s.Root, s.Quarantine.Group)
}

// QuarantinePath returns the directory unexpected entries are moved into
func (s Schema) QuarantinePath() string {
	return path.Join(s.QuarantineAnchor(), s.Quarantine.Child)
}
