package domain

import (
	"fmt"
	"slices"
	"strings"
)

// GroupSpec is one top-level category of the layout and its required subfolders
type GroupSpec struct {
	Name     string   `yaml:"name" toml:"name"`
	Children []string `yaml:"children" toml:"children"`
}

// QuarantineSpec names the nested folder unexpected entries are moved into.
// Group must be root-anchored.
type QuarantineSpec struct {
	Group string `yaml:"group" toml:"group"`
	Child string `yaml:"child" toml:"child"`
}

// Schema is the declarative target layout
type Schema struct {
	Root       string         `yaml:"root" toml:"root"`
	Groups     []GroupSpec    `yaml:"groups" toml:"groups"`
	RootSet    []string       `yaml:"root_groups" toml:"root_groups"`
	Quarantine QuarantineSpec `yaml:"quarantine" toml:"quarantine"`
}

// Reference layout constants
const (
	DefaultRoot       = "Assets"
	DefaultMarkerName = ".gitkeep"
)

// DefaultSchema returns the reference catalog: twelve groups, four of them
// anchored at the tree root.
func DefaultSchema() Schema {
	return Schema{
		Root: DefaultRoot,
		Groups: []GroupSpec{
			{Name: "Art", Children: []string{"Characters", "Environment", "UI"}},
			{Name: "Audio"},
			{Name: "Materials"},
			{Name: "Prefabs", Children: []string{"UI", "Characters", "Environment", "Props", "Effects"}},
			{Name: "Scenes", Children: []string{"Levels", "UI"}},
			{Name: "Scripts", Children: []string{"Core", "Game", "Managers", "UI", "Systems"}},
			{Name: "UI", Children: []string{"HUD", "Popups", "Settings"}},
			{Name: "Resources"},
			{Name: "Plugins", Children: []string{"ThirdParty", "Custom"}},
			{Name: "StreamingAssets"},
			{Name: "Testing", Children: []string{"EditorTests", "RuntimeTests"}},
			{Name: "Sandbox"},
		},
		RootSet:    []string{"Plugins", "Sandbox", "StreamingAssets", "Resources"},
		Quarantine: QuarantineSpec{Group: "Plugins", Child: "ThirdParty"},
	}
}

// IsRootAnchored reports whether the named group lives at the tree root
func (s Schema) IsRootAnchored(name string) bool {
	return slices.Contains(s.RootSet, name)
}

// Group returns the group with the given name
func (s Schema) Group(name string) (GroupSpec, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupSpec{}, false
}

// Clone returns a deep copy, so callers cannot mutate a shared catalog
func (s Schema) Clone() Schema {
	out := Schema{
		Root:       s.Root,
		Groups:     make([]GroupSpec, len(s.Groups)),
		RootSet:    slices.Clone(s.RootSet),
		Quarantine: s.Quarantine,
	}
	for i, g := range s.Groups {
		out.Groups[i] = GroupSpec{Name: g.Name, Children: slices.Clone(g.Children)}
	}
	return out
}

// Validate checks the catalog invariants: single-segment names, unique
// group names, RootSet drawn from the catalog and a root-anchored quarantine.
func (s Schema) Validate() error {
	if err := checkSegment("root", s.Root); err != nil {
		return err
	}
	if len(s.Groups) == 0 {
		return schemaError("groups", "at least one group is required")
	}

	seen := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if err := checkSegment("group", g.Name); err != nil {
			return err
		}
		if seen[g.Name] {
			return schemaError("group", fmt.Sprintf("duplicate group name %q", g.Name))
		}
		seen[g.Name] = true

		children := make(map[string]bool, len(g.Children))
		for _, c := range g.Children {
			if err := checkSegment("child of "+g.Name, c); err != nil {
				return err
			}
			if children[c] {
				return schemaError("group", fmt.Sprintf("duplicate child %q in %q", c, g.Name))
			}
			children[c] = true
		}
	}

	for _, name := range s.RootSet {
		if !seen[name] {
			return schemaError("root_groups", fmt.Sprintf("%q is not a group in the catalog", name))
		}
	}

	q := s.Quarantine
	if err := checkSegment("quarantine group", q.Group); err != nil {
		return err
	}
	if err := checkSegment("quarantine child", q.Child); err != nil {
		return err
	}
	if !seen[q.Group] {
		return schemaError("quarantine", fmt.Sprintf("group %q is not in the catalog", q.Group))
	}
	if !s.IsRootAnchored(q.Group) {
		return schemaError("quarantine", fmt.Sprintf("group %q must be root-anchored", q.Group))
	}
	return nil
}

// ValidSegment reports whether name can be used as a single path segment
func ValidSegment(name string) bool {
	return checkSegment("name", name) == nil
}

func checkSegment(field, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return schemaError(field, "name is empty")
	case name == "." || name == "..":
		return schemaError(field, fmt.Sprintf("invalid name %q", name))
	case strings.ContainsAny(name, `/\`):
		return schemaError(field, fmt.Sprintf("name %q must not contain path separators", name))
	}
	return nil
}

func schemaError(field, msg string) error {
	return fmt.Errorf("schema %s: %s: %w", field, msg, ErrInvalidInput)
}
