package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is looked up in the working directory when no
// settings path is given.
const DefaultSettingsFile = ".treewarden.yml"

// Environment variables
const (
	EnvProject = "TREEWARDEN_PROJECT"
	EnvBase    = "TREEWARDEN_BASE"
	EnvIndex   = "TREEWARDEN_INDEX"
	EnvLayout  = "TREEWARDEN_LAYOUT"
	EnvMarker  = "TREEWARDEN_MARKER"
)

// DefaultProjectPath is the project directory used when nothing else is set
const DefaultProjectPath = "."

// Settings holds persistent defaults loaded from a settings file.
type Settings struct {
	Project string `yaml:"project"`
	Base    string `yaml:"base"`
	Layout  string `yaml:"layout"` // YAML or TOML catalog file
	Index   string `yaml:"index"`  // SQLite index path
	Marker  string `yaml:"marker"` // marker file name, default .gitkeep
}

// LoadSettings reads a YAML settings file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	return &s, nil
}

// LoadDotEnv loads KEY=value pairs from dir/.env into the process
// environment. Variables already set are kept. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Options is the effective configuration of a frontend
type Options struct {
	Project      string
	Base         string
	Layout       string
	Index        string
	Marker       string
	SettingsPath string
}

// Resolve fills every empty field of flags with the first value found in
// the environment, then the settings file, then the defaults.
func Resolve(flags Options) (Options, error) {
	settingsPath := flags.SettingsPath
	if settingsPath == "" {
		settingsPath = DefaultSettingsFile
	}
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return Options{}, err
	}

	out := Options{
		Project:      first(flags.Project, os.Getenv(EnvProject), settings.Project, DefaultProjectPath),
		Base:         first(flags.Base, os.Getenv(EnvBase), settings.Base),
		Layout:       first(flags.Layout, os.Getenv(EnvLayout), settings.Layout),
		Index:        first(flags.Index, os.Getenv(EnvIndex), settings.Index),
		Marker:       first(flags.Marker, os.Getenv(EnvMarker), settings.Marker),
		SettingsPath: settingsPath,
	}
	out.Project = expandHome(out.Project)
	out.Layout = expandHome(out.Layout)
	out.Index = expandHome(out.Index)
	return out, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// expandHome expands a leading ~ to the home directory
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
