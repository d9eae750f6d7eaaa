// Package config holds the run configuration for dotweave.
//
// A Config is built once at process start, from XDG defaults plus
// command-line overrides, and is borrowed read-only by every traversal
// for the rest of the run.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories
const AppName = "dotweave"

// Config describes one dotweave run: where templates live, where the
// rendered tree is materialized, where the symlinks go, and which
// boolean flags are bound for template rendering.
type Config struct {
	// TemplateDir is the root of the template source tree
	TemplateDir string

	// BuildDir is the root of the materialized build tree
	BuildDir string

	// LinkDir is the root under which symlinks into the build tree
	// are created, commonly the user's home directory
	LinkDir string

	// VariablesPath is the variables file consulted when building the
	// binding set; its absence is not an error
	VariablesPath string

	// Flags are free-form names bound as boolean-true for rendering
	Flags []string
}

// Default resolves the default configuration from the XDG base
// directories: templates under the config dir, the build tree under
// the cache dir, links into $HOME. The template and build directories
// are created if absent so that a first run works out of the box.
func Default() (*Config, error) {
	templateDir := filepath.Join(xdg.ConfigHome, AppName, "tree")
	if err := os.MkdirAll(templateDir, 0755); err != nil {
		return nil, err
	}

	buildDir := filepath.Join(xdg.CacheHome, AppName)
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		TemplateDir:   templateDir,
		BuildDir:      buildDir,
		LinkDir:       home,
		VariablesPath: filepath.Join(xdg.ConfigHome, AppName, "variables.toml"),
	}, nil
}

// TemplatePath returns the absolute path of rel inside the template tree
func (c *Config) TemplatePath(rel string) string {
	return filepath.Join(c.TemplateDir, rel)
}

// BuildPath returns the absolute path of rel inside the build tree
func (c *Config) BuildPath(rel string) string {
	return filepath.Join(c.BuildDir, rel)
}

// LinkPath returns the absolute path of rel inside the link tree
func (c *Config) LinkPath(rel string) string {
	return filepath.Join(c.LinkDir, rel)
}
