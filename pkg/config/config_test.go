// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test path helpers and default resolution

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathHelpers(t *testing.T) {
	cfg := &config.Config{
		TemplateDir: "/cfg/tree",
		BuildDir:    "/cache/build",
		LinkDir:     "/home/user",
	}

	assert.Equal(t, filepath.Join("/cfg/tree", "a/b.tpl"), cfg.TemplatePath("a/b.tpl"))
	assert.Equal(t, filepath.Join("/cache/build", "a/b"), cfg.BuildPath("a/b"))
	assert.Equal(t, filepath.Join("/home/user", "a/b"), cfg.LinkPath("a/b"))

	// the empty relative path names the roots themselves
	assert.Equal(t, "/cfg/tree", cfg.TemplatePath(""))
	assert.Equal(t, "/cache/build", cfg.BuildPath(""))
	assert.Equal(t, "/home/user", cfg.LinkPath(""))
}

func TestDefault(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	xdg.Reload()
	defer xdg.Reload()

	cfg, err := config.Default()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.TemplateDir)
	assert.NotEmpty(t, cfg.BuildDir)
	assert.NotEmpty(t, cfg.LinkDir)
	assert.Equal(t, "variables.toml", filepath.Base(cfg.VariablesPath))

	// defaults are created so a first run works
	assert.DirExists(t, cfg.TemplateDir)
	assert.DirExists(t, cfg.BuildDir)
}
